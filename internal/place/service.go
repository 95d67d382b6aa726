package place

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aboodsamad/TravelMateV0/internal/db"

	"github.com/redis/go-redis/v9"
)

const placeColumns = `id, location, country, category, visitors, rating, revenue,
	       accommodation_available, address, imageurl, latitude, longitude,
	       pricelevel, isopen, types, placeid`

const topListLimit = 10

// sortColumns whitelists the sortBy values accepted from clients.
var sortColumns = map[string]string{
	"location":                "location",
	"country":                 "country",
	"category":                "category",
	"visitors":                "visitors",
	"rating":                  "rating",
	"revenue":                 "revenue",
	"accommodation_available": "accommodation_available",
	"address":                 "address",
}

type Service struct {
	db    db.Querier
	cache *filterCache
}

func NewService(db db.Querier, rdb *redis.Client) *Service {
	return &Service{db: db, cache: newFilterCache(rdb, 5*time.Minute)}
}

func (s *Service) List(ctx context.Context, q ListQuery) (Page, error) {
	where, args := buildFilters(q)

	if q.TopOnly {
		rows, err := s.queryPlaces(ctx, where+" ORDER BY visitors DESC LIMIT "+fmt.Sprint(topListLimit), args)
		if err != nil {
			return Page{}, err
		}
		return Page{Data: rows, Page: 1, TotalPages: 1, TotalRecords: len(rows)}, nil
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM places`+where, args...).Scan(&total); err != nil {
		return Page{}, err
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = "location"
	}
	dir := "ASC"
	if strings.EqualFold(q.SortOrder, "desc") {
		dir = "DESC"
	}

	offset := (q.Page - 1) * q.Limit
	order := fmt.Sprintf(" ORDER BY %s %s, id ASC LIMIT %d OFFSET %d", col, dir, q.Limit, offset)
	rows, err := s.queryPlaces(ctx, where+order, args)
	if err != nil {
		return Page{}, err
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Page{Data: rows, Page: q.Page, TotalPages: totalPages, TotalRecords: total}, nil
}

func (s *Service) Filters(ctx context.Context) (FilterOptions, error) {
	if opts, ok := s.cache.get(ctx); ok {
		return opts, nil
	}

	var opts FilterOptions
	var err error
	if opts.Countries, err = s.distinct(ctx, "country"); err != nil {
		return FilterOptions{}, err
	}
	if opts.Categories, err = s.distinct(ctx, "category"); err != nil {
		return FilterOptions{}, err
	}
	if opts.Accommodations, err = s.distinct(ctx, "accommodation_available"); err != nil {
		return FilterOptions{}, err
	}

	s.cache.set(ctx, opts)
	return opts, nil
}

func (s *Service) Stats(ctx context.Context, country, category string) (Stats, error) {
	where, args := buildFilters(ListQuery{Country: country, Category: category})

	row := s.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0), COALESCE(AVG(visitors), 0),
		       COALESCE(MIN(rating), 0), COALESCE(MAX(rating), 0), COUNT(*)
		FROM places`+where, args...)

	var st Stats
	if err := row.Scan(&st.AvgRating, &st.AvgVisitors, &st.MinRating, &st.MaxRating, &st.TotalPlaces); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *Service) queryPlaces(ctx context.Context, suffix string, args []any) ([]Place, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+placeColumns+`
		FROM places`+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.Location, &p.Country, &p.Category, &p.Visitors, &p.Rating,
			&p.Revenue, &p.Accommodation, &p.Address, &p.ImageURL, &p.Latitude, &p.Longitude,
			&p.PriceLevel, &p.IsOpen, &p.Types, &p.PlaceID); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, nil
}

func (s *Service) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT %s FROM places WHERE %s <> '' ORDER BY %s
	`, column, column, column))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func buildFilters(q ListQuery) (string, []any) {
	var clauses []string
	var args []any

	eq := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	eq("country", q.Country)
	eq("category", q.Category)
	eq("accommodation_available", q.Accommodation)

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(location ILIKE $%d OR country ILIKE $%d OR category ILIKE $%d OR address ILIKE $%d)", n, n, n, n))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
