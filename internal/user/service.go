package user

import (
	"context"
	"fmt"

	"github.com/aboodsamad/TravelMateV0/internal/activity"
	"github.com/aboodsamad/TravelMateV0/internal/db"
)

type Service struct {
	db       db.Querier
	activity *activity.Service
}

func NewService(db db.Querier, activitySvc *activity.Service) *Service {
	return &Service{db: db, activity: activitySvc}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, created_at
		FROM users WHERE id = $1
	`, userID)

	var p Profile
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE users SET name = $2, email = $3
		WHERE id = $1
		RETURNING id, name, email, created_at
	`, userID, name, email)

	var p Profile
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
		return Profile{}, err
	}

	if err := s.activity.Record(ctx, userID, activity.ActionProfileUpdate, "Profile updated"); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Logs(ctx context.Context, userID string, page, limit int) ([]activity.Entry, error) {
	return s.activity.List(ctx, userID, page, limit)
}

func (s *Service) LikedPlaces(ctx context.Context, userID string) ([]LikedPlace, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.location, p.country, p.category, p.visitors, p.rating, p.revenue,
		       p.accommodation_available, p.address, p.imageurl, p.latitude, p.longitude,
		       p.pricelevel, p.isopen, p.types, p.placeid,
		       lp.rating, lp.created_at
		FROM liked_places lp
		JOIN places p ON p.id = lp.place_id
		WHERE lp.user_id = $1
		ORDER BY lp.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var liked []LikedPlace
	for rows.Next() {
		var lp LikedPlace
		if err := rows.Scan(&lp.ID, &lp.Location, &lp.Country, &lp.Category, &lp.Visitors, &lp.Rating,
			&lp.Revenue, &lp.Accommodation, &lp.Address, &lp.ImageURL, &lp.Latitude, &lp.Longitude,
			&lp.PriceLevel, &lp.IsOpen, &lp.Types, &lp.PlaceID,
			&lp.UserRating, &lp.LikedAt); err != nil {
			return nil, err
		}
		liked = append(liked, lp)
	}
	return liked, nil
}

// Like upserts the favorite association. When a star rating is supplied the
// place's displayed rating is recomputed as the average of all user ratings.
func (s *Service) Like(ctx context.Context, userID string, placeID int64, rating *int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO liked_places (user_id, place_id, rating)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id, place_id) DO UPDATE SET rating = EXCLUDED.rating
	`, userID, placeID, rating)
	if err != nil {
		return err
	}

	if rating != nil {
		_, err = s.db.Exec(ctx, `
			UPDATE places
			SET rating = (SELECT AVG(rating) FROM liked_places WHERE place_id = $1 AND rating IS NOT NULL)
			WHERE id = $1
		`, placeID)
		if err != nil {
			return err
		}
	}

	return s.activity.Record(ctx, userID, activity.ActionPlaceLiked, fmt.Sprintf("Liked place %d", placeID))
}

func (s *Service) Unlike(ctx context.Context, userID string, placeID int64) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM liked_places WHERE user_id = $1 AND place_id = $2
	`, userID, placeID)
	if err != nil {
		return err
	}
	return s.activity.Record(ctx, userID, activity.ActionPlaceUnliked, fmt.Sprintf("Unliked place %d", placeID))
}
