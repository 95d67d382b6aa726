// Package places is the read-only HTTP client for the public catalog
// endpoints: listing, filter options and aggregate stats.
package places

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aboodsamad/TravelMateV0/client/api"

	"github.com/goccy/go-json"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a client with no request timeout; callers cancel through
// the context when they need a bound.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
	}
}

// List fetches one catalog page for the given query parameters.
func (c *Client) List(ctx context.Context, params url.Values) (Page, error) {
	var out struct {
		Data       []Place `json:"data"`
		Pagination struct {
			Page         int `json:"page"`
			TotalPages   int `json:"totalPages"`
			TotalRecords int `json:"totalRecords"`
		} `json:"pagination"`
	}
	if err := c.get(ctx, "/api/places", params, &out); err != nil {
		return Page{}, err
	}
	if out.Data == nil {
		out.Data = []Place{}
	}
	return Page{
		Places:       out.Data,
		Page:         out.Pagination.Page,
		TotalPages:   out.Pagination.TotalPages,
		TotalRecords: out.Pagination.TotalRecords,
	}, nil
}

// FilterOptions fetches the distinct countries, categories and
// accommodation values present in the catalog.
func (c *Client) FilterOptions(ctx context.Context) (FilterOptions, error) {
	var out struct {
		Filters FilterOptions `json:"filters"`
	}
	if err := c.get(ctx, "/api/places/filters", nil, &out); err != nil {
		return FilterOptions{}, err
	}
	return out.Filters, nil
}

// TopPlaces fetches the ten most visited places, optionally narrowed by
// country and category.
func (c *Client) TopPlaces(ctx context.Context, country, category string) ([]Place, error) {
	params := url.Values{}
	params.Set("topOnly", "true")
	if country != "" {
		params.Set("country", country)
	}
	if category != "" {
		params.Set("category", category)
	}

	var out struct {
		Data []Place `json:"data"`
	}
	if err := c.get(ctx, "/api/places", params, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []Place{}
	}
	return out.Data, nil
}

// Stats fetches aggregate figures, optionally narrowed by country and
// category.
func (c *Client) Stats(ctx context.Context, country, category string) (Stats, error) {
	params := url.Values{}
	if country != "" {
		params.Set("country", country)
	}
	if category != "" {
		params.Set("category", category)
	}

	var out struct {
		Stats Stats `json:"stats"`
	}
	if err := c.get(ctx, "/api/places/stats", params, &out); err != nil {
		return Stats{}, err
	}
	return out.Stats, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &api.FetchError{Message: err.Error()}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &api.FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return api.ErrorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &api.FetchError{Status: resp.StatusCode, Message: "malformed response"}
	}
	return nil
}
