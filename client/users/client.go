// Package users is the authenticated HTTP client for the profile,
// activity log and favorites endpoints.
package users

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aboodsamad/TravelMateV0/client/api"
	"github.com/aboodsamad/TravelMateV0/client/places"
	"github.com/aboodsamad/TravelMateV0/client/session"

	"github.com/goccy/go-json"
)

// LogEntry is one activity log line.
type LogEntry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LikedPlace is a favorite with the caller's own star rating attached.
type LikedPlace struct {
	places.Place
	UserRating *int      `json:"user_rating"`
	LikedAt    time.Time `json:"liked_at"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session session.Store
}

// New builds a client with no request timeout; callers cancel through
// the context when they need a bound.
func New(baseURL string, store session.Store) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
		Session: store,
	}
}

// Profile fetches the signed-in user's account record.
func (c *Client) Profile(ctx context.Context) (session.User, error) {
	var out struct {
		User session.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, &out); err != nil {
		return session.User{}, err
	}
	return out.User, nil
}

// UpdateProfile changes name and email. The refreshed user record is stored
// in the session on success.
func (c *Client) UpdateProfile(ctx context.Context, name, email string) (session.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return session.User{}, &api.ValidationError{Message: "name and email required"}
	}

	body := map[string]string{"name": name, "email": email}
	var out struct {
		User session.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", body, &out); err != nil {
		return session.User{}, err
	}
	u := out.User
	_ = c.Session.SetUser(&u)
	return u, nil
}

// Logs fetches one page of the activity log.
func (c *Client) Logs(ctx context.Context, page, limit int) ([]LogEntry, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/users/logs"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out struct {
		Logs []LogEntry `json:"logs"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Logs == nil {
		out.Logs = []LogEntry{}
	}
	return out.Logs, nil
}

// LikedPlaces fetches the caller's favorites.
func (c *Client) LikedPlaces(ctx context.Context) ([]LikedPlace, error) {
	var out struct {
		Places []LikedPlace `json:"places"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/liked-places", nil, &out); err != nil {
		return nil, err
	}
	if out.Places == nil {
		out.Places = []LikedPlace{}
	}
	return out.Places, nil
}

// Like marks a place as a favorite. A non-nil rating also records the
// caller's star rating for it.
func (c *Client) Like(ctx context.Context, placeID int64, rating *int) error {
	body := map[string]any{"place_id": placeID}
	if rating != nil {
		body["rating"] = *rating
	}
	return c.do(ctx, http.MethodPost, "/api/users/liked-places", body, nil)
}

// Unlike removes a place from the favorites.
func (c *Client) Unlike(ctx context.Context, placeID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/liked-places/%d", placeID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token := c.Session.Token()
	if token == "" {
		return &api.AuthError{Message: "not signed in"}
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &api.FetchError{Message: err.Error()}
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &api.FetchError{Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &api.FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		fe := api.ErrorFromResponse(resp)
		return &api.AuthError{Message: fe.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return api.ErrorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &api.FetchError{Status: resp.StatusCode, Message: "malformed response"}
	}
	return nil
}
