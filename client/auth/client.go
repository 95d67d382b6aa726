// Package auth is the HTTP client for signup, login and logout. It keeps
// the session store in sync with the server.
package auth

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/aboodsamad/TravelMateV0/client/api"
	"github.com/aboodsamad/TravelMateV0/client/session"

	"github.com/goccy/go-json"
)

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

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    *session.User `json:"user"`
}

// Login exchanges credentials for a token and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return session.User{}, &api.ValidationError{Message: "email and password required"}
	}
	return c.post(ctx, "/auth/login", credentials{Email: email, Password: password})
}

// Signup creates an account and signs the caller in. The confirmation
// password is checked locally before any request is made.
func (c *Client) Signup(ctx context.Context, name, email, password, confirm string) (session.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return session.User{}, &api.ValidationError{Message: "name, email and password required"}
	}
	if password != confirm {
		return session.User{}, &api.ValidationError{Message: "passwords mismatched"}
	}
	return c.post(ctx, "/auth/signup", credentials{Name: name, Email: email, Password: password})
}

// Logout tells the server, then clears the local session. The session is
// cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	token := c.Session.Token()
	defer c.Session.Clear()
	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/logout", nil)
	if err != nil {
		return &api.FetchError{Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &api.FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return api.ErrorFromResponse(resp)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, creds credentials) (session.User, error) {
	raw, err := json.Marshal(creds)
	if err != nil {
		return session.User{}, &api.FetchError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return session.User{}, &api.FetchError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return session.User{}, &api.FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		fe := api.ErrorFromResponse(resp)
		return session.User{}, &api.AuthError{Message: fe.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return session.User{}, api.ErrorFromResponse(resp)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Token == "" {
		return session.User{}, &api.FetchError{Status: resp.StatusCode, Message: "malformed response"}
	}

	if err := c.Session.SetToken(out.Token); err != nil {
		return session.User{}, err
	}
	if out.User != nil {
		if err := c.Session.SetUser(out.User); err != nil {
			return session.User{}, err
		}
		return *out.User, nil
	}
	return session.User{}, nil
}
