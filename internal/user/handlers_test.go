package user

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aboodsamad/TravelMateV0/internal/activity"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func fakeAuth(c *fiber.Ctx) error {
	c.Locals("user_id", "user-1")
	return c.Next()
}

func userApp(mock pgxmock.PgxPoolIface) *fiber.App {
	app := fiber.New()
	svc := newUserService(mock)
	RegisterRoutes(app.Group("/api/users"), svc, fakeAuth)
	return app
}

func TestProfileHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow("user-1", "Abed", "abed@example.com", time.Now()))

	app := userApp(mock)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("profile status: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	var out struct {
		User Profile `json:"user"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.User.Name != "Abed" {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestProfileHandlerNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, created_at`).
		WithArgs("user-1").
		WillReturnError(errQuery)

	app := userApp(mock)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE users SET name = \$2, email = \$3`).
		WithArgs("user-1", "New", "new@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow("user-1", "New", "new@example.com", time.Now()))
	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), "user-1", activity.ActionProfileUpdate, "Profile updated").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	body, _ := json.Marshal(UpdateProfileRequest{Name: "New", Email: "new@example.com"})
	req := httptest.NewRequest(http.MethodPut, "/api/users/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	app := userApp(mock)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %v", err)
	}
}

func TestUpdateProfileHandlerMissingFields(t *testing.T) {
	app := userApp(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/users/profile", bytes.NewReader([]byte(`{"name":""}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestLogsHandlerEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM activity_logs`).
		WithArgs("user-1", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "action", "details", "created_at"}))

	app := userApp(mock)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/logs", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("logs status: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(raw, []byte(`"logs":[]`)) {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

func TestLikedPlacesHandlerEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM liked_places lp`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "location", "country", "category", "visitors", "rating", "revenue",
			"accommodation_available", "address", "imageurl", "latitude", "longitude",
			"pricelevel", "isopen", "types", "placeid", "user_rating", "liked_at",
		}))

	app := userApp(mock)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/liked-places", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("liked places status: %v", err)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(raw, []byte(`"places":[]`)) {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

func TestLikeHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO liked_places`).
		WithArgs("user-1", int64(42), intPtr(5)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE places`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), "user-1", activity.ActionPlaceLiked, "Liked place 42").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	body, _ := json.Marshal(LikeRequest{PlaceID: 42, Rating: intPtr(5)})
	req := httptest.NewRequest(http.MethodPost, "/api/users/liked-places", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	app := userApp(mock)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("like status: %v", err)
	}
}

func TestLikeHandlerMissingPlaceID(t *testing.T) {
	app := userApp(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/users/liked-places", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestLikeHandlerRatingOutOfRange(t *testing.T) {
	app := userApp(nil)

	body, _ := json.Marshal(LikeRequest{PlaceID: 42, Rating: intPtr(6)})
	req := httptest.NewRequest(http.MethodPost, "/api/users/liked-places", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestUnlikeHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM liked_places`).
		WithArgs("user-1", int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), "user-1", activity.ActionPlaceUnliked, "Unliked place 42").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := userApp(mock)
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/users/liked-places/42", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("unlike status: %v", err)
	}
}

func TestUnlikeHandlerBadID(t *testing.T) {
	app := userApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/users/liked-places/not-a-number", nil))
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}
