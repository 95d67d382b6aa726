package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aboodsamad/TravelMateV0/internal/activity"

	"github.com/pashagolub/pgxmock/v3"
)

func newUserService(mock pgxmock.PgxPoolIface) *Service {
	return NewService(mock, activity.NewService(mock))
}

func intPtr(v int) *int { return &v }

func TestGetProfile(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow("user-1", "Abed", "abed@example.com", time.Now()))

	svc := newUserService(mock)
	profile, err := svc.GetProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Name != "Abed" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestGetProfileError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, email, created_at`).
		WithArgs("missing").
		WillReturnError(errQuery)

	svc := newUserService(mock)
	if _, err := svc.GetProfile(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUpdateProfile(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE users SET name = \$2, email = \$3`).
		WithArgs("user-1", "New Name", "new@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow("user-1", "New Name", "new@example.com", time.Now()))
	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), "user-1", activity.ActionProfileUpdate, "Profile updated").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := newUserService(mock)
	profile, err := svc.UpdateProfile(context.Background(), "user-1", "New Name", "new@example.com")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if profile.Email != "new@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateProfileError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE users SET name = \$2, email = \$3`).
		WithArgs("user-1", "Name", "mail@example.com").
		WillReturnError(errQuery)

	svc := newUserService(mock)
	if _, err := svc.UpdateProfile(context.Background(), "user-1", "Name", "mail@example.com"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLikedPlaces(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	rating := 4.6
	mock.ExpectQuery(`FROM liked_places lp`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "location", "country", "category", "visitors", "rating", "revenue",
			"accommodation_available", "address", "imageurl", "latitude", "longitude",
			"pricelevel", "isopen", "types", "placeid", "user_rating", "liked_at",
		}).AddRow(int64(1), "Byblos Citadel", "Lebanon", "Historical", int64(12000), &rating, 51000.0,
			"Yes", "Byblos", "http://img/1.jpg", 34.12, 35.65, 2, true, "landmark", "pl-1",
			intPtr(5), time.Now()))

	svc := newUserService(mock)
	liked, err := svc.LikedPlaces(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("liked places: %v", err)
	}
	if len(liked) != 1 || liked[0].Location != "Byblos Citadel" || *liked[0].UserRating != 5 {
		t.Fatalf("unexpected liked places: %+v", liked)
	}
}

func TestLikedPlacesError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM liked_places lp`).
		WithArgs("user-1").
		WillReturnError(errQuery)

	svc := newUserService(mock)
	if _, err := svc.LikedPlaces(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLikeWithRating(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO liked_places`).
		WithArgs("user-1", int64(42), intPtr(4)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE places`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), "user-1", activity.ActionPlaceLiked, "Liked place 42").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := newUserService(mock)
	if err := svc.Like(context.Background(), "user-1", 42, intPtr(4)); err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLikeWithoutRatingSkipsPlaceUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO liked_places`).
		WithArgs("user-1", int64(42), (*int)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), "user-1", activity.ActionPlaceLiked, "Liked place 42").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := newUserService(mock)
	if err := svc.Like(context.Background(), "user-1", 42, nil); err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLikeInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO liked_places`).
		WithArgs("user-1", int64(42), (*int)(nil)).
		WillReturnError(errQuery)

	svc := newUserService(mock)
	if err := svc.Like(context.Background(), "user-1", 42, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUnlike(t *testing.T) {
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

	svc := newUserService(mock)
	if err := svc.Unlike(context.Background(), "user-1", 42); err != nil {
		t.Fatalf("unlike: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnlikeError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM liked_places`).
		WithArgs("user-1", int64(42)).
		WillReturnError(errQuery)

	svc := newUserService(mock)
	if err := svc.Unlike(context.Background(), "user-1", 42); err == nil {
		t.Fatalf("expected error")
	}
}

var errQuery = errors.New("query error")
