package auth

import (
	"context"
	"errors"
	"time"

	"github.com/aboodsamad/TravelMateV0/internal/activity"
	"github.com/aboodsamad/TravelMateV0/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

type Service struct {
	secret   []byte
	db       db.Querier
	activity *activity.Service
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier, activitySvc *activity.Service) *Service {
	return &Service{
		secret:   []byte(secret),
		db:       db,
		activity: activitySvc,
	}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (User, string, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return User{}, "", errors.New("name, email, password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, user.ID, user.Name, user.Email, user.PasswordHash)
	if err := row.Scan(&user.CreatedAt); err != nil {
		return User{}, "", err
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return User{}, "", err
	}

	if err := s.activity.Record(ctx, user.ID, activity.ActionSignup, "Account created"); err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (User, string, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = $1
	`, req.Email)

	var user User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return User{}, "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, "", errors.New("invalid credentials")
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return User{}, "", err
	}

	if err := s.activity.Record(ctx, user.ID, activity.ActionLogin, "Logged in"); err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.activity.Record(ctx, userID, activity.ActionLogout, "Logged out")
}

// parseTokenFn is swapped in tests to exercise validation failures.
var parseTokenFn = jwt.ParseWithClaims

// ValidateToken checks a bearer token's signature and expiry and returns
// the account id it was issued for. Both the middleware and tests go
// through here; there is no second parsing path.
func (s *Service) ValidateToken(token string) (string, error) {
	parsed, err := parseTokenFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", errors.New("token invalid")
	}
	return claims.UserID, nil
}

func (s *Service) signToken(userID string) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
