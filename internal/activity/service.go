package activity

import (
	"context"

	"github.com/aboodsamad/TravelMateV0/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Record appends one entry to the user's activity log. The log is append-only;
// entries are never updated or removed.
func (s *Service) Record(ctx context.Context, userID, action, description string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, action, description)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), userID, action, description)
	return err
}

func (s *Service) List(ctx context.Context, userID string, page, limit int) ([]Entry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, action, description, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
