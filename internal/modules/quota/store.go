package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles narrative_quota persistence.
type Store struct {
	db      *pgxpool.Pool
	monthly int
	now     func() time.Time
}

// NewStore returns a Store granting monthly tokens per caller; monthly <= 0 falls back to DefaultMonthlyTokens.
func NewStore(db *pgxpool.Pool, monthly int) *Store {
	if monthly <= 0 {
		monthly = DefaultMonthlyTokens
	}
	return &Store{db: db, monthly: monthly, now: time.Now}
}

// UseToken atomically checks the monthly quota and deducts one token, resetting the counter when
// last_reset_month is behind the current month. Returns ErrInsufficientTokens when no row is updated
// (quota exhausted or caller absent).
func (s *Store) UseToken(ctx context.Context, uid string) error {
	month := s.now().Format(monthLayout)

	tag, err := s.db.Exec(ctx, `
		UPDATE narrative_quota SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, s.monthly, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a row with the full allowance; an existing row is left alone.
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO narrative_quota (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.monthly, s.now().Format(monthLayout))
	return err
}

// Remaining returns the tokens left for uid, or the full allowance for an unknown caller.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	var remaining int
	var month string
	err := s.db.QueryRow(ctx,
		`SELECT tokens_remaining, last_reset_month FROM narrative_quota WHERE uid = $1`, uid,
	).Scan(&remaining, &month)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.monthly, nil
		}
		return 0, err
	}
	if month < s.now().Format(monthLayout) {
		return s.monthly, nil
	}
	return remaining, nil
}
