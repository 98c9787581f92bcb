// README: Monthly allowance of generated fleet narratives per caller, stored in Postgres.
package quota

import (
	"context"
	"errors"
)

type tokenStore interface {
	UseToken(ctx context.Context, uid string) error
	EnsureUser(ctx context.Context, uid string) error
	Remaining(ctx context.Context, uid string) (int, error)
}

type Service struct {
	store tokenStore
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UseToken deducts one token from the caller's monthly allowance. A caller seen for the first
// time is initialised and charged in the same call.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	err := s.store.UseToken(ctx, uid)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: create it, then retry once.
	if initErr := s.store.EnsureUser(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid)
}

func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	return s.store.Remaining(ctx, uid)
}
