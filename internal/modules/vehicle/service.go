// README: Vehicle lookup service. The reports never call it; it is served over HTTP.
package vehicle

import (
	"context"

	"fleetreport/internal/types"
)

type Lookup interface {
	Get(ctx context.Context, id types.ID) (*Vehicle, error)
}

type Service struct {
	store Lookup
}

func NewService(store Lookup) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Vehicle, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}
