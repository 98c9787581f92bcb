// README: Driver lookup service.
package driver

import (
	"context"
	"fmt"

	"fleetreport/internal/types"
)

type Directory interface {
	Get(ctx context.Context, id types.ID) (*Info, error)
}

type Service struct {
	directory Directory
}

func NewService(directory Directory) *Service {
	return &Service{directory: directory}
}

// GetDriver fetches one profile. Unknown drivers return an error wrapping ErrNotFound.
func (s *Service) GetDriver(ctx context.Context, id types.ID) (*Info, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	info, err := s.directory.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get driver %s: %w", id, err)
	}
	return info, nil
}
