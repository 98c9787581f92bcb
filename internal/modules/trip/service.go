// README: Trip ingestor; a thin wrapper over whichever source holds the trip feed.
package trip

import (
	"context"
	"fmt"
)

type Source interface {
	ListAll(ctx context.Context) ([]Record, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// FetchTrips returns the full, unfiltered trip list exactly as the source ordered it.
// Errors wrap both ErrSourceUnavailable and the source's own error.
func (s *Service) FetchTrips(ctx context.Context) ([]Record, error) {
	trips, err := s.source.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return trips, nil
}
