// README: Driver directory backed by Redis hashes written by the driver service.
package driver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fleetreport/internal/types"
)

const profileKeyPrefix = "driver:profile:%s"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// Get reads the profile hash; a missing key is ErrNotFound.
func (s *Store) Get(ctx context.Context, id types.ID) (*Info, error) {
	fields, err := s.redis.HGetAll(ctx, profileKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	info := &Info{
		Name:  fields["name"],
		Email: fields["email"],
		Phone: fields["phone"],
	}
	if raw := fields["vehicle_ids"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &info.VehicleIDs); err != nil {
			return nil, fmt.Errorf("decode vehicle_ids for %s: %w", id, err)
		}
	}
	return info, nil
}

func (s *Store) Put(ctx context.Context, id types.ID, info Info) error {
	vehicles, err := json.Marshal(info.VehicleIDs)
	if err != nil {
		return err
	}
	return s.redis.HSet(ctx, profileKey(id),
		"name", info.Name,
		"email", info.Email,
		"phone", info.Phone,
		"vehicle_ids", string(vehicles),
	).Err()
}

func (s *Store) Delete(ctx context.Context, id types.ID) error {
	return s.redis.Del(ctx, profileKey(id)).Err()
}

func profileKey(id types.ID) string {
	return fmt.Sprintf(profileKeyPrefix, string(id))
}
