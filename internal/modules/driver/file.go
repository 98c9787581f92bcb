// README: Driver directory loaded from a JSON file, used by the CLI and seeding.
package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"fleetreport/internal/types"
)

// FileDirectory serves profiles from a JSON object keyed by driver ID. Used by the CLI.
type FileDirectory struct {
	drivers map[types.ID]Info
}

func LoadFileDirectory(path string) (*FileDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	drivers := map[types.ID]Info{}
	if err := json.Unmarshal(data, &drivers); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &FileDirectory{drivers: drivers}, nil
}

func (d *FileDirectory) Get(_ context.Context, id types.ID) (*Info, error) {
	info, ok := d.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &info, nil
}

// All returns the directory contents; the seed command copies them into Redis.
func (d *FileDirectory) All() map[types.ID]Info {
	return d.drivers
}
