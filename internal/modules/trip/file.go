// README: Trip source reading a JSON fixture file, used by the CLI and seeding.
package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads a JSON array of trips from disk on every call.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) ListAll(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var out []Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return out, nil
}
