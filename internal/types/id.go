// README: Identifier type tolerant of string or numeric JSON ids.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies drivers, vehicles and quota owners.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers; upstream feeds are not consistent.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("types: id must be a string or number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}
