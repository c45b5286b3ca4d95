package itemid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is a Joplin item identifier: 32 hexadecimal characters, upper or
// lower case, though Joplin itself generates lowercase ones.
// Every item kind (note, notebook, tag, resource, revision) shares this
// format. The data API accepts caller-chosen IDs on creation, and the
// server API requires the client to assign them.
type ID string

// New generates a random item ID (a UUIDv4 with the hyphens stripped).
func New() ID {
	return ID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Parse validates s and returns it as an ID.
func Parse(s string) (ID, error) {
	if !Valid(s) {
		return "", fmt.Errorf("invalid item ID %q: want 32 hex characters", s)
	}
	return ID(s), nil
}

// MustParse is Parse that panics on error. Useful for test fixtures
// where the ID is known valid.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Valid reports whether s has the shape of an item ID.
func Valid(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}

func (id ID) String() string {
	return string(id)
}

// IsZero returns true for the empty ID.
func (id ID) IsZero() bool {
	return id == ""
}
