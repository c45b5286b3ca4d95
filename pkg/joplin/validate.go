package joplin

import (
	"fmt"

	"github.com/dataplume/joplingo/pkg/itemid"
)

// validateOptionalItemID is an ozzo rule for *string ID fields: nil is
// fine, anything else must look like a 32-hex item ID.
func validateOptionalItemID(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	if !itemid.Valid(s) {
		return fmt.Errorf("invalid item ID %q", s)
	}
	return nil
}
