package itemid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("generates valid non-zero ID", func(t *testing.T) {
		id := New()
		assert.False(t, id.IsZero())
		assert.True(t, Valid(id.String()))
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		assert.NotEqual(t, New(), New())
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid lowercase ID",
			input: "0123456789abcdef0123456789abcdef",
		},
		{
			name:  "valid uppercase ID",
			input: "0123456789ABCDEF0123456789ABCDEF",
		},
		{
			name:    "too short",
			input:   "0123456789abcdef",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "0123456789abcdef0123456789abcdef00",
			wantErr: true,
		},
		{
			name:    "non-hex characters",
			input:   "0123456789abcdef0123456789abcdeg",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "UUID with hyphens",
			input:   "550e8400-e29b-41d4-a716-446655440000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestMustParse(t *testing.T) {
	t.Run("parses valid ID", func(t *testing.T) {
		id := MustParse("0123456789abcdef0123456789abcdef")
		assert.Equal(t, "0123456789abcdef0123456789abcdef", id.String())
	})

	t.Run("panics on invalid ID", func(t *testing.T) {
		assert.Panics(t, func() {
			MustParse("not-an-id")
		})
	})
}
