package serverapi

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataplume/joplingo/pkg/joplin"
)

func TestSerialize_Note(t *testing.T) {
	note := &joplin.Note{
		ID:             "0123456789abcdef0123456789abcdef",
		ParentID:       "fedcba9876543210fedcba9876543210",
		Title:          "groceries",
		Body:           "- milk\n- eggs",
		CreatedTime:    joplin.NewTimestamp(time.UnixMilli(1700000000000)),
		IsTodo:         joplin.Bool(true),
		Latitude:       52.52,
		MarkupLanguage: joplin.MarkupMarkdown,
		Type:           joplin.ItemTypeNote,
	}

	serialized, err := Serialize(note)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(serialized, "groceries\n\n- milk\n- eggs\n\n"),
		"serialized was %q", serialized)
	assert.Contains(t, serialized, "id: 0123456789abcdef0123456789abcdef")
	assert.Contains(t, serialized, "created_time: 2023-11-14T22:13:20.000Z")
	assert.Contains(t, serialized, "is_todo: 1")
	assert.Contains(t, serialized, "latitude: 52.52")
	assert.Contains(t, serialized, "type_: 1")
	// unset fields stay off the wire
	assert.NotContains(t, serialized, "todo_due")
	assert.NotContains(t, serialized, "is_conflict")
}

func TestSerialize_UntitledNote(t *testing.T) {
	note := &joplin.Note{
		ID:   "0123456789abcdef0123456789abcdef",
		Body: "jotted down in a hurry",
		Type: joplin.ItemTypeNote,
	}

	serialized, err := Serialize(note)
	require.NoError(t, err)

	// An empty title still gets its block, so the body is not mistaken
	// for a title on the way back.
	assert.True(t, strings.HasPrefix(serialized, "\n\njotted down in a hurry\n\n"),
		"serialized was %q", serialized)

	decoded, err := Deserialize(serialized)
	require.NoError(t, err)
	restored, ok := decoded.(*joplin.Note)
	require.True(t, ok, "decoded to %T", decoded)
	assert.Empty(t, restored.Title)
	assert.Equal(t, "jotted down in a hurry", restored.Body)
}

func TestSerialize_Roundtrip(t *testing.T) {
	tests := []struct {
		name string
		item any
	}{
		{
			name: "note with title and body",
			item: &joplin.Note{
				ID:          "0123456789abcdef0123456789abcdef",
				ParentID:    "fedcba9876543210fedcba9876543210",
				Title:       "plans",
				Body:        "first paragraph\n\nsecond paragraph",
				UpdatedTime: joplin.NewTimestamp(time.UnixMilli(1700000000000).UTC()),
				IsTodo:      joplin.Bool(true),
				Type:        joplin.ItemTypeNote,
			},
		},
		{
			name: "note with body but no title",
			item: &joplin.Note{
				ID:       "0123456789abcdef0123456789abcdef",
				ParentID: "fedcba9876543210fedcba9876543210",
				Body:     "jotted down in a hurry",
				Type:     joplin.ItemTypeNote,
			},
		},
		{
			name: "notebook without body",
			item: &joplin.Notebook{
				ID:    "0123456789abcdef0123456789abcdef",
				Title: "projects",
				Type:  joplin.ItemTypeFolder,
			},
		},
		{
			name: "note tag without title or body",
			item: &NoteTag{
				ID:     "0123456789abcdef0123456789abcdef",
				NoteID: "a1b2c3d4e5f60718293a4b5c6d7e8f90",
				TagID:  "fedcba9876543210fedcba9876543210",
				Type:   joplin.ItemTypeNoteTag,
			},
		},
		{
			name: "resource",
			item: &joplin.Resource{
				ID:       "0123456789abcdef0123456789abcdef",
				Title:    "screenshot",
				Mime:     "image/png",
				Filename: "screenshot.png",
				Size:     2048,
				Type:     joplin.ItemTypeResource,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serialized, err := Serialize(tt.item)
			require.NoError(t, err)

			decoded, err := Deserialize(serialized)
			require.NoError(t, err)
			assert.Equal(t, tt.item, decoded)
		})
	}
}

func TestDeserialize(t *testing.T) {
	t.Run("metadata only", func(t *testing.T) {
		decoded, err := Deserialize(
			"id: 0123456789abcdef0123456789abcdef\nnote_id: a1b2c3d4e5f60718293a4b5c6d7e8f90\ntag_id: fedcba9876543210fedcba9876543210\ntype_: 6")
		require.NoError(t, err)
		link, ok := decoded.(*NoteTag)
		require.True(t, ok, "decoded to %T", decoded)
		assert.Equal(t, "a1b2c3d4e5f60718293a4b5c6d7e8f90", link.NoteID)
	})

	t.Run("title and metadata", func(t *testing.T) {
		decoded, err := Deserialize(
			"shopping\n\nid: 0123456789abcdef0123456789abcdef\ntype_: 5")
		require.NoError(t, err)
		tag, ok := decoded.(*joplin.Tag)
		require.True(t, ok, "decoded to %T", decoded)
		assert.Equal(t, "shopping", tag.Title)
	})

	t.Run("empty metadata values are skipped", func(t *testing.T) {
		decoded, err := Deserialize(
			"id: 0123456789abcdef0123456789abcdef\nparent_id: \ntype_: 2")
		require.NoError(t, err)
		notebook, ok := decoded.(*joplin.Notebook)
		require.True(t, ok, "decoded to %T", decoded)
		assert.Empty(t, notebook.ParentID)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := Deserialize("id: 0123456789abcdef0123456789abcdef")
		assert.ErrorContains(t, err, "no type metadata")
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := Deserialize("id: 0123456789abcdef0123456789abcdef\ntype_: 9")
		assert.ErrorIs(t, err, errUnsupportedItemType)
	})

	t.Run("malformed metadata line", func(t *testing.T) {
		_, err := Deserialize("id 0123456789abcdef0123456789abcdef\ntype_: 1")
		assert.ErrorContains(t, err, "malformed metadata")
	})
}
