package joplin

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Get(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": 42,
			"item_type": 1,
			"item_id": "0123456789abcdef0123456789abcdef",
			"type": 2,
			"created_time": 1700000000000
		}`)
	}))

	event, err := client.Event(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), event.ID)
	assert.Equal(t, ItemTypeNote, event.ItemType)
	assert.Equal(t, EventUpdated, event.Type)
	assert.Equal(t, int64(1700000000000), event.CreatedTime.UnixMilli())
}

func TestAllEvents_FollowsCursor(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"items": [{"id": 1, "type": 1}], "has_more": true, "cursor": 1}`)
		case "1":
			fmt.Fprint(w, `{"items": [{"id": 2, "type": 2}], "has_more": true, "cursor": 2}`)
		case "2":
			fmt.Fprint(w, `{"items": [], "has_more": false, "cursor": 2}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))

	events, err := client.AllEvents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventCreated, events[0].Type)
	assert.Equal(t, EventUpdated, events[1].Type)
}
