package serverapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataplume/joplingo/pkg/joplin"
)

func lockJSON(lockType LockType, clientID string, updated time.Time) string {
	return fmt.Sprintf(`{"type": %d, "clientType": 1, "clientId": %q, "updatedTime": %d}`,
		lockType, clientID, updated.UnixMilli())
}

func TestItemRequest_RequiresLock(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request %s should not reach the server", r.URL.Path)
	}))

	_, err := client.Note(context.Background(), "0123456789abcdef0123456789abcdef")
	assert.ErrorIs(t, err, ErrNoLock)
}

func TestItemRequest_ExpiredLock(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request %s should not reach the server", r.URL.Path)
	}))

	holdTestLock(client)
	client.currentLock.UpdatedTime = joplin.NewTimestamp(time.Now().Add(-4 * time.Minute))

	_, err := client.Note(context.Background(), "0123456789abcdef0123456789abcdef")
	assert.ErrorIs(t, err, ErrLockExpired)
}

func TestItemRequest_RefreshesAgingLock(t *testing.T) {
	var refreshed bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/locks":
			refreshed = true
			fmt.Fprint(w, lockJSON(LockTypeSync, "self", time.Now()))
		case r.Method == "GET":
			fmt.Fprint(w, "pinboard\n\nid: 0123456789abcdef0123456789abcdef\ntype_: 2")
		}
	}))

	// active but past the refresh age
	holdTestLock(client)
	client.currentLock.UpdatedTime = joplin.NewTimestamp(time.Now().Add(-2 * time.Minute))

	_, err := client.Notebook(context.Background(), "0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.WithinDuration(t, time.Now(), client.currentLock.UpdatedTime.Time, 10*time.Second)
}

func TestAcquireSyncLock(t *testing.T) {
	var added bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			fmt.Fprint(w, `{"items": [], "has_more": false}`)
		case "POST":
			added = true
			var lock Lock
			require.NoError(t, json.NewDecoder(r.Body).Decode(&lock))
			assert.Equal(t, LockTypeSync, lock.Type)
			assert.Equal(t, LockClientDesktop, lock.ClientType)
			fmt.Fprint(w, lockJSON(LockTypeSync, lock.ClientID, time.Now()))
		}
	}))

	require.NoError(t, client.AcquireSyncLock(context.Background()))
	assert.True(t, added)
	require.NotNil(t, client.currentLock)
	assert.Equal(t, client.clientID, client.currentLock.ClientID)
}

func TestAcquireSyncLock_WaitsForExclusive(t *testing.T) {
	// the handler needs the client's ID, so declare before assigning
	var client *Client
	var listCalls int
	client = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			listCalls++
			if listCalls == 1 {
				fmt.Fprintf(w, `{"items": [%s], "has_more": false}`,
					lockJSON(LockTypeExclusive, "other-client", time.Now()))
				return
			}
			fmt.Fprint(w, `{"items": [], "has_more": false}`)
		case "POST":
			fmt.Fprint(w, lockJSON(LockTypeSync, client.clientID, time.Now()))
		}
	}))

	require.NoError(t, client.AcquireSyncLock(context.Background()))
	assert.GreaterOrEqual(t, listCalls, 2)
	assert.NotNil(t, client.currentLock)
}

func TestAcquireSyncLock_ExclusiveRace(t *testing.T) {
	// An exclusive lock appearing right after ours was added must make
	// the client back off and retry.
	var client *Client
	var listCalls int
	var deleted []string
	client = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			listCalls++
			if listCalls == 2 {
				fmt.Fprintf(w, `{"items": [%s], "has_more": false}`,
					lockJSON(LockTypeExclusive, "other-client", time.Now()))
				return
			}
			fmt.Fprint(w, `{"items": [], "has_more": false}`)
		case "POST":
			fmt.Fprint(w, lockJSON(LockTypeSync, client.clientID, time.Now()))
		case "DELETE":
			deleted = append(deleted, r.URL.Path)
			fmt.Fprint(w, `{}`)
		}
	}))

	require.NoError(t, client.AcquireSyncLock(context.Background()))
	require.Len(t, deleted, 1)
	assert.Equal(t, "/api/locks/1_1_"+client.clientID, deleted[0])
	assert.NotNil(t, client.currentLock)
}

func TestAcquireSyncLock_GivesUp(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"items": [%s], "has_more": false}`,
			lockJSON(LockTypeExclusive, "other-client", time.Now()))
	}))
	client.lockWaitTimeout = 100 * time.Millisecond

	err := client.AcquireSyncLock(context.Background())
	assert.ErrorIs(t, err, ErrTargetLocked)
	assert.Nil(t, client.currentLock)
}

func TestStaleLocksDoNotBlock(t *testing.T) {
	var client *Client
	client = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			// expired exclusive lock from a crashed client
			fmt.Fprintf(w, `{"items": [%s], "has_more": false}`,
				lockJSON(LockTypeExclusive, "other-client", time.Now().Add(-10*time.Minute)))
		case "POST":
			fmt.Fprint(w, lockJSON(LockTypeSync, client.clientID, time.Now()))
		}
	}))

	require.NoError(t, client.AcquireSyncLock(context.Background()))
}

func TestWithSyncLock(t *testing.T) {
	var client *Client
	var deleted bool
	client = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			fmt.Fprint(w, `{"items": [], "has_more": false}`)
		case "POST":
			fmt.Fprint(w, lockJSON(LockTypeSync, client.clientID, time.Now()))
		case "DELETE":
			deleted = true
			fmt.Fprint(w, `{}`)
		}
	}))

	var ranLocked bool
	err := client.WithSyncLock(context.Background(), func(ctx context.Context) error {
		ranLocked = client.currentLock != nil
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ranLocked)
	assert.True(t, deleted)
	assert.Nil(t, client.currentLock)
}

func TestWithSyncLock_ReleasesOnError(t *testing.T) {
	var client *Client
	var deleted bool
	client = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "GET":
			fmt.Fprint(w, `{"items": [], "has_more": false}`)
		case "POST":
			fmt.Fprint(w, lockJSON(LockTypeSync, client.clientID, time.Now()))
		case "DELETE":
			deleted = true
			fmt.Fprint(w, `{}`)
		}
	}))

	wantErr := errors.New("work failed")
	err := client.WithSyncLock(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.True(t, deleted)
	assert.Nil(t, client.currentLock)
}

func TestReleaseSyncLock_WithoutLock(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request %s should not reach the server", r.URL.Path)
	}))
	assert.NoError(t, client.ReleaseSyncLock(context.Background()))
}
