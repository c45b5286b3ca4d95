package serverapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// Sync lock timings fixed by the Joplin lock spec: a lock is considered
// active for three minutes after its last update and is refreshed once
// it is older than a minute.
// https://joplinapp.org/help/dev/spec/sync_lock
const (
	lockTTL        = 3 * time.Minute
	lockRefreshAge = time.Minute
)

// LockType is the kind of a sync lock.
type LockType int

const (
	LockTypeSync      LockType = 1
	LockTypeExclusive LockType = 2
)

// LockClientType is the kind of client holding a lock. This client
// registers as a desktop client.
type LockClientType int

const (
	LockClientDesktop LockClientType = 1
	LockClientMobile  LockClientType = 2
	LockClientCLI     LockClientType = 3
)

// Lock is a sync lock as stored on the server. Unlike items, locks
// travel as camelCase JSON.
type Lock struct {
	ID          string           `json:"id,omitempty"`
	Type        LockType         `json:"type"`
	ClientType  LockClientType   `json:"clientType"`
	ClientID    string           `json:"clientId"`
	UpdatedTime joplin.Timestamp `json:"updatedTime"`
}

// name is the lock file name used for deletion.
// https://joplinapp.org/help/dev/spec/sync_lock#lock-files
func (l Lock) name() string {
	return fmt.Sprintf("%d_%d_%s", l.Type, l.ClientType, l.ClientID)
}

func newClientID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Locks lists the locks on the sync target, one page at a time.
func (c *Client) Locks(ctx context.Context, opts *ListOptions) (*joplin.Page[Lock], error) {
	body, err := c.do(ctx, "GET", "/api/locks", opts.rawQuery(), "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing locks: %w", err)
	}
	var page joplin.Page[Lock]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding locks: %w", err)
	}
	return &page, nil
}

// AllLocks lists the locks on the sync target across all pages.
func (c *Client) AllLocks(ctx context.Context) ([]Lock, error) {
	return collectAll(func(page int) (*joplin.Page[Lock], error) {
		return c.Locks(ctx, &ListOptions{Page: page})
	})
}

// AcquireSyncLock takes a sync lock for this client, retrying with
// increasing delay while another client holds the target. It follows
// the Joplin lock protocol: refuse while an active exclusive lock or a
// sync lock with our client ID exists, and re-check for exclusive
// locks after acquiring to close the race with a client taking an
// exclusive lock at the same time.
// https://joplinapp.org/help/dev/spec/sync_lock#acquiring-a-sync-lock
func (c *Client) AcquireSyncLock(ctx context.Context) error {
	operation := func() error {
		blocked, err := c.syncBlocked(ctx, LockTypeSync, LockTypeExclusive)
		if err != nil {
			return backoff.Permanent(err)
		}
		if blocked {
			return ErrTargetLocked
		}

		lock, err := c.addLock(ctx)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("adding sync lock: %w", err))
		}

		exclusive, err := c.syncBlocked(ctx, LockTypeExclusive)
		if err != nil {
			return backoff.Permanent(err)
		}
		if exclusive {
			if err := c.deleteLock(ctx, *lock); err != nil {
				return backoff.Permanent(fmt.Errorf("backing off after exclusive lock: %w", err))
			}
			return ErrTargetLocked
		}

		c.mu.Lock()
		c.currentLock = lock
		c.mu.Unlock()
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.lockWaitTimeout
	notify := func(err error, wait time.Duration) {
		c.logger.Debug("sync target is locked, waiting", "wait", wait)
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		return fmt.Errorf("acquiring sync lock: %w", err)
	}
	return nil
}

// ReleaseSyncLock drops this client's sync lock. Releasing without
// holding a lock is a no-op.
func (c *Client) ReleaseSyncLock(ctx context.Context) error {
	c.mu.Lock()
	lock := c.currentLock
	c.currentLock = nil
	c.mu.Unlock()

	if lock == nil {
		return nil
	}
	if err := c.deleteLock(ctx, *lock); err != nil {
		return fmt.Errorf("releasing sync lock: %w", err)
	}
	return nil
}

// WithSyncLock runs fn under a sync lock and releases the lock
// afterwards, also when fn fails.
func (c *Client) WithSyncLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.AcquireSyncLock(ctx); err != nil {
		return err
	}
	var result *multierror.Error
	if err := fn(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.ReleaseSyncLock(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// syncBlocked reports whether an active lock of the given types blocks
// sync for this client. Sync locks of other clients do not block.
func (c *Client) syncBlocked(ctx context.Context, types ...LockType) (bool, error) {
	locks, err := c.AllLocks(ctx)
	if err != nil {
		return false, fmt.Errorf("checking locks: %w", err)
	}
	for _, lock := range locks {
		if !containsLockType(types, lock.Type) {
			continue
		}
		if !c.lockActive(lock) {
			continue
		}
		if lock.Type == LockTypeExclusive {
			return true, nil
		}
		if lock.Type == LockTypeSync && lock.ClientID == c.clientID {
			return true, nil
		}
	}
	return false, nil
}

func containsLockType(types []LockType, t LockType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func (c *Client) lockActive(lock Lock) bool {
	return lock.UpdatedTime.Add(c.lockTTL).After(time.Now())
}

// addLock creates or refreshes this client's sync lock on the server.
func (c *Client) addLock(ctx context.Context) (*Lock, error) {
	payload, err := json.Marshal(struct {
		Type       LockType       `json:"type"`
		ClientType LockClientType `json:"clientType"`
		ClientID   string         `json:"clientId"`
	}{LockTypeSync, LockClientDesktop, c.clientID})
	if err != nil {
		return nil, fmt.Errorf("marshaling lock: %w", err)
	}
	body, err := c.do(ctx, "POST", "/api/locks", "", "application/json", payload)
	if err != nil {
		return nil, err
	}
	var lock Lock
	if err := json.Unmarshal(body, &lock); err != nil {
		return nil, fmt.Errorf("decoding lock: %w", err)
	}
	return &lock, nil
}

func (c *Client) deleteLock(ctx context.Context, lock Lock) error {
	_, err := c.do(ctx, "DELETE", "/api/locks/"+lock.name(), "", "", nil)
	return err
}

// ensureLock gates item requests: a lock must be held and active, and
// is refreshed on the server once it is older than the refresh age.
func (c *Client) ensureLock(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentLock == nil {
		return fmt.Errorf("%w: acquire a lock before issuing item requests", ErrNoLock)
	}
	if !c.lockActive(*c.currentLock) {
		return fmt.Errorf("%w: release the lock and acquire a new one", ErrLockExpired)
	}
	if c.currentLock.UpdatedTime.Add(c.lockRefreshAge).Before(time.Now()) {
		c.logger.Debug("refreshing sync lock")
		lock, err := c.addLock(ctx)
		if err != nil {
			return fmt.Errorf("refreshing sync lock: %w", err)
		}
		c.currentLock = lock
	}
	return nil
}
