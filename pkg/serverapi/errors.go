package serverapi

import (
	"errors"

	"github.com/dataplume/joplingo/pkg/joplin"
)

var (
	// ErrNotFound is returned when the requested item does not exist.
	ErrNotFound = joplin.ErrNotFound

	// ErrNoLock is returned by item requests issued without an active
	// sync lock. Acquire one with AcquireSyncLock or WithSyncLock.
	ErrNoLock = errors.New("no sync lock held")

	// ErrLockExpired is returned when the held sync lock has passed
	// its TTL. The lock must be released and re-acquired.
	ErrLockExpired = errors.New("sync lock expired")

	// ErrTargetLocked is returned when the sync target stays locked by
	// another client for longer than the configured lock wait timeout.
	ErrTargetLocked = errors.New("sync target is locked")

	// ErrNotSupported marks operations the server API does not offer.
	ErrNotSupported = errors.New("operation not supported by the server API")
)
