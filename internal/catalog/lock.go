package catalog

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrWriterBusy is returned when another process holds the catalog writer lock.
var ErrWriterBusy = errors.New("catalog writer lock held by another process")

// WriterLock is an advisory lock held for the duration of a recording scan.
type WriterLock struct {
	lock *flock.Flock
}

// LockPath returns the lock file guarding writers of the catalog at dbPath.
func LockPath(dbPath string) string {
	return dbPath + ".lock"
}

// AcquireWriter takes the writer lock without blocking. It fails with
// ErrWriterBusy when another writer already holds it.
func (s *Store) AcquireWriter() (*WriterLock, error) {
	lock := flock.New(LockPath(s.path))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWriterBusy, lock.Path())
	}
	return &WriterLock{lock: lock}, nil
}

// Release drops the writer lock. Releasing a nil or released lock is a no-op.
func (l *WriterLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release catalog lock: %w", err)
	}
	l.lock = nil
	return nil
}
