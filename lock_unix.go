//go:build unix

package banking

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes an exclusive advisory lock on path without waiting.
// It fails with ErrRecordLocked if another open file description holds it.
func lockFile(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}
	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrRecordLocked, path)
		}
		return nil, fmt.Errorf("could not lock %s: %w", path, err)
	}
	return func() error {
		unix.Flock(fd, unix.LOCK_UN)
		return f.Close()
	}, nil
}
