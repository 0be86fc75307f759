//go:build !unix

package banking

import (
	"fmt"
	"os"
)

// lockFile only makes sure the lock file can be created. On these platforms a
// ledger held open by another process surfaces as a failed rename instead.
func lockFile(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}
	return f.Close, nil
}
