package banking

import (
	"fmt"

	"github.com/rupeshchamp/banking/logger"
)

// maxKeyAttempts bounds account number generation. A month prefix leaves
// 900,000 bodies, so hitting the bound means the month is practically full.
const maxKeyAttempts = 1000

// GenerateUniqueKey returns an account number that is not used in the ledger:
// the two-digit year and month followed by a random six-digit body.
//
// Uniqueness holds at the time of the call only; Insert still rejects a
// duplicate if another writer took the number in between.
func (s *Store) GenerateUniqueKey() (string, error) {
	now := s.now()
	prefix := fmt.Sprintf("%02d%02d", now.Year()%100, int(now.Month()))
	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		id := fmt.Sprintf("%s%06d", prefix, 100000+s.intN(900000))
		exists, err := s.Exists(id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
		logger.Warn("account number collision, regenerating", logger.Fields{"candidate": id, "attempt": attempt})
	}
	return "", fmt.Errorf("%w after %d attempts with prefix %s", ErrKeySpaceExhausted, maxKeyAttempts, prefix)
}
