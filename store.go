package banking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/rupeshchamp/banking/logger"
)

// Store is the ledger record store: one CSV file holding one row per account.
//
// The Store keeps an index of the file (account number to row, phone number
// to account number) that is rebuilt whenever the file changed on disk since
// it was last read. It assumes a single writer; a second process mutating the
// file at the same time is detected and reported as ErrRecordLocked.
type Store struct {
	path string

	intN   func(n int) int
	now    func() time.Time
	rename func(oldpath, newpath string) error

	// index, valid for the file state recorded in stamp.
	stamp    fileStamp
	accounts []Account
	byID     map[string]int
	byPhone  map[string]string
}

type fileStamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRand sets the random source used to generate account numbers.
func WithRand(r *rand.Rand) StoreOption {
	return func(s *Store) { s.intN = r.IntN }
}

// WithClock sets the clock used for the year and month prefix of account numbers.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// Open returns a Store backed by the ledger file at path.
// The file does not need to exist: it is created by the first Insert.
func Open(path string, opts ...StoreOption) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty ledger path", ErrIOUnavailable)
	}
	s := &Store{
		path:   path,
		intN:   rand.IntN,
		now:    time.Now,
		rename: os.Rename,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the ledger file path.
func (s *Store) Path() string { return s.path }

func (s *Store) lockPath() string { return s.path + ".lock" }

// refresh reloads the index if the ledger file changed since it was last read.
func (s *Store) refresh() error {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.reset(fileStamp{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}
	stamp := fileStamp{exists: true, size: info.Size(), modTime: info.ModTime()}
	if stamp == s.stamp && s.byID != nil {
		return nil
	}
	return s.load(stamp)
}

// invalidate forces the next refresh to reread the file.
func (s *Store) invalidate() { s.byID = nil }

func (s *Store) reset(stamp fileStamp) {
	s.stamp = stamp
	s.accounts = s.accounts[:0]
	s.byID = make(map[string]int)
	s.byPhone = make(map[string]string)
}

func (s *Store) load(stamp fileStamp) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}
	defer f.Close()

	s.reset(stamp)
	for a, err := range DecodeLedger(f) {
		if err != nil {
			s.invalidate()
			return fmt.Errorf("could not load ledger %q: %w", s.path, err)
		}
		s.accounts = append(s.accounts, a)
		// first match wins for hand-edited files with duplicates
		if _, dup := s.byID[a.ID]; !dup {
			s.byID[a.ID] = len(s.accounts) - 1
		}
		if _, dup := s.byPhone[a.Phone]; !dup {
			s.byPhone[a.Phone] = a.ID
		}
	}
	return nil
}

// Exists reports whether an account with this account number is in the ledger.
func (s *Store) Exists(id string) (bool, error) {
	if err := s.refresh(); err != nil {
		return false, err
	}
	_, ok := s.byID[id]
	return ok, nil
}

// Insert appends a to the ledger, writing the header first if the file is new.
func (s *Store) Insert(a Account) error {
	for _, f := range []Field{FieldAccountNumber, FieldPhoneNumber} {
		v, _ := a.Get(f)
		if err := checkValue(f, v); err != nil {
			return err
		}
	}
	if a.Balance < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, FieldAmount)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: could not create ledger directory: %w", ErrIOUnavailable, err)
	}
	unlock, err := lockFile(s.lockPath())
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.refresh(); err != nil {
		return err
	}
	if _, ok := s.byID[a.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, a.ID)
	}
	if id, ok := s.byPhone[a.Phone]; ok {
		return fmt.Errorf("%w: used by account %s", ErrDuplicatePhone, id)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}
	defer f.Close()
	defer s.invalidate()

	w := csv.NewWriter(f)
	if !s.stamp.exists || s.stamp.size == 0 {
		if err := w.Write(header()); err != nil {
			return fmt.Errorf("failed to write ledger header: %w", err)
		}
	}
	if err := w.Write(encodeAccount(a)); err != nil {
		return fmt.Errorf("failed to write account %q: %w", a.ID, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to append account %q: %w", a.ID, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync ledger %q: %w", s.path, err)
	}
	return f.Close()
}

// LookupByKey returns the account with this account number.
func (s *Store) LookupByKey(id string) (Account, error) {
	if err := s.refresh(); err != nil {
		return Account{}, err
	}
	i, ok := s.byID[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	return s.accounts[i], nil
}

// LookupBySecondary returns the account number registered with this phone number.
func (s *Store) LookupBySecondary(phone string) (string, error) {
	if err := s.refresh(); err != nil {
		return "", err
	}
	id, ok := s.byPhone[phone]
	if !ok {
		return "", fmt.Errorf("%w: phone number %s", ErrNotFound, phone)
	}
	return id, nil
}

// GetField returns the stored value of one field of an account.
func (s *Store) GetField(id string, field Field) (string, error) {
	if _, ok := column(field); !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	a, err := s.LookupByKey(id)
	if err != nil {
		return "", err
	}
	return a.Get(field)
}

// AtomicUpdate sets one field of an account by rewriting the whole ledger into
// a temporary file and renaming it over the original, so that a crash leaves
// either the old or the new file, never a partial one.
//
// If no row matches id, the ledger is still rewritten unchanged and ErrNotFound
// is returned.
func (s *Store) AtomicUpdate(id string, field Field, value string) (err error) {
	col, ok := column(field)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	if field == FieldAccountNumber {
		return fmt.Errorf("%w: %s", ErrImmutableField, field)
	}
	if err := checkValue(field, value); err != nil {
		return err
	}
	if err := s.refresh(); err != nil {
		return err
	}
	if !s.stamp.exists {
		return fmt.Errorf("%w: account %s", ErrNotFound, id)
	}

	unlock, err := lockFile(s.lockPath())
	if err != nil {
		return err
	}
	defer unlock()
	defer s.invalidate()

	src, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}
	defer src.Close()
	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOUnavailable, err)
	}

	dir, base := filepath.Split(s.path)
	tmp, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary ledger: %w", ErrIOUnavailable, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	found, err := copyUpdated(tmp, src, id, col, value)
	if err != nil {
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("could not set temporary ledger mode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("could not sync temporary ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary ledger: %w", err)
	}
	src.Close()

	if err := s.rename(tmp.Name(), s.path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %w", ErrRecordLocked, err)
		}
		return fmt.Errorf("could not replace ledger %q: %w", s.path, err)
	}
	syncDir(dir)

	if !found {
		logger.Warn("ledger update matched no account", logger.Fields{"account": id, "field": string(field)})
		return fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	return nil
}

// copyUpdated streams the ledger from src to dst, setting column col of the
// first row keyed id to value. It reports whether such a row was found.
func copyUpdated(dst io.Writer, src io.Reader, id string, col int, value string) (bool, error) {
	w := csv.NewWriter(dst)
	if err := w.Write(header()); err != nil {
		return false, fmt.Errorf("failed to write ledger header: %w", err)
	}

	found := false
	r, err := newLedgerReader(src)
	if errors.Is(err, io.EOF) {
		w.Flush()
		return false, w.Error()
	}
	if err != nil {
		return false, err
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrCorruptLedger, err)
		}
		if len(rec) != len(Columns) {
			return false, fmt.Errorf("%w: row has %d fields, want %d", ErrCorruptLedger, len(rec), len(Columns))
		}
		if !found && rec[0] == id {
			rec[col] = value
			found = true
		}
		if err := w.Write(rec); err != nil {
			return false, fmt.Errorf("failed to write temporary ledger: %w", err)
		}
	}
	w.Flush()
	return found, w.Error()
}

// syncDir flushes a directory entry change (the rename) to disk.
// Not every platform supports it, so errors are ignored.
func syncDir(dir string) {
	if dir == "" {
		dir = "."
	}
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	d.Sync()
	d.Close()
}

// ScanAll returns every account of the ledger in file order.
// Each call reopens and rereads the file. On failure a single error is yielded.
func (s *Store) ScanAll() iter.Seq2[Account, error] {
	return func(yield func(Account, error) bool) {
		f, err := os.Open(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		if err != nil {
			yield(Account{}, fmt.Errorf("%w: %w", ErrIOUnavailable, err))
			return
		}
		defer f.Close()
		for a, err := range DecodeLedger(f) {
			if !yield(a, err) || err != nil {
				return
			}
		}
	}
}
