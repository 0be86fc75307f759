package banking

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the settings of a ledger installation.
type Config struct {
	DataDir    string `toml:"data_dir"`
	LedgerFile string `toml:"ledger_file"` // relative to DataDir
	LoanDir    string `toml:"loan_dir"`    // relative to DataDir
	Currency   string `toml:"currency"`
	Limits     Limits `toml:"limits"`
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:    "Banking",
		LedgerFile: filepath.Join("UserDetails", "User_details.csv"),
		LoanDir:    "LoanDetails",
		Currency:   DefaultCurrency,
		Limits:     DefaultLimits(),
	}
}

// LoadConfig reads a TOML configuration file over the defaults.
// A missing file is not an error: the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("could not read config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return DefaultConfig(), fmt.Errorf("config %q: unknown keys %v", path, undecoded)
	}
	if err := cfg.Limits.validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// LedgerPath returns the full path of the ledger file.
func (c Config) LedgerPath() string { return c.resolve(c.LedgerFile) }

// LoanPath returns the directory holding repayment schedules.
func (c Config) LoanPath() string { return c.resolve(c.LoanDir) }

func (c Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}
