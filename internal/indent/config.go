package indent

import (
	"errors"
	"strings"
)

// ErrBadConfig is returned when the engine configuration is rejected at
// entry, before any line is processed.
var ErrBadConfig = errors.New("indent: invalid configuration")

// Config is the per-invocation engine configuration. It is never mutated by
// the engine, so one Config may serve concurrent runs over different files.
type Config struct {
	// Unit is the canonical indentation string applied per depth level.
	Unit string
	// DetectTabs enables dominant-unit detection: in a tab-indented file a
	// leading tab counts as one canonical unit. When off, tabs expand to
	// the Python tokenizer default of 8 columns.
	DetectTabs bool
}

// DefaultConfig returns the engine defaults: four spaces, tab detection on.
func DefaultConfig() Config {
	return Config{Unit: "    ", DetectTabs: true}
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	if c.Unit == "" {
		return errors.Join(ErrBadConfig, errors.New("canonical unit is empty"))
	}
	if strings.Trim(c.Unit, " \t") != "" {
		return errors.Join(ErrBadConfig, errors.New("canonical unit must be spaces or tabs"))
	}
	return nil
}

// UnitWidth returns the column width of one canonical unit. Tabs in the
// unit count as four columns.
func (c Config) UnitWidth() int {
	w := 0
	for i := 0; i < len(c.Unit); i++ {
		if c.Unit[i] == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}
