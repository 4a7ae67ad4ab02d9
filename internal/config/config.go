// Package config загружает настройки проекта из pyproject.toml
// (секция [tool.retab]) и валидирует их перед запуском движка.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings is the resolved project configuration with defaults applied.
type Settings struct {
	// LineLength is the PEP 8 wrap limit for code lines.
	LineLength int
	// CommentWidth is the reflow limit for comment text.
	CommentWidth int
	// Indent is the canonical indentation unit width in spaces.
	Indent int
	// QuoteStyle is auto, single or double. Validated and part of the
	// result cache key; no formatting pass consults it yet.
	// TODO: token-safe quote normalization pass.
	QuoteStyle string
	// Path points at the pyproject.toml the settings came from; empty when
	// running on defaults.
	Path string
}

// Default returns the settings used when no pyproject.toml is found.
func Default() Settings {
	return Settings{
		LineLength:   79,
		CommentWidth: 72,
		Indent:       4,
		QuoteStyle:   "auto",
	}
}

// Unit renders the indentation unit as a string of spaces.
func (s Settings) Unit() string {
	return strings.Repeat(" ", s.Indent)
}

// Validate rejects settings the pipeline cannot honor.
func (s Settings) Validate() error {
	if s.LineLength < 20 || s.LineLength > 500 {
		return fmt.Errorf("line-length %d: must be between 20 and 500", s.LineLength)
	}
	if s.CommentWidth < 10 || s.CommentWidth > s.LineLength {
		return fmt.Errorf("comment-width %d: must be between 10 and line-length", s.CommentWidth)
	}
	if s.Indent < 1 || s.Indent > 16 {
		return fmt.Errorf("indent %d: must be between 1 and 16", s.Indent)
	}
	switch s.QuoteStyle {
	case "auto", "single", "double":
	default:
		return fmt.Errorf("quote-style %q: must be auto, single or double", s.QuoteStyle)
	}
	return nil
}

type pyprojectFile struct {
	Tool struct {
		Retab toolSection `toml:"retab"`
	} `toml:"tool"`
}

type toolSection struct {
	LineLength   int    `toml:"line-length"`
	CommentWidth int    `toml:"comment-width"`
	Indent       int    `toml:"indent"`
	QuoteStyle   string `toml:"quote-style"`
}

// FindPyproject walks up from startDir looking for pyproject.toml.
func FindPyproject(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "pyproject.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads one pyproject.toml. Keys absent from [tool.retab] keep their
// defaults; a missing section yields pure defaults.
func Load(path string) (Settings, error) {
	s := Default()
	var cfg pyprojectFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	s.Path = path
	if !meta.IsDefined("tool", "retab") {
		return s, nil
	}
	if meta.IsDefined("tool", "retab", "line-length") {
		s.LineLength = cfg.Tool.Retab.LineLength
	}
	if meta.IsDefined("tool", "retab", "comment-width") {
		s.CommentWidth = cfg.Tool.Retab.CommentWidth
	}
	if meta.IsDefined("tool", "retab", "indent") {
		s.Indent = cfg.Tool.Retab.Indent
	}
	if meta.IsDefined("tool", "retab", "quote-style") {
		s.QuoteStyle = strings.ToLower(strings.TrimSpace(cfg.Tool.Retab.QuoteStyle))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Discover resolves settings for a file or directory: the nearest
// pyproject.toml wins, otherwise defaults.
func Discover(start string) (Settings, error) {
	dir := start
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		dir = filepath.Dir(start)
	}
	path, ok, err := FindPyproject(dir)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
