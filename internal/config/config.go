// Package config loads the optional chaplint.toml overrides. The file is
// discovered by walking up from the start directory, manifest style; absent
// sections fall back to the built-in defaults so a partial file stays valid.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"chaplint/internal/detect"
)

// FileName is the override file looked up from the working directory.
const FileName = "chaplint.toml"

type fileConfig struct {
	Markers    markersSection      `toml:"markers"`
	Thresholds thresholdsSection   `toml:"thresholds"`
	Whitelist  whitelistSection    `toml:"whitelist"`
	Report     reportSection       `toml:"report"`
	Suspicious []suspiciousSection `toml:"suspicious"`
}

type markersSection struct {
	// Marker families as strings, one marker per rune.
	Upper   string `toml:"upper"`
	Chapter string `toml:"chapter"`
}

type thresholdsSection struct {
	MaxTitleLength   *int `toml:"max_title_length"`
	MaxSentencePunct *int `toml:"max_sentence_punct"`
	TruncateWidth    *int `toml:"truncate_width"`
}

type whitelistSection struct {
	Titles []string `toml:"titles"`
}

type reportSection struct {
	Top *int `toml:"top"`
}

type suspiciousSection struct {
	Pattern     string `toml:"pattern"`
	Description string `toml:"description"`
}

// Settings is the decoded configuration: the detector config plus the few
// presentation knobs the file may set.
type Settings struct {
	Detect detect.Config
	// Top caps rendered issue details; 0 keeps the renderer default.
	Top int
	// Path is the file the settings came from, empty for pure defaults.
	Path string
}

// Defaults returns Settings untouched by any file.
func Defaults() Settings {
	return Settings{Detect: detect.DefaultConfig()}
}

// Find walks up from startDir looking for chaplint.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults.
func Load(path string) (Settings, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	s := Defaults()
	s.Path = path

	if fc.Markers.Upper != "" {
		s.Detect.Markers.Upper = []rune(fc.Markers.Upper)
	}
	if fc.Markers.Chapter != "" {
		s.Detect.Markers.Chapter = []rune(fc.Markers.Chapter)
	}
	if fc.Thresholds.MaxTitleLength != nil {
		s.Detect.MaxTitleLength = *fc.Thresholds.MaxTitleLength
	}
	if fc.Thresholds.MaxSentencePunct != nil {
		s.Detect.MaxSentencePunct = *fc.Thresholds.MaxSentencePunct
	}
	if fc.Thresholds.TruncateWidth != nil {
		s.Detect.TruncateWidth = *fc.Thresholds.TruncateWidth
	}
	if fc.Whitelist.Titles != nil {
		s.Detect.SpecialTitles = fc.Whitelist.Titles
	}
	if fc.Report.Top != nil {
		s.Top = *fc.Report.Top
	}
	if len(fc.Suspicious) > 0 {
		patterns := make([]detect.SuspiciousPattern, 0, len(fc.Suspicious))
		for _, sp := range fc.Suspicious {
			if sp.Pattern == "" {
				return Settings{}, fmt.Errorf("%s: suspicious entry without pattern", path)
			}
			patterns = append(patterns, detect.SuspiciousPattern{
				Expr:        sp.Pattern,
				Description: sp.Description,
			})
		}
		s.Detect.Suspicious = patterns
	}

	return s, nil
}

// Resolve returns the effective settings for startDir: an explicit path
// wins, otherwise the nearest discovered file, otherwise defaults.
func Resolve(explicitPath, startDir string) (Settings, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Defaults(), nil
	}
	return Load(path)
}
