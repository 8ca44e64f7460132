// Package settings loads, repairs, validates and persists the grading settings document.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/gradebook/internal/contract"
	"github.com/huangsam/gradebook/schema"
	"gopkg.in/yaml.v3"
)

// Source tells where loaded settings came from.
type Source string

// All settings sources.
const (
	SourceFile     Source = "file"     // read from disk, possibly repaired
	SourceCreated  Source = "created"  // file was missing and defaults were written
	SourceDefaults Source = "defaults" // built-in defaults, nothing usable on disk
)

// LoadReport describes what Load did to produce its result.
type LoadReport struct {
	Source   Source
	Repaired []string // "ui" for a replaced section, "general.project_weight" for a backfilled key
	Err      error    // why the file was not used as-is, if it was not
}

// Load returns the settings stored at path. It never fails: missing, unreadable
// or corrupt files fall back to defaults.
func Load(path string) *schema.Settings {
	s, _ := LoadWithReport(path)
	return s
}

// LoadWithReport is Load plus a description of the fallbacks and repairs applied.
func LoadWithReport(path string) (*schema.Settings, LoadReport) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := schema.DefaultSettings()
		if err := write(path, s); err != nil {
			contract.LogWarn("Cannot create default settings", err)
			return s, LoadReport{Source: SourceDefaults, Err: err}
		}
		return s, LoadReport{Source: SourceCreated}
	}
	if err != nil {
		contract.LogWarn("Cannot read settings, using defaults", err)
		return schema.DefaultSettings(), LoadReport{Source: SourceDefaults, Err: err}
	}

	var stored map[string]any
	if err := json.Unmarshal(data, &stored); err != nil {
		err = fmt.Errorf("corrupt settings file %s: %w", path, err)
		contract.LogWarn("Cannot parse settings, using defaults", err)
		return schema.DefaultSettings(), LoadReport{Source: SourceDefaults, Err: err}
	}
	if stored == nil {
		stored = make(map[string]any)
	}

	defaults, err := defaultDocument()
	if err != nil {
		return schema.DefaultSettings(), LoadReport{Source: SourceDefaults, Err: err}
	}
	repaired := repair(stored, defaults)

	s, err := decode(stored)
	if err != nil {
		err = fmt.Errorf("settings file %s has invalid values: %w", path, err)
		contract.LogWarn("Cannot decode settings, using defaults", err)
		return schema.DefaultSettings(), LoadReport{Source: SourceDefaults, Err: err}
	}
	return s, LoadReport{Source: SourceFile, Repaired: repaired}
}

// repair backfills stored from defaults: absent or non-mapping sections are
// replaced wholesale, and mapping sections get their missing keys one level deep.
func repair(stored, defaults map[string]any) []string {
	var repaired []string
	for _, section := range sortedKeys(defaults) {
		def := defaults[section]
		current, ok := stored[section]
		if !ok {
			stored[section] = def
			repaired = append(repaired, section)
			continue
		}
		defMap, isMap := def.(map[string]any)
		if !isMap {
			continue
		}
		currentMap, isMap := current.(map[string]any)
		if !isMap {
			stored[section] = def
			repaired = append(repaired, section)
			continue
		}
		for _, key := range sortedKeys(defMap) {
			if _, ok := currentMap[key]; !ok {
				currentMap[key] = defMap[key]
				repaired = append(repaired, section+"."+key)
			}
		}
	}
	return repaired
}

func defaultDocument() (map[string]any, error) {
	data, err := json.Marshal(schema.DefaultSettings())
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decode(doc map[string]any) (*schema.Settings, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var s schema.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Courses == nil {
		s.Courses = map[string][]schema.Criterion{}
	}
	for name, criteria := range s.Courses {
		if criteria == nil {
			s.Courses[name] = []schema.Criterion{}
		}
	}
	return &s, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the settings to path atomically. It reports failure instead of
// returning an error.
func Save(path string, s *schema.Settings) bool {
	if err := write(path, s); err != nil {
		contract.LogWarn("Cannot save settings", err)
		return false
	}
	return true
}

// write replaces path through a temporary file in the same directory.
func write(path string, s *schema.Settings) (err error) {
	data, err := Marshal(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary settings file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync settings: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close settings: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// Marshal renders settings as indented UTF-8 JSON with non-ASCII text kept verbatim.
func Marshal(s *schema.Settings) ([]byte, error) {
	out := *s
	if out.Courses == nil {
		out.Courses = map[string][]schema.Criterion{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(&out); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// Render returns settings in the given display format: json or yaml.
func Render(s *schema.Settings, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return Marshal(s)
	case "yaml", "yml":
		return yaml.Marshal(s)
	default:
		return nil, fmt.Errorf("invalid settings format '%s'. must be json, yaml", format)
	}
}
