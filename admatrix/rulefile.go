package admatrix

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TableSpec is the file form of a RuleTable.
type TableSpec struct {
	Default string `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// RuleFile is the YAML document accepted by LoadRuleFile. Dimensions left
// out keep their built-in table.
type RuleFile struct {
	Concept       *TableSpec `yaml:"concept,omitempty"`
	Trigger       *TableSpec `yaml:"trigger,omitempty"`
	DriverPersona *TableSpec `yaml:"driver_persona,omitempty"`
	Format        *TableSpec `yaml:"format,omitempty"`
	HookType      *TableSpec `yaml:"hook_type,omitempty"`
}

func (f *RuleFile) specs() map[Dimension]*TableSpec {
	return map[Dimension]*TableSpec{
		DimensionConcept: f.Concept,
		DimensionTrigger: f.Trigger,
		DimensionPersona: f.DriverPersona,
		DimensionFormat:  f.Format,
		DimensionHook:    f.HookType,
	}
}

// RuleFileFromSet converts a rule set to its file form.
func RuleFileFromSet(set RuleSet) RuleFile {
	spec := func(dim Dimension) *TableSpec {
		t := set.Table(dim)
		if t == nil {
			return nil
		}
		return &TableSpec{Default: t.Default(), Rules: t.Rules()}
	}
	return RuleFile{
		Concept:       spec(DimensionConcept),
		Trigger:       spec(DimensionTrigger),
		DriverPersona: spec(DimensionPersona),
		Format:        spec(DimensionFormat),
		HookType:      spec(DimensionHook),
	}
}

// EncodeRuleSet writes set as YAML.
func EncodeRuleSet(w io.Writer, set RuleSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(RuleFileFromSet(set)); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return enc.Close()
}

// ParseRuleSet decodes a rule file and merges it over the built-in tables.
// A table given in the file replaces the built-in one as a whole.
func ParseRuleSet(data []byte) (RuleSet, error) {
	var file RuleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	merged := DefaultRuleSet()
	for dim, spec := range file.specs() {
		if spec == nil {
			continue
		}
		fallback := spec.Default
		if strings.TrimSpace(fallback) == "" {
			fallback = merged[dim].Default()
		}
		table, err := NewRuleTable(dim, fallback, spec.Rules)
		if err != nil {
			return nil, err
		}
		merged[dim] = table
	}
	return merged, nil
}

// LoadRuleFile reads path and merges it over the built-in tables. An
// empty path returns the built-in tables; the boolean reports whether a
// file was used.
func LoadRuleFile(path string) (RuleSet, bool, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return DefaultRuleSet(), false, nil
	}
	data, err := os.ReadFile(filepath.Clean(clean))
	if err != nil {
		return nil, false, fmt.Errorf("read rules: %w", err)
	}
	set, err := ParseRuleSet(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", filepath.Base(clean), err)
	}
	return set, true, nil
}

// EnsureRuleFile writes the built-in tables to path when no file exists
// yet, giving users a starting point to edit. It reports whether a file
// was created.
func EnsureRuleFile(path string) (bool, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return false, nil
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("check rule file: %w", err)
	}
	if dir := filepath.Dir(clean); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create rule file dir: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := EncodeRuleSet(&buf, DefaultRuleSet()); err != nil {
		return false, err
	}
	if err := os.WriteFile(clean, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write rule file: %w", err)
	}
	return true, nil
}
