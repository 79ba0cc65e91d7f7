package admatrix

import (
	"fmt"
	"strings"
)

// Dimension names one classification axis. The string value doubles as the
// output column name.
type Dimension string

const (
	DimensionConcept Dimension = "concept"
	DimensionTrigger Dimension = "trigger"
	DimensionPersona Dimension = "driver_persona"
	DimensionFormat  Dimension = "format"
	DimensionHook    Dimension = "hook_type"
)

// Dimensions lists every axis in output order.
var Dimensions = []Dimension{
	DimensionConcept,
	DimensionTrigger,
	DimensionPersona,
	DimensionFormat,
	DimensionHook,
}

// ParseDimension accepts a dimension name, case-insensitively. "persona"
// and "hook" are accepted as short forms.
func ParseDimension(name string) (Dimension, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "persona":
		return DimensionPersona, nil
	case "hook":
		return DimensionHook, nil
	}
	for _, d := range Dimensions {
		if string(d) == key {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, name)
}

// Rule maps a keyword to a label.
type Rule struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Label   string `yaml:"label" json:"label"`
}

// RuleTable is an ordered keyword table with a fallback label. The first
// rule whose keyword occurs in the text wins, so declaration order is the
// tie-break between overlapping keywords.
type RuleTable struct {
	dimension Dimension
	rules     []Rule
	fallback  string
}

// NewRuleTable copies rules into an immutable table. Keywords are
// normalized so they line up with normalized input text.
func NewRuleTable(dim Dimension, fallback string, rules []Rule) (*RuleTable, error) {
	if strings.TrimSpace(fallback) == "" {
		return nil, fmt.Errorf("rule table %s: default label is required", dim)
	}
	copied := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if r.Keyword == "" {
			return nil, fmt.Errorf("rule table %s: rule %d has an empty keyword", dim, i+1)
		}
		if strings.TrimSpace(r.Label) == "" {
			return nil, fmt.Errorf("rule table %s: keyword %q has an empty label", dim, r.Keyword)
		}
		copied = append(copied, Rule{Keyword: NormalizeText(r.Keyword), Label: r.Label})
	}
	return &RuleTable{dimension: dim, rules: copied, fallback: fallback}, nil
}

func mustRuleTable(dim Dimension, fallback string, rules []Rule) *RuleTable {
	t, err := NewRuleTable(dim, fallback, rules)
	if err != nil {
		panic(err)
	}
	return t
}

// Dimension reports the axis the table classifies.
func (t *RuleTable) Dimension() Dimension { return t.dimension }

// Default returns the label used when no keyword matches.
func (t *RuleTable) Default() string { return t.fallback }

// Rules returns a copy of the ordered rules.
func (t *RuleTable) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Labels returns every label the table can produce, default last, without
// duplicates.
func (t *RuleTable) Labels() []string {
	seen := make(map[string]struct{}, len(t.rules)+1)
	out := make([]string, 0, len(t.rules)+1)
	for _, r := range t.rules {
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		out = append(out, r.Label)
	}
	if _, ok := seen[t.fallback]; !ok {
		out = append(out, t.fallback)
	}
	return out
}

// Match returns the label for already normalized text.
func (t *RuleTable) Match(normalized string) string {
	label, _ := t.MatchRule(normalized)
	return label
}

// MatchRule is Match that also reports which keyword fired. The keyword is
// empty when the default label was used.
func (t *RuleTable) MatchRule(normalized string) (label, keyword string) {
	for _, r := range t.rules {
		if strings.Contains(normalized, r.Keyword) {
			return r.Label, r.Keyword
		}
	}
	return t.fallback, ""
}
