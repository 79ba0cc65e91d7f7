package admatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleTableMatch(t *testing.T) {
	table, err := NewRuleTable(DimensionFormat, "fallback", []Rule{
		{Keyword: "Green", Label: "first"},
		{Keyword: "screen", Label: "second"},
	})
	require.NoError(t, err)

	assert.Equal(t, "first", table.Match("green screen"))
	assert.Equal(t, "first", table.Match("screen then green"))
	assert.Equal(t, "second", table.Match("screenshot"))
	assert.Equal(t, "fallback", table.Match("nothing here"))

	label, kw := table.MatchRule("evergreen")
	assert.Equal(t, "first", label)
	assert.Equal(t, "green", kw)
}

func TestRuleTableIsImmutable(t *testing.T) {
	rules := []Rule{{Keyword: "a", Label: "A"}}
	table, err := NewRuleTable(DimensionConcept, "none", rules)
	require.NoError(t, err)

	rules[0].Label = "changed"
	got := table.Rules()
	got[0].Label = "changed too"
	assert.Equal(t, "A", table.Match("a"))
}

func TestNewRuleTableValidation(t *testing.T) {
	_, err := NewRuleTable(DimensionConcept, "", nil)
	assert.Error(t, err)
	_, err = NewRuleTable(DimensionConcept, "d", []Rule{{Keyword: "", Label: "x"}})
	assert.Error(t, err)
	_, err = NewRuleTable(DimensionConcept, "d", []Rule{{Keyword: "x", Label: " "}})
	assert.Error(t, err)

	empty, err := NewRuleTable(DimensionConcept, "d", nil)
	require.NoError(t, err)
	assert.Equal(t, "d", empty.Match("anything"))
}

func TestDefaultRuleSetContents(t *testing.T) {
	set := DefaultRuleSet()
	require.NoError(t, set.Validate())

	concept := set.Table(DimensionConcept).Rules()
	keywords := make([]string, len(concept))
	for i, r := range concept {
		keywords[i] = r.Keyword
	}
	assert.Equal(t, []string{"saving", "cost", "bill", "speed", "faster", "instant", "skin", "serum", "posture", "routine", "coffee"}, keywords)

	assert.Equal(t, []string{
		"Rhetorical question",
		"Contrarian claim",
		"Bold claim with quantified benefit",
		"Time-based proof",
		"Direct statement",
	}, set.Table(DimensionHook).Labels())
	assert.Len(t, set.Table(DimensionTrigger).Rules(), 6)
	assert.Len(t, set.Table(DimensionPersona).Rules(), 6)
	assert.Len(t, set.Table(DimensionFormat).Rules(), 5)
}

func TestParseDimension(t *testing.T) {
	tests := map[string]Dimension{
		"concept":        DimensionConcept,
		" Trigger ":      DimensionTrigger,
		"driver_persona": DimensionPersona,
		"persona":        DimensionPersona,
		"FORMAT":         DimensionFormat,
		"hook":           DimensionHook,
		"hook_type":      DimensionHook,
	}
	for in, want := range tests {
		got, err := ParseDimension(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseDimension("tone")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}
