package admatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEndToEnd(t *testing.T) {
	cls := NewDefaultClassifier()
	got := cls.Classify("Cut your energy bill by 30% with this 5 seconds hack, moms will love it")

	assert.Equal(t, "Saving money on utilities", got.Concept)
	assert.Equal(t, "Recent spike in household bills", got.Trigger)
	assert.Equal(t, "Busy mom juggling tasks", got.DriverPersona)
	assert.Equal(t, "UGC testimonial", got.Format)
	assert.Equal(t, "Bold claim with quantified benefit", got.HookType)
	assert.Equal(t,
		"Heuristic labels based on detected keywords for concept=Saving money on utilities, "+
			"trigger=Recent spike in household bills, persona=Busy mom juggling tasks, "+
			"format=UGC testimonial, hook=Bold claim with quantified benefit.",
		got.Rationale)
}

func TestClassifyEmptyTextUsesDefaults(t *testing.T) {
	got := NewDefaultClassifier().Classify("")
	assert.Equal(t, DefaultConcept, got.Concept)
	assert.Equal(t, DefaultTrigger, got.Trigger)
	assert.Equal(t, DefaultPersona, got.DriverPersona)
	assert.Equal(t, DefaultFormat, got.Format)
	assert.Equal(t, DefaultHook, got.HookType)
	assert.Equal(t, "General benefit", got.Concept)
	assert.Equal(t, "Direct statement", got.HookType)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	cls := NewDefaultClassifier()
	upper := cls.Classify("SAVING money")
	lower := cls.Classify("saving money")
	assert.Equal(t, "Saving money on utilities", upper.Concept)
	assert.Equal(t, lower, upper)
}

func TestClassifyUnanchoredSubstring(t *testing.T) {
	got := NewDefaultClassifier().Classify("this is about skincare")
	assert.Equal(t, "Beauty and skin health", got.Concept)
	assert.Equal(t, "Beauty enthusiast seeking dermatologist-approved look", got.DriverPersona)
}

func TestClassifyTableOrderBreaksTies(t *testing.T) {
	cls := NewDefaultClassifier()
	tests := []struct {
		name string
		text string
		dim  Dimension
		want string
	}{
		{"serum before faster in text", "this serum works faster", DimensionConcept, "Performance and speed"},
		{"coffee before instant in text", "coffee, but instant", DimensionConcept, "Performance and speed"},
		{"posture before skin in text", "posture and skin", DimensionConcept, "Beauty and skin health"},
		{"5 seconds before cut in text", "in 5 seconds you cut costs", DimensionHook, "Bold claim with quantified benefit"},
		{"hate before what if in text", "i hate mornings, what if", DimensionHook, "Rhetorical question"},
		{"laptop before home in text", "a laptop at home", DimensionPersona, "Homeowner looking for efficiency"},
		{"home before mom in text", "home with mom", DimensionPersona, "Busy mom juggling tasks"},
		{"watch before routine", "watch my routine", DimensionFormat, "Routine tutorial"},
		{"scroll before 6 am", "scroll at 6 am", DimensionTrigger, "Daily morning struggle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cls.Classify(tt.text).Get(tt.dim))
		})
	}
}

func TestClassifyCrossTableKeywordReuse(t *testing.T) {
	got := NewDefaultClassifier().Classify("my bill")
	assert.Equal(t, "Saving money on utilities", got.Concept)
	assert.Equal(t, "Recent spike in household bills", got.Trigger)
}

func TestClassifyLabelsAlwaysFromTables(t *testing.T) {
	cls := NewDefaultClassifier()
	inputs := []string{
		"", "   ", "What if your coffee was instant?", "New Year, new job, new laptop",
		"Unbox the green serum here's how", "日本語のテキスト", "10 MINUTES of posture routine",
		"I hate crying babies at 6 AM", "ask yourself: why scroll?",
	}
	for _, in := range inputs {
		got := cls.Classify(in)
		for _, dim := range Dimensions {
			assert.Contains(t, cls.Rules().Table(dim).Labels(), got.Get(dim), "input %q dimension %s", in, dim)
		}
		assert.Equal(t, got, cls.Classify(in), "classification must be deterministic")
	}
}

func TestExplainReportsKeywords(t *testing.T) {
	matches := NewDefaultClassifier().Explain("Here's how to UNBOX it")
	require.Len(t, matches, len(Dimensions))

	byDim := make(map[Dimension]Match, len(matches))
	for i, m := range matches {
		assert.Equal(t, Dimensions[i], m.Dimension)
		byDim[m.Dimension] = m
	}
	assert.Equal(t, "unbox", byDim[DimensionFormat].Keyword)
	assert.Equal(t, "Unboxing demo", byDim[DimensionFormat].Label)
	assert.Empty(t, byDim[DimensionConcept].Keyword)
	assert.Equal(t, DefaultConcept, byDim[DimensionConcept].Label)
}

func TestNewClassifierRejectsIncompleteRuleSet(t *testing.T) {
	set := DefaultRuleSet()
	delete(set, DimensionHook)
	_, err := NewClassifier(set)
	require.ErrorIs(t, err, ErrIncompleteRuleSet)

	cls, err := NewClassifier(DefaultRuleSet())
	require.NoError(t, err)
	assert.Equal(t, DefaultHook, cls.Classify("").HookType)
}

func TestNormalizeTextOnlyLowercases(t *testing.T) {
	assert.Equal(t, "  here's how: 30%!  ", NormalizeText("  HERE'S How: 30%!  "))
	assert.Equal(t, "", NormalizeText(""))
}
