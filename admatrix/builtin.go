package admatrix

import "fmt"

const (
	labelSavingMoney  = "Saving money on utilities"
	labelPerformance  = "Performance and speed"
	labelBeauty       = "Beauty and skin health"
	labelHabit        = "Habit formation and wellness"
	labelMorning      = "Daily morning struggle"
	labelBusyMom      = "Busy mom juggling tasks"
	labelWalkthrough  = "Tutorial walkthrough"
	labelRhetorical   = "Rhetorical question"
	labelQuantified   = "Bold claim with quantified benefit"
	labelTimeBasedHit = "Time-based proof"
)

// Built-in defaults for each dimension.
const (
	DefaultConcept = "General benefit"
	DefaultTrigger = "General need state"
	DefaultPersona = "General consumer"
	DefaultFormat  = "UGC testimonial"
	DefaultHook    = "Direct statement"
)

var builtinRules = map[Dimension]struct {
	fallback string
	rules    []Rule
}{
	DimensionConcept: {DefaultConcept, []Rule{
		{"saving", labelSavingMoney},
		{"cost", labelSavingMoney},
		{"bill", labelSavingMoney},
		{"speed", labelPerformance},
		{"faster", labelPerformance},
		{"instant", labelPerformance},
		{"skin", labelBeauty},
		{"serum", labelBeauty},
		{"posture", labelHabit},
		{"routine", labelHabit},
		{"coffee", "Convenience and self-care"},
	}},
	DimensionTrigger: {DefaultTrigger, []Rule{
		{"new year", "New Year reset"},
		{"new job", "Career change"},
		// Same keyword as the concept table on purpose: each axis matches on its own.
		{"bill", "Recent spike in household bills"},
		{"crying", labelMorning},
		{"6 am", labelMorning},
		{"scroll", "Ongoing social feed browsing"},
	}},
	DimensionPersona: {DefaultPersona, []Rule{
		{"mom", labelBusyMom},
		{"baby", labelBusyMom},
		{"home", "Homeowner looking for efficiency"},
		{"laptop", "Young professional upgrading gear"},
		{"posture", "Desk worker worried about posture"},
		{"skin", "Beauty enthusiast seeking dermatologist-approved look"},
	}},
	DimensionFormat: {DefaultFormat, []Rule{
		{"unbox", "Unboxing demo"},
		{"green", "Green screen demo"},
		{"routine", "Routine tutorial"},
		{"watch", labelWalkthrough},
		{"here's how", labelWalkthrough},
	}},
	DimensionHook: {DefaultHook, []Rule{
		{"what if", labelRhetorical},
		{"ask yourself", labelRhetorical},
		{"hate", "Contrarian claim"},
		{"cut", labelQuantified},
		{"30%", labelQuantified},
		{"5 seconds", labelTimeBasedHit},
		{"10 minutes", labelTimeBasedHit},
	}},
}

var defaultRuleSet = buildDefaultRuleSet()

func buildDefaultRuleSet() RuleSet {
	set := make(RuleSet, len(builtinRules))
	for dim, def := range builtinRules {
		set[dim] = mustRuleTable(dim, def.fallback, def.rules)
	}
	return set
}

// DefaultRuleSet returns the built-in tables. Tables are immutable, so the
// returned set shares them with every other caller.
func DefaultRuleSet() RuleSet {
	return defaultRuleSet.Clone()
}

// RuleSet holds one table per dimension.
type RuleSet map[Dimension]*RuleTable

// Clone returns a shallow copy; tables themselves are shared.
func (s RuleSet) Clone() RuleSet {
	out := make(RuleSet, len(s))
	for d, t := range s {
		out[d] = t
	}
	return out
}

// Table returns the table for dim or nil.
func (s RuleSet) Table(dim Dimension) *RuleTable {
	return s[dim]
}

// Validate checks that every dimension has a table.
func (s RuleSet) Validate() error {
	for _, d := range Dimensions {
		t, ok := s[d]
		if !ok || t == nil {
			return fmt.Errorf("%w: no rule table for %s", ErrIncompleteRuleSet, d)
		}
		if t.Dimension() != d {
			return fmt.Errorf("rule table for %s is registered under %s", t.Dimension(), d)
		}
	}
	return nil
}
