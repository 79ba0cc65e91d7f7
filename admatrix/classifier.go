package admatrix

import "fmt"

const rationaleFormat = "Heuristic labels based on detected keywords for concept=%s, trigger=%s, persona=%s, format=%s, hook=%s."

// Labeler classifies a single text. Classifier is the only production
// implementation; the interface lets the batch driver be exercised with
// failing labelers.
type Labeler interface {
	Label(text string) (Labels, error)
}

// Classifier applies one rule table per dimension. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	rules RuleSet
}

// NewClassifier builds a classifier over rules.
func NewClassifier(rules RuleSet) (*Classifier, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{rules: rules.Clone()}, nil
}

// NewDefaultClassifier builds a classifier over the built-in tables.
func NewDefaultClassifier() *Classifier {
	return &Classifier{rules: DefaultRuleSet()}
}

// Rules returns the rule set the classifier was built with.
func (c *Classifier) Rules() RuleSet {
	return c.rules.Clone()
}

// Classify labels text on every dimension. It never fails.
func (c *Classifier) Classify(text string) Labels {
	normalized := NormalizeText(text)
	var out Labels
	for _, dim := range Dimensions {
		out.set(dim, c.rules[dim].Match(normalized))
	}
	out.Rationale = Rationale(out)
	return out
}

// Label implements Labeler.
func (c *Classifier) Label(text string) (Labels, error) {
	return c.Classify(text), nil
}

// Explain reports the chosen label and triggering keyword per dimension.
func (c *Classifier) Explain(text string) []Match {
	normalized := NormalizeText(text)
	out := make([]Match, 0, len(Dimensions))
	for _, dim := range Dimensions {
		label, kw := c.rules[dim].MatchRule(normalized)
		out = append(out, Match{Dimension: dim, Label: label, Keyword: kw})
	}
	return out
}

// Rationale renders the human readable summary of l.
func Rationale(l Labels) string {
	return fmt.Sprintf(rationaleFormat, l.Concept, l.Trigger, l.DriverPersona, l.Format, l.HookType)
}
