package admatrix

// Labels is the outcome of classifying one text.
type Labels struct {
	Concept       string `json:"concept"`
	Trigger       string `json:"trigger"`
	DriverPersona string `json:"driver_persona"`
	Format        string `json:"format"`
	HookType      string `json:"hook_type"`
	Rationale     string `json:"rationale"`
}

// Get returns the label for dim.
func (l Labels) Get(dim Dimension) string {
	switch dim {
	case DimensionConcept:
		return l.Concept
	case DimensionTrigger:
		return l.Trigger
	case DimensionPersona:
		return l.DriverPersona
	case DimensionFormat:
		return l.Format
	case DimensionHook:
		return l.HookType
	}
	return ""
}

func (l *Labels) set(dim Dimension, label string) {
	switch dim {
	case DimensionConcept:
		l.Concept = label
	case DimensionTrigger:
		l.Trigger = label
	case DimensionPersona:
		l.DriverPersona = label
	case DimensionFormat:
		l.Format = label
	case DimensionHook:
		l.HookType = label
	}
}

// Match explains a single dimension of a classification.
type Match struct {
	Dimension Dimension `json:"dimension"`
	Label     string    `json:"label"`
	// Keyword is empty when the table default was used.
	Keyword string `json:"keyword,omitempty"`
}

// Result is one output row. Label fields are nil when classification of
// the row failed.
type Result struct {
	AdID          int     `json:"ad_id"`
	RawText       string  `json:"raw_text"`
	Concept       *string `json:"concept"`
	Trigger       *string `json:"trigger"`
	DriverPersona *string `json:"driver_persona"`
	Format        *string `json:"format"`
	HookType      *string `json:"hook_type"`
	Rationale     *string `json:"rationale"`
	ErrorMessage  string  `json:"error_message"`
}

// Failed reports whether the row carries an error instead of labels.
func (r Result) Failed() bool {
	return r.ErrorMessage != ""
}

func newSuccessResult(adID int, raw string, l Labels) Result {
	return Result{
		AdID:          adID,
		RawText:       raw,
		Concept:       strPtr(l.Concept),
		Trigger:       strPtr(l.Trigger),
		DriverPersona: strPtr(l.DriverPersona),
		Format:        strPtr(l.Format),
		HookType:      strPtr(l.HookType),
		Rationale:     strPtr(l.Rationale),
	}
}

func newFailureResult(adID int, raw string, err error) Result {
	return Result{AdID: adID, RawText: raw, ErrorMessage: err.Error()}
}

func strPtr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
