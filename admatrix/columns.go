package admatrix

import "strings"

// OutputColumns is the fixed column order of every output sink.
var OutputColumns = []string{
	"ad_id",
	"raw_text",
	string(DimensionConcept),
	string(DimensionTrigger),
	string(DimensionPersona),
	string(DimensionFormat),
	string(DimensionHook),
	"rationale",
	"error_message",
}

// DefaultTextColumn is the input column holding ad copy.
const DefaultTextColumn = "ad_text"

func defaultTextCandidates() []string {
	return []string{DefaultTextColumn, "ad text", "adtext"}
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}
