package app

import (
	"strconv"

	"yashubustudio/admatrix/admatrix"
)

type tableColumn struct {
	Title  string
	Width  float32
	Render func(admatrix.Result) string
}

var columnWidths = map[string]float32{
	"ad_id":         60,
	"raw_text":      320,
	"rationale":     360,
	"error_message": 220,
}

const defaultColumnWidth = 190

// makeColumns lays the table out in the same order as the exported files.
func makeColumns() []tableColumn {
	cols := make([]tableColumn, 0, len(admatrix.OutputColumns))
	for i, name := range admatrix.OutputColumns {
		idx := i
		width, ok := columnWidths[name]
		if !ok {
			width = defaultColumnWidth
		}
		cols = append(cols, tableColumn{
			Title:  name,
			Width:  width,
			Render: func(r admatrix.Result) string { return r.Record()[idx] },
		})
	}
	return cols
}

func summarizeResults(results []admatrix.Result) (ok, failed int) {
	for _, r := range results {
		if r.Failed() {
			failed++
			continue
		}
		ok++
	}
	return ok, failed
}

// adsToClassify keeps file rows one ad each, so ad_id matches the row
// position even for empty or multi-line cells. Pasted text is one ad per line.
func adsToClassify(loaded []string, text string) []string {
	if loaded != nil {
		return loaded
	}
	return admatrix.SplitLines(text)
}

func columnChoiceLabel(header []string, idx int) string {
	if idx < len(header) && header[idx] != "" {
		return header[idx]
	}
	return "#" + strconv.Itoa(idx+1)
}
