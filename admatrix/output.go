package admatrix

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

const resultSheet = "results"

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatCSV, FormatTSV, FormatXLSX, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath infers the format from the file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatCSV
}

// WriteResultFile writes results to path. An empty format is inferred
// from the extension. The file is replaced atomically.
func WriteResultFile(path string, format Format, results []Result) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	if err := WriteResults(f, format, results); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close result file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename result file: %w", err)
	}
	return nil
}

// WriteResults encodes results to w in the fixed OutputColumns order.
func WriteResults(w io.Writer, format Format, results []Result) error {
	switch format {
	case FormatCSV:
		return writeDelimited(w, ',', results)
	case FormatTSV:
		return writeDelimited(w, '\t', results)
	case FormatXLSX:
		return writeWorkbook(w, results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []Result{}
		}
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Record renders r as cells in OutputColumns order. Absent labels are
// empty cells.
func (r Result) Record() []string {
	return []string{
		strconv.Itoa(r.AdID),
		r.RawText,
		deref(r.Concept),
		deref(r.Trigger),
		deref(r.DriverPersona),
		deref(r.Format),
		deref(r.HookType),
		deref(r.Rationale),
		r.ErrorMessage,
	}
}

func writeDelimited(w io.Writer, comma rune, results []Result) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma
	if err := writer.Write(OutputColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range results {
		if err := writer.Write(r.Record()); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}

func writeWorkbook(w io.Writer, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", resultSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := make([]any, len(OutputColumns))
	for i, c := range OutputColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(resultSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(OutputColumns), 1)
	if err := f.SetCellStyle(resultSheet, "A1", last, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	for i, r := range results {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		record := r.Record()
		row := make([]any, len(record))
		row[0] = r.AdID
		for j := 1; j < len(record); j++ {
			row[j] = record[j]
		}
		if err := f.SetSheetRow(resultSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(resultSheet, "B", "B", 60); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
