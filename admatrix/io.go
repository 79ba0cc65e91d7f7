package admatrix

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// InputOptions selects the ad text column of a tabular input.
type InputOptions struct {
	// TextColumn is a header name (case-insensitive) or a 1-based "#N"
	// index. Empty means DefaultTextColumn or one of its spellings.
	TextColumn string
}

// LoadAds reads ad texts from a CSV, TSV, XLSX or plain text file. Tabular
// files need a header row with the text column; plain text files hold one
// ad per non-empty line. Values are trimmed of surrounding whitespace.
func LoadAds(path string, opts InputOptions) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadDelimited(path, ',', opts)
	case ".tsv":
		return loadDelimited(path, '\t', opts)
	case ".xlsx":
		return loadWorkbook(path, opts)
	case ".txt", "":
		return loadPlainText(path)
	default:
		return nil, fmt.Errorf("%w: input %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// ReadAds reads delimited records from r. A UTF-8 or UTF-16 byte order
// mark is honored.
func ReadAds(r io.Reader, comma rune, opts InputOptions) ([]string, error) {
	reader := csv.NewReader(decodeBOM(r))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return extractAds(rows, opts)
}

func loadDelimited(path string, comma rune, opts InputOptions) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	ads, err := ReadAds(f, comma, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ads, nil
}

func loadWorkbook(path string, opts InputOptions) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	ads, err := extractAds(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ads, nil
}

func loadPlainText(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()
	return splitNonEmptyLines(decodeBOM(f))
}

func splitNonEmptyLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	var out []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan text: %w", err)
	}
	return out, nil
}

// SplitLines turns pasted text into one ad per non-empty line.
func SplitLines(text string) []string {
	out, _ := splitNonEmptyLines(strings.NewReader(text))
	return out
}

func extractAds(rows [][]string, opts InputOptions) ([]string, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	col, err := ResolveTextColumn(header, opts.TextColumn)
	if err != nil {
		return nil, err
	}
	ads := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		var value string
		if col < len(row) {
			value = strings.TrimSpace(row[col])
		}
		ads = append(ads, value)
	}
	return ads, nil
}

// ResolveTextColumn returns the 0-based index of the ad text column in
// header. An empty name or DefaultTextColumn also matches the "ad text" and
// "adtext" spellings.
func ResolveTextColumn(header []string, explicit string) (int, error) {
	trimmed := strings.TrimSpace(explicit)
	if trimmed == "" || strings.EqualFold(trimmed, DefaultTextColumn) {
		if idx := findColumn(header, defaultTextCandidates()); idx >= 0 {
			return idx, nil
		}
		return -1, fmt.Errorf("%w: expected column %q", ErrMissingColumn, DefaultTextColumn)
	}
	if idx := findColumn(header, []string{trimmed}); idx >= 0 {
		return idx, nil
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(header) {
			return -1, fmt.Errorf("%w: column index %s is out of range", ErrMissingColumn, trimmed)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("%w: expected column %q", ErrMissingColumn, trimmed)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func decodeBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, xunicode.BOMOverride(xunicode.UTF8.NewDecoder()))
}

// ReadHeader returns the cleaned header row of a tabular file, or nil for
// plain text inputs. Front ends use it to offer a column choice.
func ReadHeader(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var rows [][]string
	switch ext {
	case ".csv", ".tsv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
		}
		reader := csv.NewReader(decodeBOM(bytes.NewReader(data)))
		if ext == ".tsv" {
			reader.Comma = '\t'
		}
		reader.FieldsPerRecord = -1
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		rows = [][]string{row}
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		rows, err = f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
		}
	default:
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	return header, nil
}
