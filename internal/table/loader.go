// Package table loads uploaded CSV and spreadsheet files into tables, infers
// their column types, and parses delimited text returned by the model.
package table

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/models"
)

// Load parses an uploaded file, choosing the parser by file extension, and
// infers the type of every column.
func Load(filename string, data []byte) (*models.Table, Format, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, "", err
	}

	var t *models.Table
	switch format {
	case FormatCSV:
		t, err = ParseCSV(bytes.NewReader(data))
	case FormatXLSX:
		t, err = ParseXLSX(data)
	case FormatXLS:
		t, err = ParseXLS(data)
	}
	if err != nil {
		return nil, format, errs.E(errs.ParseFailure, models.OpLoad, fmt.Errorf("failed to parse %s file: %w", format, err))
	}

	InferTypes(t)
	return t, format, nil
}

// newTable builds a table from a header record and data records, normalising
// header names and padding or truncating records to the header width.
func newTable(header []string, records [][]string) *models.Table {
	names := normalizeHeader(header)
	columns := make([]models.Column, len(names))
	for i, name := range names {
		columns[i] = models.Column{Name: name, Type: models.ColumnTypeString}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		if isEmptyRecord(rec) {
			continue
		}
		row := make([]string, len(names))
		for i := range row {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return &models.Table{Columns: columns, Rows: rows}
}

func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
