package models

import "strings"

// Table is an in-memory table of raw cell text. An empty cell (or one of the
// null tokens) is null. Every row holds exactly len(Columns) cells.
type Table struct {
	Columns []Column
	Rows    [][]string
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Records converts every row into a Record typed by its column type.
func (t *Table) Records() []Record {
	names := t.ColumnNames()
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			var raw string
			if i < len(row) {
				raw = row[i]
			}
			values[i] = TypedValue(raw, col.Type)
		}
		records = append(records, Record{keys: names, values: values})
	}
	return records
}

var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"#N/A": {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
	"None": {},
}

// IsNull reports whether a raw cell holds no value.
func IsNull(raw string) bool {
	_, ok := nullTokens[strings.TrimSpace(raw)]
	return ok
}
