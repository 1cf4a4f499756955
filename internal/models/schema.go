package models

import "strings"

const schemaIntro = "The data has the following columns and data types:\n"

type SchemaField struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// SchemaDescription is the ordered (column, type) list of a table.
type SchemaDescription []SchemaField

// String renders the description as an introductory sentence followed by
// one "- <column>: <type>" line per column.
func (s SchemaDescription) String() string {
	var b strings.Builder
	b.WriteString(schemaIntro)
	for _, f := range s {
		b.WriteString("- ")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(string(f.Type))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s SchemaDescription) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
