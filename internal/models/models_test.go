package models_test

import (
	"testing"

	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Records(t *testing.T) {
	table := &models.Table{
		Columns: []models.Column{
			{Name: "name", Type: models.ColumnTypeString},
			{Name: "id", Type: models.ColumnTypeInteger},
			{Name: "score", Type: models.ColumnTypeFloat},
			{Name: "active", Type: models.ColumnTypeBoolean},
			{Name: "joined", Type: models.ColumnTypeDate},
		},
		Rows: [][]string{
			{"Alice", "1", "9.5", "true", "2024-01-02"},
			{"Bob", "", "NaN", "False", ""},
		},
	}

	out, err := json.Marshal(table.Records())
	require.NoError(t, err)

	expect := `[{"name":"Alice","id":1,"score":9.5,"active":true,"joined":"2024-01-02"},` +
		`{"name":"Bob","id":null,"score":null,"active":false,"joined":null}]`
	assert.Equal(t, expect, string(out))
}

func TestTypedValue(t *testing.T) {
	testCases := []struct {
		name   string
		raw    string
		typ    models.ColumnType
		expect any
	}{
		{name: "integer", raw: " 42 ", typ: models.ColumnTypeInteger, expect: int64(42)},
		{name: "integer that does not parse stays text", raw: "4.2", typ: models.ColumnTypeInteger, expect: "4.2"},
		{name: "float", raw: "-1.25", typ: models.ColumnTypeFloat, expect: -1.25},
		{name: "inf is not a float", raw: "Inf", typ: models.ColumnTypeFloat, expect: "Inf"},
		{name: "boolean", raw: "TRUE", typ: models.ColumnTypeBoolean, expect: true},
		{name: "null token", raw: "N/A", typ: models.ColumnTypeString, expect: nil},
		{name: "string", raw: "hello", typ: models.ColumnTypeString, expect: "hello"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, models.TypedValue(tc.raw, tc.typ))
		})
	}
}

func TestSchemaDescription_String(t *testing.T) {
	schema := models.SchemaDescription{
		{Name: "id", Type: models.ColumnTypeInteger},
		{Name: "name", Type: models.ColumnTypeString},
	}

	expect := "The data has the following columns and data types:\n- id: integer\n- name: string\n"
	assert.Equal(t, expect, schema.String())
	assert.Equal(t, []string{"id", "name"}, schema.Names())
	assert.Equal(t, "The data has the following columns and data types:\n", models.SchemaDescription{}.String())
}

func TestRecord_Get(t *testing.T) {
	r := models.NewRecord([]string{"a", "b"}, []any{1, "x"})

	v, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = r.Get("c")
	assert.False(t, ok)
}
