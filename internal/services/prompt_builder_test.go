package services

import (
	"testing"

	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

var peopleSchema = models.SchemaDescription{
	{Name: "id", Type: models.ColumnTypeInteger},
	{Name: "name", Type: models.ColumnTypeString},
}

func TestGenerationPromptBuilder_Build(t *testing.T) {
	tests := []struct {
		name        string
		schema      models.SchemaDescription
		numRows     int
		instruction string
	}{
		{name: "prompt_basic", schema: peopleSchema, numRows: 5},
		{name: "prompt_instruction", schema: peopleSchema, numRows: 10, instruction: "  Use Dutch names.\n"},
		{name: "prompt_empty_schema", schema: models.SchemaDescription{}, numRows: 3, instruction: "   "},
	}

	b := NewGenerationPromptBuilder()
	g := goldie.New(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, []byte(b.Build(tt.schema, tt.numRows, tt.instruction)))
		})
	}
}

func TestGenerationPromptBuilder_Deterministic(t *testing.T) {
	b := NewGenerationPromptBuilder()
	assert.Equal(t, b.Build(peopleSchema, 7, "x"), b.Build(peopleSchema, 7, "x"))
}

func TestDescribeSchema(t *testing.T) {
	tbl := &models.Table{
		Columns: []models.Column{
			{Name: "id", Type: models.ColumnTypeInteger},
			{Name: "name", Type: models.ColumnTypeString},
		},
	}

	assert.Equal(t, peopleSchema, DescribeSchema(tbl))
	assert.Empty(t, DescribeSchema(&models.Table{}))
}
