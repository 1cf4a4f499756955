package services

import (
	"fmt"
	"strings"

	"github.com/blagoySimandov/synthdata/internal/models"
)

// SystemPrompt is the fixed system role sent with every generation request.
const SystemPrompt = "You are a data generator assistant."

// The closing instruction of generationPromptTemplate is the only guard
// against the model answering in prose: the reply is parsed as CSV verbatim
// after fence stripping. Keep it when editing the template.
const generationPromptTemplate = `I have a dataset with the following structure:
%s
Please generate %d rows of synthetic data that follows the same structure and data types.%s
Only provide the data in CSV format, with comma as the delimiter, including the header row. Do not include any explanations or additional text.
`

type IPromptBuilder interface {
	Build(schema models.SchemaDescription, numRows int, instruction string) string
}

type GenerationPromptBuilder struct{}

func NewGenerationPromptBuilder() *GenerationPromptBuilder {
	return &GenerationPromptBuilder{}
}

func (b *GenerationPromptBuilder) Build(schema models.SchemaDescription, numRows int, instruction string) string {
	extra := ""
	if trimmed := strings.TrimSpace(instruction); trimmed != "" {
		extra = fmt.Sprintf("\nAdditional instructions: %s\n", trimmed)
	}
	return fmt.Sprintf(generationPromptTemplate, schema.String(), numRows, extra)
}

// DescribeSchema lists the columns of t with their inferred types, in column
// order.
func DescribeSchema(t *models.Table) models.SchemaDescription {
	schema := make(models.SchemaDescription, 0, len(t.Columns))
	for _, col := range t.Columns {
		schema = append(schema, models.SchemaField{Name: col.Name, Type: col.Type})
	}
	return schema
}
