package models

type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeInteger ColumnType = "integer"
	ColumnTypeFloat   ColumnType = "float"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeDate    ColumnType = "date"
)

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}
