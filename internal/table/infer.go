package table

import "github.com/blagoySimandov/synthdata/internal/models"

// InferTypes sets the type of every column from its non-null values.
func InferTypes(t *models.Table) {
	for i := range t.Columns {
		values := make([]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			values = append(values, row[i])
		}
		t.Columns[i].Type = InferType(values)
	}
}

// InferType returns the narrowest type every non-null value parses as, in the
// order integer, float, boolean, date. Columns with no values are strings.
func InferType(values []string) models.ColumnType {
	isInt, isFloat, isBool, isDate := true, true, true, true
	seen := 0
	for _, v := range values {
		if models.IsNull(v) {
			continue
		}
		seen++
		if isInt {
			_, isInt = models.ParseInteger(v)
		}
		if isFloat {
			_, isFloat = models.ParseFloat(v)
		}
		if isBool {
			_, isBool = models.ParseBoolean(v)
		}
		if isDate {
			_, _, isDate = models.ParseDate(v)
		}
		if !isInt && !isFloat && !isBool && !isDate {
			return models.ColumnTypeString
		}
	}

	switch {
	case seen == 0:
		return models.ColumnTypeString
	case isInt:
		return models.ColumnTypeInteger
	case isFloat:
		return models.ColumnTypeFloat
	case isBool:
		return models.ColumnTypeBoolean
	case isDate:
		return models.ColumnTypeDate
	}
	return models.ColumnTypeString
}
