package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/models"
)

type SchemaPolicy string

const (
	// SchemaPolicyOff returns the reply as parsed, typed by its own values.
	SchemaPolicyOff SchemaPolicy = "off"
	// SchemaPolicyStrict requires exactly the original columns and values
	// that parse as the original types.
	SchemaPolicyStrict SchemaPolicy = "strict"
	// SchemaPolicyCoerce maps the reply onto the original columns, dropping
	// extra columns and nulling missing columns and unparseable cells.
	SchemaPolicyCoerce SchemaPolicy = "coerce"
)

func ParseSchemaPolicy(s string) (SchemaPolicy, error) {
	switch p := SchemaPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case SchemaPolicyOff, SchemaPolicyStrict, SchemaPolicyCoerce:
		return p, nil
	}
	return "", fmt.Errorf("unknown schema policy %q", s)
}

// ConformToSchema checks the parsed reply against the schema of the upload
// according to policy, and truncates it to at most maxRows rows.
func ConformToSchema(reply *models.Table, schema models.SchemaDescription, policy SchemaPolicy, maxRows int) (*models.Table, error) {
	if maxRows > 0 && len(reply.Rows) > maxRows {
		reply.Rows = reply.Rows[:maxRows]
	}

	if policy == SchemaPolicyOff || policy == "" {
		return reply, nil
	}

	index := make(map[string]int, len(reply.Columns))
	for i, col := range reply.Columns {
		key := normalizeColumnName(col.Name)
		if prev, dup := index[key]; dup {
			return nil, errs.Errorf(errs.SchemaMismatch, models.OpConform,
				"reply columns %q and %q name the same column", reply.Columns[prev].Name, col.Name)
		}
		index[key] = i
	}

	var missing []string
	sources := make([]int, len(schema))
	for i, field := range schema {
		src, ok := index[normalizeColumnName(field.Name)]
		if !ok {
			missing = append(missing, field.Name)
			src = -1
		}
		sources[i] = src
		delete(index, normalizeColumnName(field.Name))
	}
	var extra []string
	for _, col := range reply.Columns {
		if _, ok := index[normalizeColumnName(col.Name)]; ok {
			extra = append(extra, col.Name)
		}
	}

	switch policy {
	case SchemaPolicyStrict:
		if len(missing) > 0 || len(extra) > 0 {
			return nil, errs.Errorf(errs.SchemaMismatch, models.OpConform,
				"reply columns %v do not match %v (missing %v, unexpected %v)",
				reply.ColumnNames(), schema.Names(), missing, extra)
		}
	case SchemaPolicyCoerce:
		if len(missing) == len(schema) {
			return nil, errs.Errorf(errs.SchemaMismatch, models.OpConform,
				"reply columns %v share no column with %v", reply.ColumnNames(), schema.Names())
		}
	default:
		return nil, errs.Errorf(errs.Internal, models.OpConform, "unknown schema policy %q", policy)
	}

	columns := make([]models.Column, len(schema))
	for i, field := range schema {
		columns[i] = models.Column{Name: field.Name, Type: field.Type}
	}

	rows := make([][]string, 0, len(reply.Rows))
	for r, in := range reply.Rows {
		out := make([]string, len(schema))
		for i, field := range schema {
			if sources[i] < 0 {
				continue
			}
			value, ok := coerceCell(in[sources[i]], field.Type)
			if !ok {
				if policy == SchemaPolicyStrict {
					return nil, errs.Errorf(errs.SchemaMismatch, models.OpConform,
						"row %d: value %q in column %q is not %s", r+1, in[sources[i]], field.Name, field.Type)
				}
				value = ""
			}
			out[i] = value
		}
		rows = append(rows, out)
	}

	return &models.Table{Columns: columns, Rows: rows}, nil
}

func normalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// coerceCell converts a raw cell to the canonical text of type t. It reports
// false when the cell cannot represent a value of that type.
func coerceCell(raw string, t models.ColumnType) (string, bool) {
	if models.IsNull(raw) {
		return "", true
	}
	raw = strings.TrimSpace(raw)

	switch t {
	case models.ColumnTypeInteger:
		return coerceToInteger(raw)
	case models.ColumnTypeFloat:
		return coerceToFloat(raw)
	case models.ColumnTypeBoolean:
		return coerceToBoolean(raw)
	case models.ColumnTypeDate:
		return coerceToDate(raw)
	default:
		return raw, true
	}
}

func coerceToInteger(raw string) (string, bool) {
	if v, ok := models.ParseInteger(raw); ok {
		return strconv.FormatInt(v, 10), true
	}
	f, ok := models.ParseFloat(raw)
	if !ok {
		f, ok = models.ParseFloat(extractNumberFromString(raw))
	}
	if ok && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10), true
	}
	return "", false
}

func coerceToFloat(raw string) (string, bool) {
	if _, ok := models.ParseFloat(raw); ok {
		return raw, true
	}
	// e.g. "$1,250.50" -> 1250.5
	if f, ok := models.ParseFloat(extractNumberFromString(raw)); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return "", false
}

func extractNumberFromString(s string) string {
	var result strings.Builder
	hasDecimal := false
	hasDigit := false

	for _, char := range s {
		switch {
		case char >= '0' && char <= '9':
			result.WriteRune(char)
			hasDigit = true
		case char == '.' && !hasDecimal && hasDigit:
			hasDecimal = true
			result.WriteRune(char)
		case char == '-' && result.Len() == 0:
			result.WriteRune(char)
		}
	}
	if !hasDigit {
		return ""
	}
	return result.String()
}

func coerceToBoolean(raw string) (string, bool) {
	switch strings.ToLower(raw) {
	case "true", "yes", "1", "on", "y", "t":
		return "true", true
	case "false", "no", "0", "off", "n", "f":
		return "false", true
	}
	return "", false
}

func coerceToDate(raw string) (string, bool) {
	parsed, layout, ok := models.ParseDate(raw)
	if !ok {
		return "", false
	}
	if strings.Contains(layout, "15") {
		return raw, true
	}
	return parsed.Format("2006-01-02"), true
}
