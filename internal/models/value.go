package models

import (
	"strconv"
	"strings"
	"time"
)

// DateLayouts are the layouts recognised as dates, most specific first.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02-Jan-2006",
}

func ParseInteger(raw string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return v, err == nil
}

func ParseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(lower, "inf") || lower == "nan" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func ParseBoolean(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func ParseDate(raw string) (time.Time, string, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range DateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, layout, true
		}
	}
	return time.Time{}, "", false
}

// TypedValue converts a raw cell into the JSON value for its column type.
// Cells that do not parse as the column type are kept as strings.
func TypedValue(raw string, t ColumnType) any {
	if IsNull(raw) {
		return nil
	}
	switch t {
	case ColumnTypeInteger:
		if v, ok := ParseInteger(raw); ok {
			return v
		}
	case ColumnTypeFloat:
		if v, ok := ParseFloat(raw); ok {
			return v
		}
	case ColumnTypeBoolean:
		if v, ok := ParseBoolean(raw); ok {
			return v
		}
	case ColumnTypeDate:
		return strings.TrimSpace(raw)
	}
	return raw
}
