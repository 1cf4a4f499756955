package table

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

const (
	sheetDateLayout     = "2006-01-02"
	sheetDateTimeLayout = "2006-01-02 15:04:05"
)

// ParseXLSX reads the first sheet of an OOXML workbook; its first non-empty
// row is the header. Cells carrying a date number format are rendered as
// ISO dates instead of their display text.
func ParseXLSX(data []byte) (*models.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	dateStyles := make(map[int]bool)
	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("failed to read style of %s: %w", cell, err)
			}
			isDate, seen := dateStyles[styleID]
			if !seen {
				isDate = xlsxDateStyle(f, styleID)
				dateStyles[styleID] = isDate
			}
			if !isDate {
				continue
			}
			raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", cell, err)
			}
			if formatted, ok := serialToDate(raw, date1904); ok {
				row[c] = formatted
			}
		}
	}
	return fromSheetRows(rows)
}

func xlsxDateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	code := ""
	if style.CustomNumFmt != nil {
		code = *style.CustomNumFmt
	}
	return isDateNumFmt(style.NumFmt, code)
}

// ParseXLS reads the first sheet of a legacy BIFF workbook. BIFF files are
// assumed to use the 1900 date system.
func ParseXLS(data []byte) (*models.Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb.GetNumberSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	sheet, err := wb.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read first sheet: %w", err)
	}

	dateFormats := make(map[int]bool)
	var rows [][]string
	for _, row := range sheet.GetRows() {
		var values []string
		for _, cell := range row.GetCols() {
			value := cell.GetString()
			if value != "" {
				xfIndex := cell.GetXFIndex()
				isDate, seen := dateFormats[xfIndex]
				if !seen {
					isDate = xlsDateFormat(&wb, xfIndex)
					dateFormats[xfIndex] = isDate
				}
				if isDate {
					if formatted, ok := serialToDate(value, false); ok {
						value = formatted
					}
				}
			}
			values = append(values, value)
		}
		rows = append(rows, values)
	}
	return fromSheetRows(rows)
}

func xlsDateFormat(wb *xls.Workbook, xfIndex int) (isDate bool) {
	// xlsReader indexes its XF table without bounds checks.
	defer func() {
		if recover() != nil {
			isDate = false
		}
	}()

	xf := wb.GetXFbyIndex(xfIndex)
	id := xf.GetFormatIndex()
	code := ""
	if id >= 164 {
		format := wb.GetFormatByIndex(id)
		code = format.String()
	}
	return isDateNumFmt(id, code)
}

// isDateNumFmt reports whether a number format renders a calendar date.
// Built-in ids follow ECMA-376 18.8.30; custom codes are scanned for day or
// year tokens outside literals. Time-only formats are not dates.
func isDateNumFmt(id int, code string) bool {
	switch {
	case id >= 14 && id <= 17, id == 22, id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	if code == "" {
		return false
	}

	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	tokens := strings.ToLower(b.String())
	return strings.ContainsAny(tokens, "yd")
}

func serialToDate(raw string, date1904 bool) (string, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return "", false
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(sheetDateLayout), true
	}
	return t.Format(sheetDateTimeLayout), true
}

func fromSheetRows(rows [][]string) (*models.Table, error) {
	for len(rows) > 0 && isEmptyRecord(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}
	return newTable(rows[0], rows[1:]), nil
}
