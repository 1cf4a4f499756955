package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads comma separated text with a header row. Every record must
// have as many fields as the header. A header without data rows is valid.
func ParseCSV(r io.Reader) (*models.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	csvReader := csv.NewReader(br)
	csvReader.TrimLeadingSpace = true

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]string
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return newTable(headers, rows), nil
}

// Reparse parses the cleaned model reply as CSV with a header row. Unlike an
// upload, a reply must carry at least one data row.
func Reparse(text string) (*models.Table, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.Errorf(errs.ParseFailure, models.OpReparse, "empty payload")
	}

	t, err := ParseCSV(strings.NewReader(text))
	if err != nil {
		return nil, errs.E(errs.ParseFailure, models.OpReparse, err)
	}
	if len(t.Rows) == 0 {
		return nil, errs.Errorf(errs.ParseFailure, models.OpReparse, "no data rows after header %v", t.ColumnNames())
	}

	InferTypes(t)
	return t, nil
}
