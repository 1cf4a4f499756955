package table

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blagoySimandov/synthdata/internal/errs"
	"github.com/blagoySimandov/synthdata/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLS  Format = "xls"
	FormatXLSX Format = "xlsx"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SecureFilename reduces an uploaded file name to a safe base name: path
// components are dropped, whitespace becomes underscores, other unsafe
// characters are removed, and leading dots or underscores are trimmed.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(filepath.Clean("/" + name))
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.TrimLeft(name, "._")
}

// DetectFormat picks the parser for a file from its extension.
func DetectFormat(filename string) (Format, error) {
	safe := SecureFilename(filename)
	ext := strings.ToLower(filepath.Ext(safe))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xls":
		return FormatXLS, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	if ext == "" {
		return "", errs.Errorf(errs.UnsupportedFormat, models.OpLoad, "file %q has no extension", filename)
	}
	return "", errs.Errorf(errs.UnsupportedFormat, models.OpLoad, "unsupported file extension %q", ext)
}
