package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	path := writeTempFile(t, "people.csv", "id,name,active\n1,Alice,true\n2,Bob,false\n")

	out, err := runCmd(t, "describe", "--input", path, "--rows", "4", "--prompt", "keep it short")
	require.NoError(t, err)

	assert.Contains(t, out, "Source (csv, 3 columns, 2 rows)")
	assert.Contains(t, out, "- id: integer\n- name: string\n- active: boolean\n")
	assert.Contains(t, out, "Please generate 4 rows")
	assert.Contains(t, out, "Additional instructions: keep it short")
}

func TestDescribe_Errors(t *testing.T) {
	txt := writeTempFile(t, "notes.txt", "hello")
	csv := writeTempFile(t, "people.csv", "id\n1\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing input flag", []string{"describe"}, "input"},
		{"unsupported extension", []string{"describe", "--input", txt}, "unsupported"},
		{"bad rows", []string{"describe", "--input", csv, "--rows", "ten"}, "numRows"},
		{"missing file", []string{"describe", "--input", filepath.Join(t.TempDir(), "nope.csv")}, "nope.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.wantErr))
		})
	}
}

func TestWriteRecords(t *testing.T) {
	records := []models.Record{
		models.NewRecord([]string{"id", "name"}, []any{int64(1), "Alice"}),
	}

	var stdout bytes.Buffer
	require.NoError(t, writeRecords(&stdout, "", records))
	assert.JSONEq(t, `[{"id":1,"name":"Alice"}]`, stdout.String())

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeRecords(&stdout, path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Alice", decoded[0]["name"])
}
