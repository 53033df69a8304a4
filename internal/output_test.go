package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/gi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTemplateNamesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTemplateNames(&buf, []string{"go", "node"}, schema.JSONOut, 80))
	assert.JSONEq(t, `["go","node"]`, buf.String())
}

func TestWriteTemplateNamesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTemplateNames(&buf, []string{"go", "c++"}, schema.CSVOut, 80))
	assert.Equal(t, "index,name\n1,go\n2,c++\n", buf.String())
}

func TestWriteTemplateNamesText(t *testing.T) {
	var buf bytes.Buffer
	names := []string{"actionscript", "ada", "go", "node", "python"}
	require.NoError(t, writeTemplateNames(&buf, names, schema.TextOut, 80))

	out := buf.String()
	for _, name := range names {
		assert.Contains(t, out, name)
	}
	// Column-major order keeps the first column alphabetical top to bottom.
	assert.Less(t, strings.Index(out, "actionscript"), strings.Index(out, "ada"))
}

func TestWriteTemplateNamesTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTemplateNames(&buf, nil, schema.TextOut, 80))
	assert.Equal(t, "No templates found.\n", buf.String())
}

func TestGridColumns(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		width int
		want  int
	}{
		{name: "fits several", names: []string{"go", "node", "rust"}, width: 80, want: 3},
		{name: "capped by max columns", names: strings.Fields("a b c d e f g h i j"), width: 200, want: maxListColumns},
		{name: "narrow terminal", names: []string{strings.Repeat("x", 100)}, width: 80, want: 1},
		{name: "wide names", names: []string{"visualstudiocode", "jetbrains+all", "go"}, width: 40, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gridColumns(tt.names, tt.width))
		})
	}
}

func TestWriteTemplateContentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.gitignore")
	require.NoError(t, WriteTemplateContent("*.exe\n", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "*.exe\n", string(data))
}

func TestWriteTemplateNamesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.json")
	require.NoError(t, WriteTemplateNames([]string{"go"}, schema.JSONOut, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["go"]`, string(data))
}

func TestWriteTemplateNamesBadPath(t *testing.T) {
	err := WriteTemplateNames([]string{"go"}, schema.JSONOut, filepath.Join(t.TempDir(), "missing", "names.json"))
	assert.Error(t, err)
}
