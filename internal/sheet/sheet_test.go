package sheet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDelimited(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		headerRow int
		expected  [][]string
	}{
		{
			name:     "comma separated",
			content:  "Okul No,Y1\n12,80\n",
			expected: [][]string{{"Okul No", "Y1"}, {"12", "80"}},
		},
		{
			name:     "semicolon separated with comma decimals",
			content:  "Okul No;Y1\n12;80,5\n",
			expected: [][]string{{"Okul No", "Y1"}, {"12", "80,5"}},
		},
		{
			name:     "byte order mark is stripped",
			content:  "\xef\xbb\xbfOkul No,Y1\n12,80\n",
			expected: [][]string{{"Okul No", "Y1"}, {"12", "80"}},
		},
		{
			name:     "title lines without delimiters do not decide",
			content:  "School report\nOkul No;Y1\n12;80,5\n",
			expected: [][]string{{"School report"}, {"Okul No", "Y1"}, {"12", "80,5"}},
		},
		{
			name:      "comma in the preamble does not decide",
			content:   "Class 9/A, Term 1\nOkul No;Y1;Y2\n12;80,5;60\n",
			headerRow: 1,
			expected:  [][]string{{"Class 9/A, Term 1"}, {"Okul No", "Y1", "Y2"}, {"12", "80,5", "60"}},
		},
		{
			name:      "blank lines are not counted as rows",
			content:   "Report, 2024\n\nOkul No;Y1\n12;80\n",
			headerRow: 1,
			expected:  [][]string{{"Report, 2024"}, {"Okul No", "Y1"}, {"12", "80"}},
		},
		{
			name:      "header line without delimiters falls back to the next one",
			content:   "Okul No\n12;80\n",
			headerRow: 0,
			expected:  [][]string{{"Okul No"}, {"12", "80"}},
		},
		{
			name:     "ragged rows are kept",
			content:  "a,b,c\n1\n",
			expected: [][]string{{"a", "b", "c"}, {"1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "roster.csv", tt.content)
			grid, err := Read(path, "", tt.headerRow)
			require.NoError(t, err)
			assert.Empty(t, grid.Name)
			assert.Equal(t, path, grid.Path)
			assert.Equal(t, tt.expected, grid.Rows)
		})
	}
}

func TestReadUnsupported(t *testing.T) {
	path := writeFile(t, "roster.ods", "")
	_, err := Read(path, "", 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWorkbookRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	header := []string{"student_id", "full_name", "average"}
	rows := [][]any{
		{int64(7), "Ada", 74.5},
		{int64(9), "Şule", 40.0},
	}
	require.NoError(t, WriteWorkbook(&buf, "9-A", header, rows))

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	grid, err := Read(path, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "9-A", grid.Name)
	require.Len(t, grid.Rows, 3)
	assert.Equal(t, header, grid.Rows[0])
	assert.Equal(t, []string{"7", "Ada", "74.5"}, grid.Rows[1])
	assert.Equal(t, "Şule", grid.Rows[2][1])
}

func TestReadNamedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("10-B")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("10-B", "A1", "Okul No"))
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	grid, err := Read(path, "10-B", 0)
	require.NoError(t, err)
	assert.Equal(t, "10-B", grid.Name)
	assert.Equal(t, "Okul No", grid.Cell(0, 0))

	_, err = Read(path, "missing", 0)
	assert.Error(t, err)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "9-A", "9-A"},
		{"forbidden characters", "a/b:c", "a_b_c"},
		{"blank", "   ", "Sheet1"},
		{"too long", "abcdefghijklmnopqrstuvwxyz0123456789", "abcdefghijklmnopqrstuvwxyz01234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeSheetName(tt.input))
		})
	}
}

func TestGridCell(t *testing.T) {
	g := &Grid{Rows: [][]string{{"a", "b"}, {"c"}}}
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, "b", g.Cell(0, 1))
	assert.Equal(t, "", g.Cell(1, 1))
	assert.Equal(t, "", g.Cell(5, 0))
}
