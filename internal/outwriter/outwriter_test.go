package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() schema.ActivityResult {
	return schema.ActivityResult{
		CurrentBranch: "main",
		Remote:        "origin",
		Cutoff:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		DiffMode:      schema.MergeBaseDiff,
		Branches: []schema.BranchRef{
			{Name: "origin/feature-x", AuthorDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		},
		Stats: []schema.PathStats{
			{Path: "src/a.py", Additions: 10, Deletions: 2},
			{Path: "docs", Additions: 0, Deletions: 0},
		},
	}
}

func TestFormatStatLine(t *testing.T) {
	tests := []struct {
		name     string
		stats    schema.PathStats
		expected string
	}{
		{"typical", schema.PathStats{Path: "src/foo.py", Additions: 15, Deletions: 3}, "     +15       -3 src/foo.py"},
		{"small", schema.PathStats{Path: "src/a.py", Additions: 10, Deletions: 2}, "     +10       -2 src/a.py"},
		{"zeros keep their signs", schema.PathStats{Path: "b.py", Additions: 0, Deletions: 0}, "      +0       -0 b.py"},
		{"wide counts overflow the field", schema.PathStats{Path: "big", Additions: 123456789, Deletions: 12345678}, "+123456789 -12345678 big"},
		{"path is printed verbatim", schema.PathStats{Path: "./dir with space/", Additions: 1, Deletions: 1}, "      +1       -1 ./dir with space/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatStatLine(tt.stats, false))
		})
	}
}

func TestFormatStatLineColors(t *testing.T) {
	line := FormatStatLine(schema.PathStats{Path: "a.py", Additions: 15, Deletions: 3}, true)
	assert.Equal(t, "\x1b[32m     +15\x1b[0m \x1b[31m      -3\x1b[0m a.py", line)
}

func TestWriteActivityText(t *testing.T) {
	stats := sampleResult().Stats

	t.Run("counts", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeActivityText(&buf, stats, false, false))
		assert.Equal(t, "     +10       -2 src/a.py\n      +0       -0 docs\n", buf.String())
	})

	t.Run("only filenames", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeActivityText(&buf, stats, true, true))
		assert.Equal(t, "src/a.py\ndocs\n", buf.String())
	})

	t.Run("nothing visible", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeActivityText(&buf, nil, false, false))
		assert.Empty(t, buf.String())
	})
}

func TestWriteActivityTable(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeActivityTable(&buf, sampleResult(), false, 40))
		out := buf.String()
		header := strings.ToUpper(out)
		assert.Contains(t, header, "PATH")
		assert.Contains(t, header, "ADDED")
		assert.Contains(t, header, "DELETED")
		assert.Contains(t, out, "src/a.py")
		assert.Contains(t, out, "+10")
		assert.Contains(t, out, "-0")
		assert.Contains(t, out, "Compared 1 remote branches of origin against main since 2024-05-01T00:00:00Z (merge-base)")
	})

	t.Run("only filenames", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeActivityTable(&buf, sampleResult(), true, 40))
		assert.NotContains(t, strings.ToUpper(buf.String()), "ADDED")
		assert.NotContains(t, buf.String(), "+10")
	})

	t.Run("long paths are truncated", func(t *testing.T) {
		result := sampleResult()
		result.Stats = []schema.PathStats{{Path: strings.Repeat("x", 30) + "/tail.go"}}
		var buf bytes.Buffer
		require.NoError(t, writeActivityTable(&buf, result, false, 15))
		assert.Contains(t, buf.String(), "...")
		assert.Contains(t, buf.String(), "tail.go")
	})
}

func TestWriteActivityCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeActivityCSV(&buf, sampleResult().Stats, false))
	assert.Equal(t, "path,additions,deletions\nsrc/a.py,10,2\ndocs,0,0\n", buf.String())

	buf.Reset()
	require.NoError(t, writeActivityCSV(&buf, sampleResult().Stats, true))
	assert.Equal(t, "path\nsrc/a.py\ndocs\n", buf.String())
}

func TestWriteActivityJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeActivityJSON(&buf, sampleResult()))

	var decoded schema.ActivityResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "origin", decoded.Remote)
	assert.Equal(t, sampleResult().Stats, decoded.Stats)
	assert.Contains(t, buf.String(), `"current_branch": "main"`)
	assert.Contains(t, buf.String(), `"diff_mode": "merge-base"`)

	buf.Reset()
	require.NoError(t, writeActivityJSON(&buf, schema.ActivityResult{}))
	assert.Contains(t, buf.String(), `"branches": []`)
	assert.Contains(t, buf.String(), `"stats": []`)
}

func TestWriteActivityToFile(t *testing.T) {
	tests := []struct {
		output schema.OutputMode
		check  func(t *testing.T, content string)
	}{
		{schema.TextOut, func(t *testing.T, content string) {
			assert.Equal(t, "     +10       -2 src/a.py\n      +0       -0 docs\n", content, "files never carry color codes")
		}},
		{schema.CSVOut, func(t *testing.T, content string) {
			assert.True(t, strings.HasPrefix(content, "path,additions,deletions\n"))
		}},
		{schema.JSONOut, func(t *testing.T, content string) {
			assert.Contains(t, content, `"path": "src/a.py"`)
		}},
		{schema.TableOut, func(t *testing.T, content string) {
			assert.Contains(t, content, "src/a.py")
		}},
		{schema.ParquetOut, func(t *testing.T, content string) {
			assert.True(t, strings.HasPrefix(content, "PAR1"))
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			outputFile := filepath.Join(t.TempDir(), "report")
			cfg := &contract.Config{Output: tt.output, OutputFile: outputFile, UseColors: true}

			require.NoError(t, WriteActivity(sampleResult(), cfg))

			content, err := os.ReadFile(outputFile)
			require.NoError(t, err)
			tt.check(t, string(content))
		})
	}
}

func TestWriteActivityParquetNeedsFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.ParquetOut}
	err := WriteActivity(sampleResult(), cfg)
	assert.ErrorContains(t, err, "requires --output-file")
}

func TestWriteActivityBadFile(t *testing.T) {
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: filepath.Join(t.TempDir(), "missing", "out.csv")}
	assert.Error(t, WriteActivity(sampleResult(), cfg))
}

func TestPathWidthFor(t *testing.T) {
	assert.Equal(t, 46, pathWidthFor(0, false), "unknown width falls back to 80 columns")
	assert.Equal(t, 70, pathWidthFor(80, true))
	assert.Equal(t, 15, pathWidthFor(20, false))
	assert.Equal(t, 120, pathWidthFor(400, false))
}
