package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewReport(t *testing.T) {
	r := NewReport("run-1", demoResult())

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, "Iterative Loop", r.Strategy)
	assert.Equal(t, uint64(0), r.Start)
	assert.Equal(t, uint64(30), r.End)
	assert.Equal(t, uint64(435), r.Sum)
	assert.Equal(t, 3, r.Chunks)
	require.Len(t, r.Partials, 3)
	for i, p := range r.Partials {
		assert.Equal(t, i, p.Index, "partials must be in chunk order")
	}
	assert.Nil(t, r.Verified)
}

func TestFormatReport(t *testing.T) {
	verified := true
	r := NewReport("run-2", demoResult())
	r.Verified = &verified

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatReport(&buf, FormatJSON, r))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "run-2", decoded["run_id"])
		assert.EqualValues(t, 435, decoded["sum"])
		assert.Equal(t, true, decoded["verified"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatReport(&buf, FormatYAML, r))
		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "Iterative Loop", decoded["strategy"])
		assert.EqualValues(t, 435, decoded["sum"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatReport(&buf, FormatText, r))
		out := buf.String()
		assert.Contains(t, out, "# Strategy: Iterative Loop")
		assert.Contains(t, out, "# Verified: true")
		assert.Contains(t, out, "chunk #1 [10, 20) = 145")
		assert.Contains(t, out, "sum [0, 30) = 435")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, FormatReport(&bytes.Buffer{}, "xml", r))
	})
}

func TestWriteReport(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "report.json")
		require.NoError(t, WriteReport(path, FormatJSON, NewReport("run-3", demoResult())))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"run_id": "run-3"`)
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		assert.NoError(t, WriteReport("", FormatJSON, Report{}))
	})

	t.Run("unwritable path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		err := WriteReport(filepath.Join(blocker, "report.txt"), FormatText, Report{})
		assert.Error(t, err)
	})
}
