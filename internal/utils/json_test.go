package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON(t *testing.T) {
	t.Run("loads valid JSON file successfully", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "test.json")
		require.NoError(t, os.WriteFile(jsonFile, []byte(`{"name": "test", "value": 42}`), 0600))

		var result struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}
		err := LoadJSON(jsonFile, &result)

		assert.NoError(t, err)
		assert.Equal(t, "test", result.Name)
		assert.Equal(t, 42, result.Value)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		var result map[string]any
		err := LoadJSON("/nonexistent/path/file.json", &result)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "invalid.json")
		require.NoError(t, os.WriteFile(jsonFile, []byte("{invalid json}"), 0600))

		var result map[string]any
		err := LoadJSON(jsonFile, &result)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal JSON")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "typo.json")
		require.NoError(t, os.WriteFile(jsonFile, []byte(`{"nmae": "x"}`), 0600))

		var result struct {
			Name string `json:"name"`
		}
		err := LoadJSON(jsonFile, &result)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nmae")
	})
}

func TestSaveJSON(t *testing.T) {
	t.Run("writes indented JSON and leaves no temp file", func(t *testing.T) {
		dir := t.TempDir()
		jsonFile := filepath.Join(dir, "output.json")

		err := SaveJSON(jsonFile, map[string]any{"name": "test", "value": 42})
		require.NoError(t, err)

		content, err := os.ReadFile(jsonFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "\n  \"name\": \"test\"")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		err := SaveJSON("/invalid/path/to/file.json", map[string]string{"key": "value"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write file")
	})

	t.Run("returns error for non-serializable data", func(t *testing.T) {
		jsonFile := filepath.Join(t.TempDir(), "invalid.json")

		err := SaveJSON(jsonFile, map[string]any{"channel": make(chan int)})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal data")
		assert.NoFileExists(t, jsonFile)
	})
}

func TestLoadJSON_SaveJSON_RoundTrip(t *testing.T) {
	jsonFile := filepath.Join(t.TempDir(), "roundtrip.json")

	type doc struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}
	original := doc{Name: "catalog", Tags: []string{"rare", "epic"}}

	require.NoError(t, SaveJSON(jsonFile, original))

	var loaded doc
	require.NoError(t, LoadJSON(jsonFile, &loaded))
	assert.Equal(t, original, loaded)
}
