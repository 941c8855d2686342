// Package testutils holds fixtures and helpers shared by the package tests.
package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conneroisu/keywordmerge/internal/config"
	"github.com/stretchr/testify/require"
)

// StandardRecords are input lines covering each way a line can be handled.
var StandardRecords = map[string]string{
	"simple":       `{'C1': {'sub': {'dir': ['x', 'y']}}}`,
	"non_matching": `{'Z9': {'sub': {'dir': ['x']}}}`,
	"first_part":   `{'C2': {'a': {'d': ['k1']}}}`,
	"second_part":  `{'C2': {'b': {'d': ['k1','k2']}}}`,
	"falsy":        `{'C4': {'a': None, 'b': {}, 'c': {'d': ['kept'], 'e': 'not a list'}}}`,
	"concatenated": `{'C5': {'a': {'d': ['left']}}}{'C6': {'b': {'d': ['right']}}}`,
	"stray_brace":  `{'C7': {'a': {'d': ['solo']}}} {`,
	"malformed":    `not a dict at all`,
	"non_ascii":    `{'C8': {'分类': {'方向': ['关键词', 'café']}}}`,
}

// CreateTempWorkspace creates a temporary directory holding files.
func CreateTempWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// WriteInputFile writes lines, newline terminated, to dir/name and returns the path.
func WriteInputFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Chdir changes into dir for the rest of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })
}

// CreateTestConfig returns the default configuration rooted at dir.
func CreateTestConfig(dir string) *config.Config {
	cfg := config.Default()
	for i, in := range cfg.Inputs {
		cfg.Inputs[i] = filepath.Join(dir, in)
	}
	cfg.Output.Path = filepath.Join(dir, cfg.Output.Path)
	return cfg
}

// ReadJSONResult decodes a JSON result file.
func ReadJSONResult(t *testing.T, path string) map[string][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var result map[string][]string
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}
