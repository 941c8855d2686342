package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	assert.Equal(t, "v1.2.0 (abcdef1)", Info{Version: "v1.2.0", GitCommit: "abcdef1234"}.Short())
	assert.Equal(t, "dev", Info{Version: "dev", GitCommit: "unknown"}.Short())
	assert.Equal(t, "dev", Info{Version: "dev", GitCommit: "abc"}.Short())
}

func TestString(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "0123456789",
		BuildTime: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Dirty:     true,
	}

	expected := "keywordmerge v1.0.0 (0123456) (dirty)\n" +
		"Built: 2026-03-04 05:06:07 UTC\n" +
		"Go: go1.24.4\n" +
		"Platform: linux/amd64\n"
	assert.Equal(t, expected, info.String())
}

func TestParseBuildTime(t *testing.T) {
	assert.True(t, parseBuildTime("unknown").IsZero())
	assert.True(t, parseBuildTime("yesterday").IsZero())
	assert.Equal(t, 2025, parseBuildTime("2025-01-02T03:04:05Z").Year())
	assert.Equal(t, 5, parseBuildTime("2025-01-02 03:04:05").Second())
}

func TestGetUsesLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })

	Version, GitCommit = "v9.9.9", "feedfacecafe"
	info := Get()
	assert.Equal(t, "v9.9.9", info.Version)
	assert.Equal(t, "feedfacecafe", info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
