package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppliedCachePersists(t *testing.T) {
	dir := t.TempDir()

	cache := NewAppliedCache(dir)
	assert.False(t, cache.Seen("Golang Developer - TechCorp"))

	cache.Add("Golang Developer - TechCorp")
	assert.True(t, cache.Seen("Golang Developer - TechCorp"))

	//a reloaded cache must remember the signature
	reloaded := NewAppliedCache(dir)
	assert.True(t, reloaded.Seen("Golang Developer - TechCorp"))
	assert.False(t, reloaded.Seen("Other Job"))
}

func TestAppliedCacheIgnoresEmpty(t *testing.T) {
	cache := NewAppliedCache(t.TempDir())
	cache.Add("")
	assert.False(t, cache.Seen(""))
}

func TestAppliedCacheExpiry(t *testing.T) {
	dir := t.TempDir()

	stale := []appliedEntry{
		{Signature: "old job", Timestamp: time.Now().AddDate(0, 0, -31).UnixMilli()},
		{Signature: "recent job", Timestamp: time.Now().UnixMilli()},
	}
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "applied_jobs.json"), data, 0644))

	cache := NewAppliedCache(dir)
	assert.False(t, cache.Seen("old job"))
	assert.True(t, cache.Seen("recent job"))
}
