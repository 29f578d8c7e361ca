package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

type appliedEntry struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
}

// AppliedCache remembers which job cards the bot already applied to, so a
// re-run of the same search page does not submit a duplicate application.
// Entries expire after 30 days.
type AppliedCache struct {
	mu       sync.Mutex
	filePath string
	seen     mapset.Set[string]
	stamps   map[string]int64
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

// NewAppliedCache creates or loads the applied-jobs cache
func NewAppliedCache(cacheDir string) *AppliedCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &AppliedCache{
		filePath: filepath.Join(cacheDir, "applied_jobs.json"),
		seen:     mapset.NewSet[string](),
		stamps:   make(map[string]int64),
	}
	cache.load()
	return cache
}

// Seen checks whether a job signature was already applied to
func (c *AppliedCache) Seen(signature string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen.Contains(signature)
}

// Add marks a job signature as applied and persists the cache
func (c *AppliedCache) Add(signature string) {
	if signature == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.seen.Add(signature) {
		return
	}
	c.stamps[signature] = time.Now().UnixMilli()
	c.save()
}

func (c *AppliedCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read applied_jobs.json: %v", err)
		}
		return
	}

	var entries []appliedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse applied_jobs.json: %v", err)
		return
	}

	cutoff := time.Now().UnixMilli() - thirtyDaysMs
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen.Add(e.Signature)
			c.stamps[e.Signature] = e.Timestamp
		}
	}
	log.Printf("📋 Loaded %d previously applied jobs (%d expired)", c.seen.Cardinality(), len(entries)-c.seen.Cardinality())
}

func (c *AppliedCache) save() {
	entries := make([]appliedEntry, 0, len(c.stamps))
	for sig, ts := range c.stamps {
		entries = append(entries, appliedEntry{Signature: sig, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal applied jobs: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write applied_jobs.json: %v", err)
	}
}
