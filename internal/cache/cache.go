package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"media-scan/internal/logging"
)

// snapshotVersion identifies the on-disk layout.
const snapshotVersion = 1

// Snapshot is the persisted form of the timing cache.
type Snapshot struct {
	Version     int                  `json:"version"`
	TimingCache map[string]time.Time `json:"timing_cache"`
}

// Cache is the in-memory handle to the persisted timing cache.
// All access is serialized through an internal mutex.
type Cache struct {
	mu   sync.Mutex
	path string
	snap Snapshot
}

// Load reads the cache file at path, creating an empty cache if the file
// does not exist yet. A file that exists but cannot be parsed is an error:
// silently discarding it would force a full rescan of every location and
// hide real corruption.
func Load(path string) (*Cache, error) {
	c := &Cache{
		path: path,
		snap: Snapshot{
			Version:     snapshotVersion,
			TimingCache: make(map[string]time.Time),
		},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Info("Timing cache not found at %s, starting empty", path)
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read timing cache: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse timing cache: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported timing cache version %d", snap.Version)
	}
	if snap.TimingCache == nil {
		snap.TimingCache = make(map[string]time.Time)
	}

	c.snap = snap
	logging.Info("Timing cache loaded: %d location(s)", len(snap.TimingCache))
	return c, nil
}

// Cutoff returns the stored cutoff for a location root, if any.
func (c *Cache) Cutoff(root string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff, ok := c.snap.TimingCache[root]
	return cutoff, ok
}

// Locations returns the roots currently tracked by the cache.
func (c *Cache) Locations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	roots := make([]string, 0, len(c.snap.TimingCache))
	for root := range c.snap.TimingCache {
		roots = append(roots, root)
	}
	return roots
}

// Modify applies fn to a copy of the snapshot, persists the copy, and swaps
// it in only if the persist succeeded. On error the in-memory state is
// unchanged, matching what is on disk.
func (c *Cache) Modify(fn func(*Snapshot)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := Snapshot{
		Version:     c.snap.Version,
		TimingCache: make(map[string]time.Time, len(c.snap.TimingCache)),
	}
	for root, cutoff := range c.snap.TimingCache {
		next.TimingCache[root] = cutoff
	}

	fn(&next)

	if err := c.persist(next); err != nil {
		return err
	}

	c.snap = next
	return nil
}

// persist writes a snapshot to a temp file and renames it over the cache
// file, so readers never observe a partially written cache.
func (c *Cache) persist(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode timing cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".timing-cache-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		closeAndRemove(tmp, tmpName)
		return fmt.Errorf("failed to write timing cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		closeAndRemove(tmp, tmpName)
		return fmt.Errorf("failed to sync timing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		removeTemp(tmpName)
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		removeTemp(tmpName)
		return fmt.Errorf("failed to replace timing cache: %w", err)
	}

	return nil
}

func closeAndRemove(f *os.File, name string) {
	if err := f.Close(); err != nil {
		logging.Warn("failed to close temp cache file: %v", err)
	}
	removeTemp(name)
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil {
		logging.Warn("failed to remove temp cache file %s: %v", name, err)
	}
}
