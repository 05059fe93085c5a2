// Package cache persists scanned desktop entries between runs. A snapshot
// is only trusted when its fingerprint matches the current state of the
// search roots; anything stale or unreadable is treated as a miss.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"openwith/internal/desktop"
	"openwith/internal/store"
	"openwith/internal/xdg"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[CACHE] "+format+"\n", args...)
	}
}

// schemaVersion is bumped whenever the snapshot layout changes, which
// invalidates every previously written cache file.
const schemaVersion = 1

// Snapshot is the on-disk cache format.
type Snapshot struct {
	Schema      int              `json:"schema"`
	Fingerprint string           `json:"fingerprint"`
	Skipped     int              `json:"skipped"`
	Entries     []*desktop.Entry `json:"entries"`
}

// Cache reads and writes entry snapshots at a fixed path.
type Cache struct {
	path string
}

// New returns a cache backed by the given file path.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Default returns the cache at its standard location under the user's
// cache directory.
func Default() *Cache {
	return New(filepath.Join(xdg.CacheHome(), "openwith", "entries.json"))
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	return c.path
}

// GetOrBuild returns the desktop entries for the given search roots,
// reusing the cached snapshot when its fingerprint still matches. The
// second return value reports whether the cache was hit. With force set
// the snapshot is ignored and rebuilt unconditionally.
func (c *Cache) GetOrBuild(roots []string, force bool) (*store.Result, bool, error) {
	fingerprint := Fingerprint(roots)

	if !force {
		if result, ok := c.load(fingerprint); ok {
			debugLog("cache hit (%d entries)", len(result.Entries))
			return result, true, nil
		}
	}

	result, err := store.Scan(roots)
	if err != nil {
		return nil, false, err
	}

	if err := c.save(fingerprint, result); err != nil {
		// A cache that cannot be written never fails the lookup.
		debugLog("cache write failed: %v", err)
	}
	return result, false, nil
}

// load returns the cached entries when the snapshot is readable, carries
// the current schema, and matches the expected fingerprint.
func (c *Cache) load(fingerprint string) (*store.Result, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		debugLog("discarding corrupt cache: %v", err)
		return nil, false
	}
	if snap.Schema != schemaVersion || snap.Fingerprint != fingerprint {
		debugLog("discarding stale cache (schema=%d)", snap.Schema)
		return nil, false
	}

	return &store.Result{Entries: snap.Entries, Skipped: snap.Skipped}, true
}

func (c *Cache) save(fingerprint string, result *store.Result) error {
	snap := Snapshot{
		Schema:      schemaVersion,
		Fingerprint: fingerprint,
		Skipped:     result.Skipped,
		Entries:     result.Entries,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return writeFileAtomic(c.path, data)
}

// Clear removes the cache file. A missing file is not an error.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

// Fingerprint summarizes the current state of the search roots: the schema
// version plus every desktop file's path, size, and modification time,
// hashed in sorted order. Touching, adding, or removing any entry under
// any root changes the digest.
func Fingerprint(roots []string) string {
	var lines []string
	for i, root := range roots {
		prefix := fmt.Sprintf("%d:%s", i, root)
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				lines = append(lines, prefix+":err")
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".desktop") {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			lines = append(lines, fmt.Sprintf("%s:%s:%d:%d", prefix, path, info.Size(), info.ModTime().UnixNano()))
			return nil
		})
	}
	sort.Strings(lines)

	h := sha256.New()
	fmt.Fprintf(h, "schema:%d\n", schemaVersion)
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeFileAtomic writes via a temp file in the target directory and
// renames it into place, so readers never observe a partial snapshot.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cache-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
