// Package store scans desktop-entry search roots and folds the results
// into a single collection with directory-precedence deduplication.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"openwith/internal/desktop"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[STORE] "+format+"\n", args...)
	}
}

// ErrNoSearchRoots is returned when not a single search root could be read.
var ErrNoSearchRoots = errors.New("no readable desktop entry directories")

const entryExtension = ".desktop"

// Result is the outcome of one scan: the deduplicated entries plus the
// number of files that were skipped because they failed to parse.
type Result struct {
	Entries []*desktop.Entry
	Skipped int
}

// rootScan holds the files found under one search root, in path order.
type rootScan struct {
	entries []*desktop.Entry
	skipped int
	err     error
}

// Scan enumerates every *.desktop file under the given roots (highest
// precedence first) and parses them. Files that fail to parse are counted
// and skipped; unreadable roots are tolerated unless every root is
// unreadable. The precedence fold is keyed by entry id, so the parallel
// scan order never affects the outcome.
func Scan(roots []string) (*Result, error) {
	if len(roots) == 0 {
		return nil, ErrNoSearchRoots
	}

	scans := make([]rootScan, len(roots))
	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func(i int, root string) {
			defer wg.Done()
			scans[i] = scanRoot(root, i)
		}(i, root)
	}
	wg.Wait()

	result := &Result{}
	seen := make(map[string]bool)
	readable := 0

	// Fold in declared root order: an id from a lower-precedence root never
	// overwrites one already present.
	for i, scan := range scans {
		if scan.err != nil {
			debugLog("skipping unreadable root %s: %v", roots[i], scan.err)
			continue
		}
		readable++
		result.Skipped += scan.skipped
		for _, entry := range scan.entries {
			if seen[entry.ID] {
				continue
			}
			seen[entry.ID] = true
			result.Entries = append(result.Entries, entry)
		}
	}

	if readable == 0 {
		return nil, ErrNoSearchRoots
	}

	sort.Slice(result.Entries, func(a, b int) bool {
		if result.Entries[a].SourcePriority != result.Entries[b].SourcePriority {
			return result.Entries[a].SourcePriority < result.Entries[b].SourcePriority
		}
		return result.Entries[a].ID < result.Entries[b].ID
	})

	debugLog("scanned %d roots: %d entries, %d skipped", readable, len(result.Entries), result.Skipped)
	return result, nil
}

func scanRoot(root string, priority int) rootScan {
	if _, err := os.Stat(root); err != nil {
		return rootScan{err: err}
	}

	var scan rootScan
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subdirectory: skip it, keep scanning the rest.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), entryExtension) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			scan.skipped++
			return nil
		}
		entry, err := desktop.Parse(data, priority)
		if err != nil {
			debugLog("skipping %s: %v", path, err)
			scan.skipped++
			return nil
		}
		entry.ID = EntryID(root, path)
		entry.SourcePath = path
		scan.entries = append(scan.entries, entry)
		return nil
	})
	if walkErr != nil {
		return rootScan{err: walkErr}
	}

	// WalkDir yields lexical order already; keep it explicit so the fold
	// input is deterministic regardless of platform.
	sort.Slice(scan.entries, func(a, b int) bool {
		return scan.entries[a].SourcePath < scan.entries[b].SourcePath
	})
	return scan
}

// EntryID derives the stable identifier for a desktop file: its path
// relative to the search root with separators replaced by '-', so
// applications/vendor/app.desktop becomes vendor-app.desktop.
func EntryID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}
