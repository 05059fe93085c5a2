package assoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Editor mutates the user's mimeapps.list. All operations work on an
// in-memory copy; nothing touches disk until Persist. Only the
// [Default Applications] section is edited; [Added Associations] entries
// already in the file survive a rewrite untouched.
type Editor struct {
	path string
	list *List
}

// NewEditor loads the association file at path; a missing file starts the
// editor with an empty list.
func NewEditor(path string) (*Editor, error) {
	list, err := LoadList(path)
	if err != nil {
		return nil, err
	}
	return &Editor{path: path, list: list}, nil
}

// List exposes the in-memory state, for resolution against pending edits.
func (e *Editor) List() *List {
	return e.list
}

// Set replaces the handlers for the mime pattern with exactly the given ids.
func (e *Editor) Set(pattern string, ids []string, expandWildcards bool) {
	for _, mime := range e.targets(pattern, expandWildcards) {
		e.list.Defaults[mime] = appendUnique(nil, ids...)
	}
}

// Add appends id to the pattern's handlers unless already present.
func (e *Editor) Add(pattern, id string, expandWildcards bool) {
	for _, mime := range e.targets(pattern, expandWildcards) {
		e.list.Defaults[mime] = appendUnique(e.list.Defaults[mime], id)
	}
}

// Remove deletes id from the pattern's handlers. Removing an absent id is
// a no-op; a key left with no handlers is dropped.
func (e *Editor) Remove(pattern, id string, expandWildcards bool) {
	for _, mime := range e.targets(pattern, expandWildcards) {
		ids := e.list.Defaults[mime]
		kept := ids[:0]
		for _, have := range ids {
			if have != id {
				kept = append(kept, have)
			}
		}
		if len(kept) == 0 {
			delete(e.list.Defaults, mime)
		} else {
			e.list.Defaults[mime] = kept
		}
	}
}

// Unset deletes the pattern's key entirely.
func (e *Editor) Unset(pattern string, expandWildcards bool) {
	for _, mime := range e.targets(pattern, expandWildcards) {
		delete(e.list.Defaults, mime)
	}
}

// Persist writes the list back atomically. On failure the file keeps its
// previous contents.
func (e *Editor) Persist() error {
	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data := e.list.Format()
	dir := filepath.Dir(e.path)
	tmp, err := os.CreateTemp(dir, ".mimeapps-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write associations: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, e.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", e.path, err)
	}

	debugLog("persisted %s", e.path)
	return nil
}

// targets resolves a mutation's key pattern. A wildcard pattern expands to
// every currently known key it matches when expandWildcards is set;
// otherwise (or when nothing matches) the pattern itself is the key, stored
// verbatim.
func (e *Editor) targets(pattern string, expandWildcards bool) []string {
	if !expandWildcards || !strings.ContainsAny(pattern, "*?") {
		return []string{pattern}
	}

	var mimes []string
	for _, key := range e.list.Keys() {
		if MatchesPattern(pattern, key) {
			mimes = append(mimes, key)
		}
	}
	sort.Strings(mimes)
	if len(mimes) == 0 {
		return nil
	}
	return mimes
}
