// Package assoc implements MIME association lists: the mimeapps.list file
// format, the precedence-tiered candidate resolver, and the editor that
// rewrites the user's list.
package assoc

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[ASSOC] "+format+"\n", args...)
	}
}

const (
	defaultSection = "Default Applications"
	addedSection   = "Added Associations"
)

// List holds the associations read from one mimeapps.list file. Defaults
// come from [Default Applications], Added from [Added Associations]; within
// a key, order is the file's declared order with duplicates removed.
type List struct {
	Defaults map[string][]string
	Added    map[string][]string
}

// NewList returns an empty association list.
func NewList() *List {
	return &List{
		Defaults: make(map[string][]string),
		Added:    make(map[string][]string),
	}
}

// ParseList reads the sectioned key=value-list format of mimeapps.list.
// Lines outside a recognized section are ignored, as are comments and
// blank lines.
func ParseList(data []byte) *List {
	list := NewList()
	var current map[string][]string

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch line[1 : len(line)-1] {
			case defaultSection:
				current = list.Defaults
			case addedSection:
				current = list.Added
			default:
				current = nil
			}
			continue
		}
		if current == nil {
			continue
		}
		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}
		mime := strings.TrimSpace(line[:eq])
		ids := splitHandlers(line[eq+1:])
		if mime == "" || len(ids) == 0 {
			continue
		}
		current[mime] = appendUnique(current[mime], ids...)
	}

	return list
}

// LoadList reads an association file; a missing file yields an empty list.
func LoadList(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewList(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseList(data), nil
}

// LoadTiers reads each path into its own List, preserving the given
// precedence order. Unreadable files are skipped so a single broken tier
// never blocks resolution.
func LoadTiers(paths []string) []*List {
	var tiers []*List
	for _, path := range paths {
		list, err := LoadList(path)
		if err != nil {
			debugLog("skipping unreadable tier %s: %v", path, err)
			continue
		}
		tiers = append(tiers, list)
	}
	return tiers
}

// Format serializes the list back to mimeapps.list text. Keys are emitted
// in sorted order; keys with no handlers are dropped.
func (l *List) Format() []byte {
	var b strings.Builder
	writeSection(&b, defaultSection, l.Defaults)
	writeSection(&b, addedSection, l.Added)
	return []byte(b.String())
}

// Handlers returns the ids associated with a mime key in [Default
// Applications], then [Added Associations], deduplicated in that order.
func (l *List) Handlers(mime string) []string {
	var ids []string
	ids = appendUnique(ids, l.Defaults[mime]...)
	ids = appendUnique(ids, l.Added[mime]...)
	return ids
}

// Keys returns every mime key present in either section, sorted.
func (l *List) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for k := range l.Defaults {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range l.Added {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func writeSection(b *strings.Builder, name string, entries map[string][]string) {
	keys := make([]string, 0, len(entries))
	for k, ids := range entries {
		if len(ids) > 0 {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	b.WriteString("[" + name + "]\n")
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strings.Join(entries[k], ";"))
		b.WriteString(";\n")
	}
	b.WriteString("\n")
}

func splitHandlers(value string) []string {
	var ids []string
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

func appendUnique(dst []string, ids ...string) []string {
	for _, id := range ids {
		found := false
		for _, have := range dst {
			if have == id {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, id)
		}
	}
	return dst
}
