package cache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeEntry(t *testing.T, root, name string) string {
	t.Helper()
	path := filepath.Join(root, name+".desktop")
	content := "[Desktop Entry]\nName=" + name + "\nExec=" + name + " %f\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "entries.json"))
}

func TestGetOrBuildHitOnSecondCall(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "editor")
	c := newTestCache(t)
	roots := []string{root}

	first, hit, err := c.GetOrBuild(roots, false)
	if err != nil {
		t.Fatalf("first GetOrBuild failed: %v", err)
	}
	if hit {
		t.Error("first call reported a cache hit")
	}

	second, hit, err := c.GetOrBuild(roots, false)
	if err != nil {
		t.Fatalf("second GetOrBuild failed: %v", err)
	}
	if !hit {
		t.Error("second call missed the cache")
	}
	if !reflect.DeepEqual(first.Entries, second.Entries) {
		t.Error("cached entries differ from scanned entries")
	}
}

func TestGetOrBuildMissAfterTouch(t *testing.T) {
	root := t.TempDir()
	path := writeEntry(t, root, "editor")
	c := newTestCache(t)
	roots := []string{root}

	if _, _, err := c.GetOrBuild(roots, false); err != nil {
		t.Fatal(err)
	}

	// Appending changes the file size, which must change the fingerprint.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("Comment=changed\n")
	f.Close()

	_, hit, err := c.GetOrBuild(roots, false)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("cache hit after a scanned file changed")
	}
}

func TestGetOrBuildForceRefresh(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "editor")
	c := newTestCache(t)
	roots := []string{root}

	if _, _, err := c.GetOrBuild(roots, false); err != nil {
		t.Fatal(err)
	}
	_, hit, err := c.GetOrBuild(roots, true)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("force refresh reported a cache hit")
	}
}

func TestCorruptCacheIsAMiss(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "editor")
	c := newTestCache(t)
	roots := []string{root}

	if _, _, err := c.GetOrBuild(roots, false); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	result, hit, err := c.GetOrBuild(roots, false)
	if err != nil {
		t.Fatalf("corrupt cache surfaced an error: %v", err)
	}
	if hit {
		t.Error("corrupt cache reported a hit")
	}
	if len(result.Entries) != 1 {
		t.Errorf("got %d entries after rebuild, want 1", len(result.Entries))
	}
}

func TestClearForcesMiss(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "editor")
	c := newTestCache(t)
	roots := []string{root}

	if _, _, err := c.GetOrBuild(roots, false); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, hit, _ := c.GetOrBuild(roots, false); hit {
		t.Error("cache hit right after Clear")
	}

	// Clearing an already-missing cache is fine.
	if err := c.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "editor")

	before := Fingerprint([]string{root})
	writeEntry(t, root, "viewer")
	after := Fingerprint([]string{root})

	if before == after {
		t.Error("fingerprint unchanged after adding an entry")
	}
}
