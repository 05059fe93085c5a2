package assoc

import (
	"reflect"
	"testing"
)

func TestParseList(t *testing.T) {
	input := `# user overrides
[Default Applications]
application/pdf=evince.desktop;okular.desktop;
text/plain=helix.desktop

[Added Associations]
text/plain=code.desktop;

[Removed Associations]
image/png=gimp.desktop;
`
	list := ParseList([]byte(input))

	want := []string{"evince.desktop", "okular.desktop"}
	if !reflect.DeepEqual(list.Defaults["application/pdf"], want) {
		t.Errorf("Defaults[application/pdf] = %v, want %v", list.Defaults["application/pdf"], want)
	}
	if !reflect.DeepEqual(list.Defaults["text/plain"], []string{"helix.desktop"}) {
		t.Errorf("Defaults[text/plain] = %v", list.Defaults["text/plain"])
	}
	if !reflect.DeepEqual(list.Added["text/plain"], []string{"code.desktop"}) {
		t.Errorf("Added[text/plain] = %v", list.Added["text/plain"])
	}
	// Unrecognized sections are ignored.
	if len(list.Defaults) != 2 || len(list.Added) != 1 {
		t.Errorf("unexpected sizes: defaults=%d added=%d", len(list.Defaults), len(list.Added))
	}
}

func TestParseListDedupsWithinKey(t *testing.T) {
	input := "[Default Applications]\ntext/plain=a.desktop;a.desktop;b.desktop;\n"
	list := ParseList([]byte(input))
	want := []string{"a.desktop", "b.desktop"}
	if !reflect.DeepEqual(list.Defaults["text/plain"], want) {
		t.Errorf("got %v, want %v", list.Defaults["text/plain"], want)
	}
}

func TestHandlersDefaultsBeforeAdded(t *testing.T) {
	list := NewList()
	list.Defaults["text/plain"] = []string{"helix.desktop"}
	list.Added["text/plain"] = []string{"code.desktop", "helix.desktop"}

	want := []string{"helix.desktop", "code.desktop"}
	if got := list.Handlers("text/plain"); !reflect.DeepEqual(got, want) {
		t.Errorf("Handlers = %v, want %v", got, want)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	list := NewList()
	list.Defaults["application/pdf"] = []string{"evince.desktop"}
	list.Defaults["text/plain"] = []string{"helix.desktop", "vim.desktop"}
	list.Added["text/plain"] = []string{"code.desktop"}

	again := ParseList(list.Format())
	if !reflect.DeepEqual(again.Defaults, list.Defaults) {
		t.Errorf("Defaults changed: %v vs %v", again.Defaults, list.Defaults)
	}
	if !reflect.DeepEqual(again.Added, list.Added) {
		t.Errorf("Added changed: %v vs %v", again.Added, list.Added)
	}
}

func TestFormatDropsEmptyKeys(t *testing.T) {
	list := NewList()
	list.Defaults["text/plain"] = nil
	out := string(list.Format())
	if out != "" {
		t.Errorf("Format of effectively empty list = %q, want empty", out)
	}
}
