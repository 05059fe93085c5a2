package assoc

import (
	"testing"

	"openwith/internal/desktop"
)

func appEntry(id, name string, mimes ...string) *desktop.Entry {
	return &desktop.Entry{
		ID:        id,
		Type:      desktop.TypeApplication,
		Name:      name,
		Exec:      name + " %f",
		MimeTypes: mimes,
	}
}

func listWithDefaults(pairs map[string][]string) *List {
	list := NewList()
	for k, v := range pairs {
		list.Defaults[k] = v
	}
	return list
}

func TestResolveAssociatedBeforeAvailable(t *testing.T) {
	entries := []*desktop.Entry{
		appEntry("evince.desktop", "evince", "application/pdf"),
		appEntry("firefox.desktop", "firefox", "application/pdf"),
	}
	tiers := []*List{listWithDefaults(map[string][]string{
		"application/pdf": {"firefox.desktop"},
	})}

	got := NewResolver(entries, tiers).Resolve("application/pdf", false)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Entry.ID != "firefox.desktop" || !got[0].IsDefault || !got[0].XdgAssociated {
		t.Errorf("first candidate = %+v, want firefox as associated default", got[0])
	}
	if got[1].Entry.ID != "evince.desktop" || got[1].IsDefault || got[1].XdgAssociated {
		t.Errorf("second candidate = %+v, want evince as plain available", got[1])
	}
	if got[1].XdgPriority != -1 {
		t.Errorf("available candidate priority = %d, want -1", got[1].XdgPriority)
	}
}

func TestResolveSetMakesDefault(t *testing.T) {
	entries := []*desktop.Entry{
		appEntry("a.desktop", "a", "text/plain"),
		appEntry("b.desktop", "b", "text/plain"),
	}
	tiers := []*List{listWithDefaults(map[string][]string{
		"text/plain": {"b.desktop"},
	})}

	got := NewResolver(entries, tiers).Resolve("text/plain", false)
	if len(got) == 0 || got[0].Entry.ID != "b.desktop" || !got[0].IsDefault {
		t.Fatalf("set handler not first/default: %+v", got)
	}
}

func TestResolveExcludesNoDisplayEvenWhenAssociated(t *testing.T) {
	hidden := appEntry("secret.desktop", "secret", "text/plain")
	hidden.NoDisplay = true
	visible := appEntry("editor.desktop", "editor", "text/plain")

	tiers := []*List{listWithDefaults(map[string][]string{
		"text/plain": {"secret.desktop", "editor.desktop"},
	})}

	got := NewResolver([]*desktop.Entry{hidden, visible}, tiers).Resolve("text/plain", false)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Entry.ID != "editor.desktop" || !got[0].IsDefault {
		t.Errorf("default fell to %+v, want editor.desktop", got[0])
	}
}

func TestResolveSkipsStaleIds(t *testing.T) {
	entries := []*desktop.Entry{appEntry("living.desktop", "living", "text/plain")}
	tiers := []*List{listWithDefaults(map[string][]string{
		"text/plain": {"uninstalled.desktop", "living.desktop"},
	})}

	got := NewResolver(entries, tiers).Resolve("text/plain", false)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Entry.ID != "living.desktop" || !got[0].IsDefault {
		t.Errorf("stale id not skipped: %+v", got[0])
	}
}

func TestResolveTierOrderAndDedup(t *testing.T) {
	entries := []*desktop.Entry{
		appEntry("user.desktop", "user", "text/plain"),
		appEntry("system.desktop", "system", "text/plain"),
	}
	userTier := listWithDefaults(map[string][]string{
		"text/plain": {"user.desktop"},
	})
	systemTier := listWithDefaults(map[string][]string{
		"text/plain": {"system.desktop", "user.desktop"},
	})

	got := NewResolver(entries, []*List{userTier, systemTier}).Resolve("text/plain", false)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 (no duplicates)", len(got))
	}
	if got[0].Entry.ID != "user.desktop" || got[0].XdgPriority != 0 {
		t.Errorf("first = %+v, want user tier entry", got[0])
	}
	if got[1].Entry.ID != "system.desktop" || got[1].XdgPriority != 1 {
		t.Errorf("second = %+v, want system tier entry", got[1])
	}
}

func TestResolveRemoveLeavesAvailable(t *testing.T) {
	entries := []*desktop.Entry{
		appEntry("evince.desktop", "evince", "application/pdf"),
		appEntry("firefox.desktop", "firefox", "application/pdf"),
	}

	// After removing the association, both remain available but nothing
	// is marked default or associated.
	got := NewResolver(entries, []*List{NewList()}).Resolve("application/pdf", false)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	for _, c := range got {
		if c.IsDefault || c.XdgAssociated {
			t.Errorf("candidate %s still marked default/associated", c.Entry.ID)
		}
	}
}

func TestResolveWildcardKey(t *testing.T) {
	entries := []*desktop.Entry{appEntry("viewer.desktop", "viewer")}
	tiers := []*List{listWithDefaults(map[string][]string{
		"image/*": {"viewer.desktop"},
	})}

	got := NewResolver(entries, tiers).Resolve("image/png", false)
	if len(got) != 1 || !got[0].IsDefault {
		t.Fatalf("wildcard key did not match: %+v", got)
	}
}

func TestResolveIncludeActions(t *testing.T) {
	entry := appEntry("editor.desktop", "editor", "text/plain")
	entry.Actions = []desktop.Action{
		{ID: "new-window", Name: "New Window", Exec: "editor --new %f"},
	}
	tiers := []*List{listWithDefaults(map[string][]string{
		"text/plain": {"editor.desktop"},
	})}

	got := NewResolver([]*desktop.Entry{entry}, tiers).Resolve("text/plain", true)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want entry plus action", len(got))
	}
	if got[1].Action == nil || got[1].Action.ID != "new-window" {
		t.Fatalf("second candidate = %+v, want the action", got[1])
	}
	if got[1].Name() != "editor - New Window" {
		t.Errorf("action label = %q", got[1].Name())
	}
	if got[1].ExecLine() != "editor --new %f" {
		t.Errorf("action exec = %q", got[1].ExecLine())
	}
	if got[1].IsDefault {
		t.Error("action inherited the default mark")
	}
}

func TestResolveUnknownTypeIsEmpty(t *testing.T) {
	entries := []*desktop.Entry{appEntry("editor.desktop", "editor", "text/plain")}
	got := NewResolver(entries, nil).Resolve("application/x-nothing", false)
	if len(got) != 0 {
		t.Errorf("got %d candidates for unknown type, want 0", len(got))
	}
}

func TestDefaultFor(t *testing.T) {
	entries := []*desktop.Entry{appEntry("editor.desktop", "editor", "text/plain")}
	tiers := []*List{listWithDefaults(map[string][]string{
		"text/plain": {"editor.desktop"},
	})}
	r := NewResolver(entries, tiers)

	if got := r.DefaultFor("text/plain"); got == nil || got.ID != "editor.desktop" {
		t.Errorf("DefaultFor = %+v", got)
	}
	if got := r.DefaultFor("image/png"); got != nil {
		t.Errorf("DefaultFor unassociated type = %+v, want nil", got)
	}
}
