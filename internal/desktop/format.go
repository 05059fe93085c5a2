package desktop

import (
	"sort"
	"strings"
)

// Format renders an Entry back into desktop-entry text. Parsing the output
// yields the same structured fields, which is what the cache round trip and
// tests rely on; comment lines and key order of the source are not preserved.
func Format(e *Entry) string {
	var b strings.Builder
	b.WriteString("[" + mainSection + "]\n")
	writeKey(&b, "Type", e.Type)
	writeKey(&b, "Name", e.Name)
	writeKey(&b, "GenericName", e.GenericName)
	writeKey(&b, "Exec", e.Exec)
	writeKey(&b, "TryExec", e.TryExec)
	writeKey(&b, "Icon", e.Icon)
	writeKey(&b, "Comment", e.Comment)
	writeKey(&b, "Path", e.Path)
	writeKey(&b, "URL", e.URL)
	writeList(&b, "MimeType", e.MimeTypes)
	writeList(&b, "Categories", e.Categories)
	writeList(&b, "Keywords", e.Keywords)
	writeBool(&b, "Terminal", e.Terminal)
	writeBool(&b, "NoDisplay", e.NoDisplay)
	writeBool(&b, "Hidden", e.Hidden)

	if len(e.Actions) > 0 {
		ids := make([]string, 0, len(e.Actions))
		for _, a := range e.Actions {
			ids = append(ids, a.ID)
		}
		writeList(&b, "Actions", ids)
	}

	// Stable order for preserved unknown keys.
	extraKeys := make([]string, 0, len(e.Extra))
	for k := range e.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		writeKey(&b, k, e.Extra[k])
	}

	for _, a := range e.Actions {
		b.WriteString("\n[" + actionSectionPrefix + a.ID + "]\n")
		writeKey(&b, "Name", a.Name)
		writeKey(&b, "Exec", a.Exec)
		writeKey(&b, "Icon", a.Icon)
	}

	return b.String()
}

func writeKey(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(value)
	b.WriteString("\n")
}

func writeList(b *strings.Builder, key string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(strings.Join(items, ";"))
	b.WriteString(";\n")
}

func writeBool(b *strings.Builder, key string, value bool) {
	if value {
		b.WriteString(key + "=true\n")
	}
}
