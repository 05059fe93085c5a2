package desktop

import (
	"fmt"
	"strings"
)

const (
	mainSection         = "Desktop Entry"
	actionSectionPrefix = "Desktop Action "
)

// ParseReason classifies why a desktop file was rejected.
type ParseReason int

const (
	// ReasonMalformed means the file has no usable [Desktop Entry] section.
	ReasonMalformed ParseReason = iota
	// ReasonMissingField means a required key (Name, Exec) is absent or empty.
	ReasonMissingField
	// ReasonUnsupportedType means the Type value is not one we understand.
	ReasonUnsupportedType
)

// ParseError is the typed failure returned for unusable desktop files.
type ParseError struct {
	Reason ParseReason
	Detail string
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("missing required field: %s", e.Detail)
	case ReasonUnsupportedType:
		return fmt.Sprintf("unsupported entry type: %s", e.Detail)
	default:
		return fmt.Sprintf("malformed desktop entry: %s", e.Detail)
	}
}

// knownEntryKeys are the [Desktop Entry] keys mapped onto Entry fields.
// Everything else is preserved verbatim in Extra so that unrecognized
// extensions survive a cache round trip instead of breaking the parse.
var knownEntryKeys = map[string]bool{
	"Type": true, "Name": true, "GenericName": true, "Exec": true,
	"TryExec": true, "Icon": true, "Comment": true, "Path": true,
	"URL": true, "MimeType": true, "Categories": true, "Keywords": true,
	"Terminal": true, "NoDisplay": true, "Hidden": true, "Actions": true,
}

// Parse turns one desktop file's text into an Entry. The caller supplies the
// precedence of the search root the file came from; ID and SourcePath are
// filled in by the store, which knows the path.
func Parse(data []byte, sourcePriority int) (*Entry, error) {
	sections := splitSections(string(data))

	main, ok := sections[mainSection]
	if !ok {
		return nil, &ParseError{Reason: ReasonMalformed, Detail: "no [Desktop Entry] section"}
	}

	entryType := strings.TrimSpace(main["Type"])
	if entryType == "" {
		entryType = TypeApplication
	}
	switch entryType {
	case TypeApplication, TypeLink, TypeDirectory:
	default:
		return nil, &ParseError{Reason: ReasonUnsupportedType, Detail: entryType}
	}

	name := strings.TrimSpace(main["Name"])
	if name == "" {
		return nil, &ParseError{Reason: ReasonMissingField, Detail: "Name"}
	}

	exec := strings.TrimSpace(main["Exec"])
	if entryType == TypeApplication && exec == "" {
		return nil, &ParseError{Reason: ReasonMissingField, Detail: "Exec"}
	}

	entry := &Entry{
		Type:           entryType,
		Name:           name,
		GenericName:    strings.TrimSpace(main["GenericName"]),
		Exec:           exec,
		TryExec:        strings.TrimSpace(main["TryExec"]),
		Icon:           strings.TrimSpace(main["Icon"]),
		Comment:        strings.TrimSpace(main["Comment"]),
		Path:           strings.TrimSpace(main["Path"]),
		URL:            strings.TrimSpace(main["URL"]),
		MimeTypes:      splitList(main["MimeType"]),
		Categories:     splitList(main["Categories"]),
		Keywords:       splitList(main["Keywords"]),
		Terminal:       parseBool(main["Terminal"]),
		NoDisplay:      parseBool(main["NoDisplay"]),
		Hidden:         parseBool(main["Hidden"]),
		SourcePriority: sourcePriority,
	}

	for key, value := range main {
		if !knownEntryKeys[key] {
			if entry.Extra == nil {
				entry.Extra = make(map[string]string)
			}
			entry.Extra[key] = value
		}
	}

	// An action listed in Actions= without a matching section, or with an
	// incomplete section, is dropped rather than failing the whole entry.
	for _, id := range splitList(main["Actions"]) {
		fields, ok := sections[actionSectionPrefix+id]
		if !ok {
			continue
		}
		actionName := strings.TrimSpace(fields["Name"])
		actionExec := strings.TrimSpace(fields["Exec"])
		if actionName == "" || actionExec == "" {
			continue
		}
		entry.Actions = append(entry.Actions, Action{
			ID:   id,
			Name: actionName,
			Exec: actionExec,
			Icon: strings.TrimSpace(fields["Icon"]),
		})
	}

	return entry, nil
}

// splitSections parses the sectioned key=value format of desktop entries.
// Later duplicate keys within a section win.
func splitSections(content string) map[string]map[string]string {
	sections := make(map[string]map[string]string)
	var current map[string]string

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := line[1 : len(line)-1]
			if _, seen := sections[name]; !seen {
				sections[name] = make(map[string]string)
			}
			current = sections[name]
			continue
		}
		if current == nil {
			continue
		}
		if eq := strings.Index(line, "="); eq >= 0 {
			key := strings.TrimSpace(line[:eq])
			value := strings.TrimSpace(line[eq+1:])
			if key != "" {
				current[key] = value
			}
		}
	}

	return sections
}

// splitList splits a multi-value field on ';', discarding empty segments.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// parseBool follows the desktop spec: only a literal "true" is true,
// anything else (including absence) is false.
func parseBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
