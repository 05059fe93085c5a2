package desktop

// Entry represents a single parsed desktop launcher definition.
type Entry struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	Name           string            `json:"name"`
	GenericName    string            `json:"generic_name,omitempty"`
	Exec           string            `json:"exec,omitempty"`
	TryExec        string            `json:"try_exec,omitempty"`
	Icon           string            `json:"icon,omitempty"`
	Comment        string            `json:"comment,omitempty"`
	Path           string            `json:"path,omitempty"`
	URL            string            `json:"url,omitempty"`
	MimeTypes      []string          `json:"mime_types,omitempty"`
	Categories     []string          `json:"categories,omitempty"`
	Keywords       []string          `json:"keywords,omitempty"`
	Terminal       bool              `json:"terminal,omitempty"`
	NoDisplay      bool              `json:"no_display,omitempty"`
	Hidden         bool              `json:"hidden,omitempty"`
	Actions        []Action          `json:"actions,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
	SourcePath     string            `json:"source_path"`
	SourcePriority int               `json:"source_priority"`
}

// Action is a named sub-command of an entry ([Desktop Action ...] section).
type Action struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Exec string `json:"exec"`
	Icon string `json:"icon,omitempty"`
}

// TypeApplication is the only entry type that can become a launch candidate.
// Link and Directory entries parse fine but are never offered as handlers.
const (
	TypeApplication = "Application"
	TypeLink        = "Link"
	TypeDirectory   = "Directory"
)

// IsApplication reports whether the entry can act as a MIME handler.
func (e *Entry) IsApplication() bool {
	return e.Type == TypeApplication && e.Exec != ""
}

// HasMimeType reports whether the entry declares support for mimeType.
func (e *Entry) HasMimeType(mimeType string) bool {
	for _, m := range e.MimeTypes {
		if m == mimeType {
			return true
		}
	}
	return false
}

// FindAction returns the action with the given id, if declared.
func (e *Entry) FindAction(id string) (Action, bool) {
	for _, a := range e.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
