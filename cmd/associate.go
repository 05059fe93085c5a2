package cmd

import (
	"openwith/internal/assoc"
	"openwith/internal/config"
	"openwith/internal/sniff"
	"openwith/internal/xdg"
)

// editUserList loads the user's association file, applies one mutation,
// and persists it atomically.
func editUserList(fn func(*assoc.Editor, *config.Config)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	editor, err := assoc.NewEditor(xdg.UserMimeappsPath())
	if err != nil {
		return err
	}
	fn(editor, cfg)
	return editor.Persist()
}

// normalizeMimeArg accepts a MIME type, a wildcard pattern, or a file
// extension and returns the canonical key to store.
func normalizeMimeArg(arg string) (string, error) {
	return sniff.NormalizeMime(arg)
}
