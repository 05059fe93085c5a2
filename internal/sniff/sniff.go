// Package sniff determines the MIME type of a launch target. Files are
// content-sniffed with a fallback to the extension table; URIs map to the
// x-scheme-handler pseudo type for their scheme.
package sniff

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnknownMimeType is returned when an extension or MIME string cannot
// be resolved to a concrete type.
var ErrUnknownMimeType = errors.New("unknown MIME type")

// ErrUnreadableTarget is returned when the target path cannot be accessed.
var ErrUnreadableTarget = errors.New("unreadable target")

const (
	directoryType = "inode/directory"
	fallbackType  = "application/octet-stream"
	schemePrefix  = "x-scheme-handler/"
)

// Target is a classified launch argument: a local file path or a URI.
type Target struct {
	Path string
	URI  *url.URL
}

// IsURI reports whether the target is a non-file URI.
func (t Target) IsURI() bool {
	return t.URI != nil
}

// Arg returns the string to substitute into the handler's command line.
func (t Target) Arg() string {
	if t.URI != nil {
		return t.URI.String()
	}
	return t.Path
}

// ResolveTarget classifies a raw argument. file:// URIs become paths;
// other URIs are kept as URIs; everything else must be an existing file
// or directory, resolved to an absolute path.
func ResolveTarget(raw string) (Target, error) {
	if u, err := url.Parse(raw); err == nil && len(u.Scheme) > 1 {
		if u.Scheme == "file" {
			return resolvePath(u.Path)
		}
		return Target{URI: u}, nil
	}
	return resolvePath(raw)
}

func resolvePath(raw string) (Target, error) {
	abs, err := filepath.Abs(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %s", ErrUnreadableTarget, raw)
	}
	if _, err := os.Stat(abs); err != nil {
		return Target{}, fmt.Errorf("%w: %s", ErrUnreadableTarget, raw)
	}
	return Target{Path: abs}, nil
}

// MimeType returns the MIME type to resolve handlers for. URIs yield
// x-scheme-handler/<scheme>; directories yield inode/directory; files are
// content-sniffed, falling back to the extension table and finally to
// application/octet-stream.
func (t Target) MimeType() (string, error) {
	if t.URI != nil {
		return schemePrefix + strings.ToLower(t.URI.Scheme), nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnreadableTarget, t.Path)
	}
	if info.IsDir() {
		return directoryType, nil
	}

	if detected, err := mimetype.DetectFile(t.Path); err == nil {
		mt := detected.String()
		// The sniffer reports octet-stream for content it does not
		// recognize; a known extension is more useful then.
		if mt != fallbackType {
			return stripParams(mt), nil
		}
	}
	if byExt := mime.TypeByExtension(filepath.Ext(t.Path)); byExt != "" {
		return stripParams(byExt), nil
	}
	return fallbackType, nil
}

// NormalizeMime canonicalizes user-supplied MIME arguments for the
// mutation commands. Accepted forms: a full type/subtype (lowercased), a
// wildcard pattern (stored verbatim), or a file extension with or without
// the leading dot, translated through the extension table. An extension
// that maps to nothing is a user-visible error.
func NormalizeMime(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnknownMimeType)
	}

	if strings.ContainsAny(trimmed, "*?") {
		return strings.ToLower(trimmed), nil
	}

	if idx := strings.Index(trimmed, "/"); idx >= 0 {
		mainType := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
		subType := strings.ToLower(strings.TrimSpace(trimmed[idx+1:]))
		if mainType == "" || subType == "" {
			return "", fmt.Errorf("%w: %s", ErrUnknownMimeType, input)
		}
		return mainType + "/" + subType, nil
	}

	ext := "." + strings.TrimPrefix(trimmed, ".")
	if byExt := mime.TypeByExtension(strings.ToLower(ext)); byExt != "" {
		return stripParams(byExt), nil
	}
	return "", fmt.Errorf("%w: no type known for extension %s", ErrUnknownMimeType, input)
}

// stripParams drops any "; charset=..." style parameters.
func stripParams(mt string) string {
	if idx := strings.Index(mt, ";"); idx >= 0 {
		mt = mt[:idx]
	}
	return strings.TrimSpace(mt)
}
