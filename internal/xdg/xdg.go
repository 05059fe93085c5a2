// Package xdg resolves the directories the XDG base-directory and
// mime-apps specs say to look in. Paths are computed per call from the
// environment so tests can redirect them with t.Setenv.
package xdg

import (
	"os"
	"path/filepath"
	"strings"
)

// DataHome returns $XDG_DATA_HOME, defaulting to ~/.local/share.
func DataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return filepath.Join(home, ".local", "share")
}

// ConfigHome returns $XDG_CONFIG_HOME, defaulting to ~/.config.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return filepath.Join(home, ".config")
}

// CacheHome returns $XDG_CACHE_HOME, defaulting to ~/.cache.
func CacheHome() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return filepath.Join(home, ".cache")
}

// DataDirs returns $XDG_DATA_DIRS split on ':', with the spec default.
func DataDirs() []string {
	return splitPathList(os.Getenv("XDG_DATA_DIRS"), []string{"/usr/local/share", "/usr/share"})
}

// ConfigDirs returns $XDG_CONFIG_DIRS split on ':', with the spec default.
func ConfigDirs() []string {
	return splitPathList(os.Getenv("XDG_CONFIG_DIRS"), []string{"/etc/xdg"})
}

// SearchRoots returns the desktop-entry directories to scan, highest
// precedence first: user data dir, system data dirs, then flatpak exports.
// Only directories that exist are returned; a missing root is not an error.
func SearchRoots() []string {
	var roots []string
	seen := make(map[string]bool)

	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			roots = append(roots, dir)
		}
	}

	add(filepath.Join(DataHome(), "applications"))
	for _, dir := range DataDirs() {
		add(filepath.Join(dir, "applications"))
	}
	add(filepath.Join(DataHome(), "flatpak", "exports", "share", "applications"))
	add("/var/lib/flatpak/exports/share/applications")

	return roots
}

// MimeappsPaths returns the association files to read, highest precedence
// first. Per-desktop variants (<desktop>-mimeapps.list) in each directory
// come before the plain file, mirroring the mime-apps spec lookup order.
// Files that do not exist are skipped.
func MimeappsPaths() []string {
	var files []string
	desktops := CurrentDesktops()

	addDir := func(dir string) {
		for _, d := range desktops {
			addFile(&files, filepath.Join(dir, d+"-mimeapps.list"))
		}
		addFile(&files, filepath.Join(dir, "mimeapps.list"))
	}

	addDir(ConfigHome())
	for _, dir := range ConfigDirs() {
		addDir(dir)
	}
	addDir(filepath.Join(DataHome(), "applications"))
	for _, dir := range DataDirs() {
		addDir(filepath.Join(dir, "applications"))
	}

	return files
}

// UserMimeappsPath is the only association file this tool writes.
func UserMimeappsPath() string {
	return filepath.Join(ConfigHome(), "mimeapps.list")
}

// CurrentDesktops returns $XDG_CURRENT_DESKTOP entries, lowercased.
func CurrentDesktops() []string {
	var names []string
	for _, part := range strings.Split(os.Getenv("XDG_CURRENT_DESKTOP"), ":") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, strings.ToLower(part))
		}
	}
	return names
}

func addFile(files *[]string, path string) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		*files = append(*files, path)
	}
}

func splitPathList(value string, fallback []string) []string {
	if value == "" {
		return fallback
	}
	var dirs []string
	for _, part := range strings.Split(value, ":") {
		if part != "" {
			dirs = append(dirs, part)
		}
	}
	if len(dirs) == 0 {
		return fallback
	}
	return dirs
}
