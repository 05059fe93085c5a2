package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"openwith/internal/assoc"
	"openwith/internal/config"
	"openwith/internal/launcher"
	"openwith/internal/picker"
	"openwith/internal/sniff"
	"openwith/internal/template"
)

// candidateJSON is the machine-readable form printed by --json.
type candidateJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Exec          string `json:"exec"`
	DesktopFile   string `json:"desktop_file"`
	Comment       string `json:"comment,omitempty"`
	Icon          string `json:"icon,omitempty"`
	IsDefault     bool   `json:"is_default"`
	XdgAssociated bool   `json:"is_xdg_associated"`
	XdgPriority   int    `json:"xdg_priority"`
	ActionID      string `json:"action_id,omitempty"`
}

func runOpen(raw string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target, err := sniff.ResolveTarget(raw)
	if err != nil {
		return err
	}
	mimeType, err := target.MimeType()
	if err != nil {
		return err
	}

	resolver, _, err := buildResolver(flagRefresh)
	if err != nil {
		return err
	}
	candidates := resolver.Resolve(mimeType, cfg.IncludeActions)

	if flagJSON {
		return printJSON(candidates)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no application found for %s", mimeType)
	}

	idx := 0
	if !(cfg.AutoOpenSingle && len(candidates) == 1) {
		idx, err = picker.Run(candidates, fmt.Sprintf("Open %s (%s)", filepath.Base(target.Arg()), mimeType))
		if err != nil {
			if errors.Is(err, picker.ErrCancelled) {
				return nil
			}
			return err
		}
	}

	return launch(candidates[idx], target, resolver, cfg)
}

func launch(c assoc.Candidate, target sniff.Target, resolver *assoc.Resolver, cfg *config.Config) error {
	argv, err := template.Expand(c.ExecLine(), template.Fields{
		Target:     target.Arg(),
		Name:       c.Name(),
		Icon:       c.Entry.Icon,
		SourcePath: c.Entry.SourcePath,
	})
	if err != nil {
		return err
	}

	if c.Entry.Terminal {
		wrap, err := terminalLauncher(resolver, cfg)
		if err != nil {
			return err
		}
		argv = append(wrap, argv...)
	}

	workdir := c.Entry.Path
	if workdir == "" {
		if target.IsURI() {
			workdir, _ = os.UserHomeDir()
		} else {
			workdir = filepath.Dir(target.Path)
		}
	}
	return launcher.Spawn(argv, workdir)
}

// terminalLauncher returns the argv prefix that runs a command inside a
// terminal emulator: the configured one if set, else the emulator
// associated with x-scheme-handler/terminal.
func terminalLauncher(resolver *assoc.Resolver, cfg *config.Config) ([]string, error) {
	if cfg.Terminal != "" {
		return append([]string{cfg.Terminal}, cfg.TermExecArgs...), nil
	}

	entry := resolver.DefaultFor("x-scheme-handler/terminal")
	if entry == nil {
		if terms := resolver.Resolve("x-scheme-handler/terminal", false); len(terms) > 0 {
			entry = terms[0].Entry
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("no terminal emulator found; set terminal in the config or associate one with x-scheme-handler/terminal")
	}

	argv, err := template.Expand(entry.Exec, template.Fields{})
	if err != nil {
		return nil, err
	}
	return append(argv, cfg.TermExecArgs...), nil
}

func printJSON(candidates []assoc.Candidate) error {
	out := make([]candidateJSON, 0, len(candidates))
	for _, c := range candidates {
		cj := candidateJSON{
			ID:            c.Entry.ID,
			Name:          c.Name(),
			Exec:          c.ExecLine(),
			DesktopFile:   c.Entry.SourcePath,
			Comment:       c.Entry.Comment,
			Icon:          c.Entry.Icon,
			IsDefault:     c.IsDefault,
			XdgAssociated: c.XdgAssociated,
			XdgPriority:   c.XdgPriority,
		}
		if c.Action != nil {
			cj.ActionID = c.Action.ID
			cj.Icon = c.Action.Icon
		}
		out = append(out, cj)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
