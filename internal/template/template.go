// Package template expands desktop-entry Exec command templates into argv
// form, substituting the field codes the desktop conventions define.
package template

import (
	"errors"
	"strings"
)

// ErrEmptyCommand is returned when expansion leaves nothing to run.
var ErrEmptyCommand = errors.New("empty exec command")

// Fields are the values substituted for the Exec field codes.
// %f %F %u %U take Target, %c takes Name, %i takes Icon (as a
// "--icon <icon>" pair), %k takes SourcePath. An empty value drops the
// code instead of producing an empty argument.
type Fields struct {
	Target     string
	Name       string
	Icon       string
	SourcePath string
}

// Expand turns an Exec line into argv. Field codes are replaced in place;
// when the line contains no target code at all, the target is appended as
// the final argument so plain "editor" style lines still receive the file.
// %% escapes a literal percent; unrecognized codes are dropped.
func Expand(execLine string, fields Fields) ([]string, error) {
	var argv []string
	targetPlaced := false

	for _, token := range splitCommand(execLine) {
		expanded, placed, keep := expandToken(token, fields)
		if placed {
			targetPlaced = true
		}
		if keep {
			argv = append(argv, expanded...)
		}
	}

	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	if !targetPlaced && fields.Target != "" {
		argv = append(argv, fields.Target)
	}
	return argv, nil
}

// expandToken substitutes codes inside one argument. It reports whether a
// target code was seen and whether the argument survives (a token that was
// only a now-empty code disappears rather than becoming "").
func expandToken(token string, fields Fields) (args []string, targetPlaced, keep bool) {
	// %i expands to two arguments and only makes sense standalone.
	if token == "%i" {
		if fields.Icon == "" {
			return nil, false, false
		}
		return []string{"--icon", fields.Icon}, false, true
	}

	var b strings.Builder
	hadCode := false
	for i := 0; i < len(token); i++ {
		if token[i] != '%' || i+1 >= len(token) {
			b.WriteByte(token[i])
			continue
		}
		i++
		hadCode = true
		switch token[i] {
		case '%':
			b.WriteByte('%')
			hadCode = false
		case 'f', 'F', 'u', 'U':
			b.WriteString(fields.Target)
			targetPlaced = true
		case 'c':
			b.WriteString(fields.Name)
		case 'k':
			b.WriteString(fields.SourcePath)
		default:
			// Deprecated or unknown code, dropped.
		}
	}

	out := b.String()
	if out == "" && hadCode {
		return nil, targetPlaced, false
	}
	return []string{out}, targetPlaced, true
}

// splitCommand splits an Exec line on whitespace, honoring double quotes
// so quoted paths with spaces stay one argument.
func splitCommand(line string) []string {
	var tokens []string
	var b strings.Builder
	inQuote := false

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case c == '\\' && inQuote && i+1 < len(line):
			i++
			b.WriteByte(line[i])
		case (c == ' ' || c == '\t') && !inQuote:
			flush()
		default:
			b.WriteByte(c)
		}
	}
	flush()
	return tokens
}
