// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"fmt"
	"strings"
)

const (
	// SourcePlaceholder is replaced by the source path.
	SourcePlaceholder = "{s}"
	// DestPlaceholder is replaced by the destination path.
	DestPlaceholder = "{e}"
)

// Template is a converter command line with {s} and {e} placeholders. It is
// split on whitespace; there is no quoting, and a placeholder only counts
// when it makes up a whole token.
type Template struct {
	raw    string
	tokens []string
}

// ParseTemplate tokenizes s. The first token names the executable, so it
// must exist and must not be a placeholder.
func ParseTemplate(s string) (Template, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return Template{}, fmt.Errorf("empty command template")
	}
	if tokens[0] == SourcePlaceholder || tokens[0] == DestPlaceholder {
		return Template{}, fmt.Errorf("command template %q starts with a placeholder instead of an executable", s)
	}
	return Template{raw: s, tokens: tokens}, nil
}

// Executable returns the program the template runs.
func (t Template) Executable() string {
	if len(t.tokens) == 0 {
		return ""
	}
	return t.tokens[0]
}

// Expand fills the placeholders and returns the executable and its
// arguments, ready for exec.Command.
func (t Template) Expand(source, dest string) (string, []string) {
	if len(t.tokens) == 0 {
		return "", nil
	}
	args := make([]string, 0, len(t.tokens)-1)
	for _, tok := range t.tokens[1:] {
		switch tok {
		case SourcePlaceholder:
			args = append(args, source)
		case DestPlaceholder:
			args = append(args, dest)
		default:
			args = append(args, tok)
		}
	}
	return t.tokens[0], args
}

// String returns the template as written in the preferences file.
func (t Template) String() string { return t.raw }
