// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format holds the validated format catalog and the lookups that
// pick a format for an extension and a converter command for a target.
//
// Every lookup must resolve to exactly one match. Picking the first of
// several candidates would make the spawned command depend on config order.
package format

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pdiddy/eutils/pkg/types"
)

// Transformation is a directed edge from one format to a target format,
// referenced by name, with the command that performs it.
type Transformation struct {
	Target  string
	Command Template
}

// Format is a named group of interchangeable extensions.
type Format struct {
	Name            string
	Members         []string
	Transformations []Transformation
}

// HasMember reports whether ext belongs to the format.
func (f Format) HasMember(ext string) bool {
	return slices.Contains(f.Members, ext)
}

// Catalog is the immutable, validated set of formats for one run. It is safe
// for concurrent reads.
type Catalog struct {
	formats []Format
	byName  map[string]int
}

// NewCatalog validates the raw preference entries and builds a catalog.
// Target format names in transformations are not checked here; they are
// resolved by name on each lookup.
func NewCatalog(entries []types.FileFormat) (*Catalog, error) {
	c := &Catalog{
		formats: make([]Format, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		f, err := buildFormat(e)
		if err != nil {
			return nil, fmt.Errorf("file_formats[%d]: %w", i, err)
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, fmt.Errorf("file_formats[%d]: duplicate format name %q", i, f.Name)
		}
		c.byName[f.Name] = len(c.formats)
		c.formats = append(c.formats, f)
	}

	return c, nil
}

func buildFormat(e types.FileFormat) (Format, error) {
	if strings.TrimSpace(e.Name) == "" {
		return Format{}, fmt.Errorf("format name is empty")
	}
	if len(e.Members) == 0 {
		return Format{}, fmt.Errorf("format %q has no members", e.Name)
	}
	for _, m := range e.Members {
		if m != "" && !strings.HasPrefix(m, ".") {
			return Format{}, fmt.Errorf("format %q: member %q must start with \".\"", e.Name, m)
		}
	}

	f := Format{
		Name:            e.Name,
		Members:         slices.Clone(e.Members),
		Transformations: make([]Transformation, 0, len(e.Transformations)),
	}
	for j, pair := range e.Transformations {
		if len(pair) != 2 {
			return Format{}, fmt.Errorf("format %q: transformations[%d] must be [target, command], got %d elements", e.Name, j, len(pair))
		}
		if pair[0] == "" {
			return Format{}, fmt.Errorf("format %q: transformations[%d] has an empty target", e.Name, j)
		}
		tmpl, err := ParseTemplate(pair[1])
		if err != nil {
			return Format{}, fmt.Errorf("format %q: transformations[%d]: %w", e.Name, j, err)
		}
		f.Transformations = append(f.Transformations, Transformation{Target: pair[0], Command: tmpl})
	}
	return f, nil
}

// Formats returns the formats in configuration order.
func (c *Catalog) Formats() []Format {
	return slices.Clone(c.formats)
}

// Lookup returns the format with the given name.
func (c *Catalog) Lookup(name string) (Format, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Format{}, false
	}
	return c.formats[i], true
}
