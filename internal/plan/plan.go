// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan computes where each source file goes and whether it has to be
// converted, following cp/mv destination rules:
//
//   - an existing directory receives the files unchanged (plain copy/move);
//   - a destination without a name ("out/.webp", ".jpg") keeps each source's
//     stem and takes the destination's extension, if any;
//   - a named destination ("out/cover.jpg") is used as the output path.
package plan

import (
	"os"

	"github.com/pdiddy/eutils/internal/pathparts"
	"github.com/pdiddy/eutils/pkg/types"
)

// Planner builds conversion plans. IsDir reports whether a path names an
// existing directory; it defaults to an os.Stat probe.
type Planner struct {
	IsDir func(path string) bool
}

// New returns a Planner that probes the real filesystem.
func New() *Planner {
	return &Planner{IsDir: isDir}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Plan returns one plan per source, in order. The destination is split and
// probed once for the whole list.
func (p *Planner) Plan(sources []string, dest string) []types.Plan {
	end := pathparts.Split(dest)
	destIsDir := p.isDir(dest)

	plans := make([]types.Plan, 0, len(sources))
	for _, src := range sources {
		plans = append(plans, planOne(src, dest, end, destIsDir))
	}
	return plans
}

func (p *Planner) isDir(path string) bool {
	if p.IsDir == nil {
		return isDir(path)
	}
	return p.IsDir(path)
}

func planOne(src, dest string, end types.PathParts, destIsDir bool) types.Plan {
	start := pathparts.Split(src)

	var out types.PathParts
	switch {
	case destIsDir:
		out = types.PathParts{Dir: dest, Stem: start.Stem, Ext: start.Ext}
	case end.Stem == "":
		ext := end.Ext
		if ext == "" {
			ext = start.Ext
		}
		out = types.PathParts{Dir: end.Dir, Stem: start.Stem, Ext: ext}
	default:
		out = end
	}

	return types.Plan{
		Source:          src,
		Dest:            pathparts.Join(out),
		SourceExt:       start.Ext,
		TargetExt:       out.Ext,
		NeedsConversion: start.Ext != out.Ext,
	}
}
