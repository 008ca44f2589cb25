// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Plan describes what happens to one source file: where it goes and whether
// an external converter has to produce the output.
type Plan struct {
	// Source is the source path exactly as given on the command line.
	Source string `json:"source" yaml:"source"`

	// Dest is the computed output path.
	Dest string `json:"dest" yaml:"dest"`

	// SourceExt is the extension of Source, with its leading dot.
	SourceExt string `json:"source_ext" yaml:"source_ext"`

	// TargetExt is the extension the output should have.
	TargetExt string `json:"target_ext" yaml:"target_ext"`

	// NeedsConversion is true when SourceExt and TargetExt differ.
	NeedsConversion bool `json:"needs_conversion" yaml:"needs_conversion"`
}

// Action names what the executor did (or would do) for a plan.
type Action string

const (
	ActionCopy      Action = "copy"
	ActionMove      Action = "move"
	ActionConvert   Action = "convert"
	ActionUnchanged Action = "unchanged"
)
