// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shapes shared between eutils packages: the raw
// preferences document, decomposed paths, conversion plans and journal rows.
package types

// FileFormat is one entry of the "file_formats" list as written in the
// preferences file. It is validated and turned into a format.Format before
// any lookup happens.
type FileFormat struct {
	// Name identifies the format (e.g. "image"). Unique within a file.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Members lists the extensions that belong to the format, each with a
	// leading dot (".png"), or "" for files without an extension.
	Members []string `json:"members" yaml:"members" toml:"members"`

	// Transformations holds [target format name, command template] pairs.
	Transformations [][]string `json:"transformations" yaml:"transformations" toml:"transformations"`
}

// Preferences is the decoded preferences document.
type Preferences struct {
	// WarnDangerous asks for confirmation before a run that removes sources.
	WarnDangerous bool `json:"warn_dangerous" yaml:"warn_dangerous" toml:"warn_dangerous"`

	// Journal records every executed plan in the history database.
	Journal bool `json:"journal,omitempty" yaml:"journal,omitempty" toml:"journal,omitempty"`

	// FileFormats lists the configured formats in file order.
	FileFormats []FileFormat `json:"file_formats" yaml:"file_formats" toml:"file_formats"`
}
