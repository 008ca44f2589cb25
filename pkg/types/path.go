// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PathParts is a path split into parent directory, stem and extension.
// Ext keeps its leading dot.
type PathParts struct {
	Dir  string
	Stem string
	Ext  string
}
