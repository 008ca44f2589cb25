// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pathparts splits command-line path arguments into directory, stem
// and extension the way ecp and emv interpret them.
//
// The split is purely lexical: nothing is looked up on disk. A final
// component whose only dot is the leading one (".png") is read as an
// extension with no name, so "out/.webp" means "webp files in out/".
package pathparts

import (
	"os"
	"strings"

	"github.com/pdiddy/eutils/pkg/types"
)

// Split decomposes path into its parent directory, stem and extension.
//
//	Split("foo/bar.txt") == {Dir: "foo", Stem: "bar", Ext: ".txt"}
//	Split(".log.txt")    == {Dir: "",    Stem: ".log", Ext: ".txt"}
//	Split(".txt")        == {Dir: "",    Stem: "",    Ext: ".txt"}
//	Split("a/b/")        == {Dir: "a",   Stem: "b",   Ext: ""}
//
// "." and "..", and paths made only of separators, come back whole as Dir.
// A path ending in a "." or ".." component ("a/..") has no name; Dir is the
// component before it.
func Split(path string) types.PathParts {
	if path == "." || path == ".." {
		return types.PathParts{Dir: path}
	}

	trimmed := strings.TrimRight(path, separators)
	if trimmed == "" {
		return types.PathParts{Dir: path}
	}

	i := strings.LastIndexAny(trimmed, separators)
	name := trimmed[i+1:]

	var dir string
	if i >= 0 {
		dir = parentDir(trimmed[:i+1])
	}
	if name == "." || name == ".." {
		return types.PathParts{Dir: dir}
	}

	// A leading dot with nothing before it yields an empty stem, which is
	// exactly the dotfile rule: ".png" is an extension, not a name.
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return types.PathParts{Dir: dir, Stem: name}
	}
	return types.PathParts{Dir: dir, Stem: name[:dot], Ext: name[dot:]}
}

// Join rebuilds a path from its parts. Join(Split(p)) names the same file as
// p for every p that has a final name component.
func Join(p types.PathParts) string {
	name := p.Stem + p.Ext
	if p.Dir == "" {
		return name
	}
	if name == "" {
		return p.Dir
	}
	if strings.ContainsAny(p.Dir[len(p.Dir)-1:], separators) {
		return p.Dir + name
	}
	return p.Dir + string(os.PathSeparator) + name
}

// parentDir strips the trailing separators from a directory prefix, keeping
// a bare root ("/") intact.
func parentDir(prefix string) string {
	dir := strings.TrimRight(prefix, separators)
	if dir == "" {
		return prefix[:1]
	}
	return dir
}
