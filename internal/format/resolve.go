// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat means no format lists the extension.
	ErrUnknownFormat = errors.New("no file format matched")
	// ErrAmbiguousFormat means more than one format lists the extension.
	ErrAmbiguousFormat = errors.New("multiple file formats matched")
	// ErrNoTransformation means the source format has no command for the target.
	ErrNoTransformation = errors.New("no transformation matched")
	// ErrAmbiguousTransformation means the source format has several commands
	// for the target.
	ErrAmbiguousTransformation = errors.New("multiple transformations matched")
)

// resolveUnique returns the single candidate satisfying match. Zero matches
// yield errNone, two or more yield errMany.
func resolveUnique[T any](candidates []T, match func(T) bool, errNone, errMany error) (T, error) {
	var (
		found T
		n     int
	)
	for _, c := range candidates {
		if !match(c) {
			continue
		}
		n++
		if n > 1 {
			var zero T
			return zero, errMany
		}
		found = c
	}
	if n == 0 {
		var zero T
		return zero, errNone
	}
	return found, nil
}

// FormatFor returns the one format whose members include ext.
func (c *Catalog) FormatFor(ext string) (Format, error) {
	f, err := resolveUnique(c.formats, func(f Format) bool {
		return f.HasMember(ext)
	}, ErrUnknownFormat, ErrAmbiguousFormat)
	if err != nil {
		return Format{}, fmt.Errorf("%w for %q", err, ext)
	}
	return f, nil
}

// CommandFor returns the command template src uses to produce targetExt. A
// transformation applies when its target format exists and lists targetExt.
func (c *Catalog) CommandFor(src Format, targetExt string) (Template, error) {
	t, err := resolveUnique(src.Transformations, func(t Transformation) bool {
		target, ok := c.Lookup(t.Target)
		return ok && target.HasMember(targetExt)
	}, ErrNoTransformation, ErrAmbiguousTransformation)
	if err != nil {
		return Template{}, fmt.Errorf("%w from format %q to %q", err, src.Name, targetExt)
	}
	return t.Command, nil
}
