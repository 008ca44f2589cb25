// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform carries out a single conversion plan: a plain copy or
// move when the format stays the same, otherwise the configured converter
// command run as an external process.
package transform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/eutils/internal/format"
	"github.com/pdiddy/eutils/pkg/types"
)

var (
	// ErrFilesystem marks copy, rename and remove failures.
	ErrFilesystem = errors.New("filesystem")
	// ErrProcessSpawn means the converter could not be found or started.
	ErrProcessSpawn = errors.New("could not start converter")
	// ErrConversionFailed means the converter exited with a non-zero status.
	ErrConversionFailed = errors.New("conversion failed")
)

// Result describes what Execute did for one plan.
type Result struct {
	Action types.Action
	// Command is the converter invocation, executable first. Empty unless
	// Action is ActionConvert.
	Command []string
}

// CommandLine renders Command for display.
func (r Result) CommandLine() string {
	return strings.Join(r.Command, " ")
}

// Executor runs conversion plans against a format catalog. Converter output
// is forwarded to Stdout and Stderr.
type Executor struct {
	catalog *format.Catalog
	run     runner
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewExecutor returns an Executor that spawns real processes and forwards
// their output to the process's own stdout and stderr.
func NewExecutor(catalog *format.Catalog) *Executor {
	return newExecutor(catalog, osRunner{})
}

func newExecutor(catalog *format.Catalog, r runner) *Executor {
	return &Executor{
		catalog: catalog,
		run:     r,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Describe resolves what Execute would do for p without touching anything.
func (e *Executor) Describe(p types.Plan, deleteSource bool) (Result, error) {
	if !p.NeedsConversion {
		if sameFile(p.Source, p.Dest) {
			return Result{Action: types.ActionUnchanged}, nil
		}
		if deleteSource {
			return Result{Action: types.ActionMove}, nil
		}
		return Result{Action: types.ActionCopy}, nil
	}

	src, err := e.catalog.FormatFor(p.SourceExt)
	if err != nil {
		return Result{}, err
	}
	tmpl, err := e.catalog.CommandFor(src, p.TargetExt)
	if err != nil {
		return Result{}, err
	}
	name, args := tmpl.Expand(p.Source, p.Dest)
	return Result{Action: types.ActionConvert, Command: append([]string{name}, args...)}, nil
}

// Execute carries out p. Without a format change the source is copied (or
// moved when deleteSource is set). Otherwise the converter runs to
// completion and, only if it exits successfully and deleteSource is set, the
// source is removed.
func (e *Executor) Execute(ctx context.Context, p types.Plan, deleteSource bool) (Result, error) {
	log := zerolog.Ctx(ctx)

	res, err := e.Describe(p, deleteSource)
	if err != nil {
		return Result{}, err
	}

	switch res.Action {
	case types.ActionUnchanged:
		log.Debug().Str("source", p.Source).Str("dest", p.Dest).Msg("source and destination are the same file")
		return res, nil
	case types.ActionCopy:
		log.Debug().Str("source", p.Source).Str("dest", p.Dest).Msg("copying")
		return res, copyFile(p.Source, resolveDest(p.Dest))
	case types.ActionMove:
		log.Debug().Str("source", p.Source).Str("dest", p.Dest).Msg("moving")
		return res, moveFile(p.Source, p.Dest)
	}

	if err := e.spawn(ctx, res.Command); err != nil {
		return res, err
	}
	if deleteSource {
		if err := removeSource(p.Source); err != nil {
			return res, err
		}
		log.Debug().Str("source", p.Source).Msg("removed source")
	}
	return res, nil
}

func (e *Executor) spawn(ctx context.Context, command []string) error {
	name, args := command[0], command[1:]
	zerolog.Ctx(ctx).Debug().Msgf("$ %s", strings.Join(command, " "))

	if _, err := e.run.LookPath(name); err != nil {
		return fmt.Errorf("%w %q: %w", ErrProcessSpawn, name, err)
	}

	err := e.run.Run(ctx, name, args, e.Stdout, e.Stderr)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrConversionFailed, name, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with status %d", ErrConversionFailed, name, exitErr.ExitCode())
	}
	return fmt.Errorf("%w %q: %w", ErrProcessSpawn, name, err)
}
