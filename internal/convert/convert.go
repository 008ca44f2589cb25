// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives a whole ecp/emv run: the one-time confirmation for
// destructive runs, then planning and executing each source in order.
//
// Sources are processed sequentially and the first error stops the run.
// Files handled before the error stay converted; there is no rollback.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/pdiddy/eutils/internal/transform"
	"github.com/pdiddy/eutils/pkg/types"
)

// DangerQuestion is asked once before a run that removes sources.
const DangerQuestion = "This conversion may lose information in the source files. Are you sure you want to continue?"

// ErrAborted is returned when the user declines the confirmation.
var ErrAborted = errors.New("aborted by user")

// Planner computes conversion plans for a destination.
type Planner interface {
	Plan(sources []string, dest string) []types.Plan
}

// Executor carries out or describes a single plan.
type Executor interface {
	Describe(p types.Plan, deleteSource bool) (transform.Result, error)
	Execute(ctx context.Context, p types.Plan, deleteSource bool) (transform.Result, error)
}

// Recorder stores executed plans.
type Recorder interface {
	Record(ctx context.Context, e types.JournalEntry) (int64, error)
}

// Request is one invocation: ecp/emv sources... dest.
type Request struct {
	Sources      []string
	Dest         string
	DeleteSource bool
	DryRun       bool
}

// BatchResult holds the outcome of a run.
type BatchResult struct {
	Converted int
	Copied    int
	Moved     int
	Unchanged int
}

// Total returns the number of sources handled.
func (r BatchResult) Total() int {
	return r.Converted + r.Copied + r.Moved + r.Unchanged
}

func (r *BatchResult) add(a types.Action) {
	switch a {
	case types.ActionConvert:
		r.Converted++
	case types.ActionCopy:
		r.Copied++
	case types.ActionMove:
		r.Moved++
	case types.ActionUnchanged:
		r.Unchanged++
	}
}

// Runner wires the planner, executor and confirmation together.
type Runner struct {
	Planner  Planner
	Executor Executor

	// WarnDangerous enables the confirmation before runs that delete sources.
	WarnDangerous bool
	// Confirm asks a yes/no question. Required when WarnDangerous is set.
	Confirm func(question string) (bool, error)

	// Journal, when set, receives an entry for every executed plan.
	Journal Recorder

	// Out receives one status line per source.
	Out io.Writer
	// Color enables colored status labels.
	Color bool
}

// Run executes req. When the user declines the confirmation, ErrAborted is
// returned before any file is touched.
func (r *Runner) Run(ctx context.Context, req Request) (BatchResult, error) {
	var result BatchResult
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	if req.DeleteSource && r.WarnDangerous && !req.DryRun {
		if r.Confirm == nil {
			return result, fmt.Errorf("confirmation required but no prompt configured")
		}
		ok, err := r.Confirm(DangerQuestion)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, ErrAborted
		}
	}

	plans := r.Planner.Plan(req.Sources, req.Dest)
	for _, p := range plans {
		if req.DryRun {
			res, err := r.Executor.Describe(p, req.DeleteSource)
			if err != nil {
				r.status(out, "failed:", color.FgRed, "%s (%v)", p.Source, err)
				return result, fmt.Errorf("%s: %w", p.Source, err)
			}
			r.describe(out, p, res)
			result.add(res.Action)
			continue
		}

		res, err := r.Executor.Execute(ctx, p, req.DeleteSource)
		r.record(ctx, p, res, err)
		if err != nil {
			r.status(out, "failed:", color.FgRed, "%s (%v)", p.Source, err)
			return result, fmt.Errorf("%s: %w", p.Source, err)
		}
		r.report(out, p, res)
		result.add(res.Action)
	}

	return result, nil
}

func (r *Runner) report(w io.Writer, p types.Plan, res transform.Result) {
	switch res.Action {
	case types.ActionConvert:
		r.status(w, "converted:", color.FgGreen, "%s -> %s", p.Source, p.Dest)
	case types.ActionCopy:
		r.status(w, "copied:", color.FgCyan, "%s -> %s", p.Source, p.Dest)
	case types.ActionMove:
		r.status(w, "moved:", color.FgCyan, "%s -> %s", p.Source, p.Dest)
	case types.ActionUnchanged:
		r.status(w, "unchanged:", color.FgYellow, "%s (already at %s)", p.Source, p.Dest)
	}
}

func (r *Runner) describe(w io.Writer, p types.Plan, res transform.Result) {
	switch res.Action {
	case types.ActionConvert:
		r.status(w, "would convert:", color.FgBlue, "%s -> %s ($ %s)", p.Source, p.Dest, res.CommandLine())
	default:
		r.status(w, "would "+string(res.Action)+":", color.FgBlue, "%s -> %s", p.Source, p.Dest)
	}
}

func (r *Runner) status(w io.Writer, label string, attr color.Attribute, format string, args ...any) {
	c := color.New(attr, color.Bold)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprint(w, label)
	fmt.Fprintf(w, " "+format+"\n", args...)
}

func (r *Runner) record(ctx context.Context, p types.Plan, res transform.Result, execErr error) {
	if r.Journal == nil {
		return
	}
	entry := types.JournalEntry{
		Source:  p.Source,
		Dest:    p.Dest,
		Action:  res.Action,
		Command: res.CommandLine(),
		Status:  types.JournalOK,
	}
	if execErr != nil {
		entry.Status = types.JournalFailed
		entry.Error = execErr.Error()
		if entry.Action == "" {
			entry.Action = types.ActionConvert
		}
	}
	if _, err := r.Journal.Record(ctx, entry); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("source", p.Source).Msg("could not write journal entry")
	}
}
