// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cli builds the ecp and emv commands. Both binaries share one cobra
// command; they differ only in name and in whether sources are removed.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/eutils/internal/config"
	"github.com/pdiddy/eutils/internal/convert"
	"github.com/pdiddy/eutils/internal/journal"
	"github.com/pdiddy/eutils/internal/plan"
	"github.com/pdiddy/eutils/internal/prompt"
	"github.com/pdiddy/eutils/internal/transform"
)

// version is set at build time via ldflags.
var version = "dev"

// Mode selects between copy (ecp) and move (emv) behavior.
type Mode struct {
	Name         string
	DeleteSource bool
}

var (
	// Copy is ecp: sources are kept.
	Copy = Mode{Name: "ecp"}
	// Move is emv: sources are removed after they were handled successfully.
	Move = Mode{Name: "emv", DeleteSource: true}
)

func (m Mode) usage() string {
	return fmt.Sprintf("usage: %s source ... target", m.Name)
}

// NewCommand returns the root command for mode. Each call gets its own viper
// instance so commands can be built repeatedly in tests.
func NewCommand(mode Mode) *cobra.Command {
	v := newViper()

	verb, long, like := "Copy", "Copies", "cp"
	if mode.DeleteSource {
		verb, long, like = "Move", "Moves", "mv"
	}

	cmd := &cobra.Command{
		Use:   mode.Name + " source ... target",
		Short: verb + " files, converting between formats on the way",
		Long: long + ` files like ` + like + ` does. When the target names a
different extension, the configured converter command for that format
pair is run instead of a plain copy.

  ` + mode.Name + ` photo.png photo.jpg     convert one file
  ` + mode.Name + ` *.png out/.webp         convert many files into out/
  ` + mode.Name + ` clip.mp4 backup/        place a file unchanged

Formats and converter commands are read from the preferences file
(default: ~/.config/eutils/preferences.json, created on first use).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, mode, args)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "preferences file (default: ~/.config/eutils/preferences.json)")
	flags.BoolP("verbose", "v", false, "log resolved commands and file operations")
	flags.BoolP("dry-run", "n", false, "print what would happen without touching any file")
	flags.Int("history", 0, "print the last N journal entries and exit")
	flags.String("history-format", historyTable, "history output: table, yaml or json")

	for _, name := range []string{"config", "verbose", "dry-run"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, mode Mode, args []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	logger := newLogger(errOut, v.GetBool("verbose"))
	ctx := logger.WithContext(cmd.Context())

	if cmd.Flags().Changed("history") {
		loc, err := location(v)
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("history")
		format, _ := cmd.Flags().GetString("history-format")
		return printHistory(ctx, out, loc.HistoryPath(), n, format)
	}

	// Usage errors are reported before anything depends on the environment.
	switch len(args) {
	case 0:
		fmt.Fprintln(out, mode.usage())
		return nil
	case 1:
		return fmt.Errorf("missing destination after %q\n%s", args[0], mode.usage())
	}

	loc, err := location(v)
	if err != nil {
		return err
	}
	settings, err := config.Load(ctx, loc)
	if err != nil {
		return err
	}

	dryRun := v.GetBool("dry-run")
	runner := &convert.Runner{
		Planner:       plan.New(),
		Executor:      newExecutor(settings, out, errOut),
		WarnDangerous: warnDangerous(v, settings),
		Confirm:       prompt.Func(cmd.InOrStdin(), out),
		Out:           out,
		Color:         isTerminal(out),
	}

	if settings.Journal && !dryRun {
		store, err := journal.Open(loc.HistoryPath())
		if err != nil {
			logger.Warn().Err(err).Msg("journal disabled")
		} else {
			defer store.Close()
			runner.Journal = store
		}
	}

	_, err = runner.Run(ctx, convert.Request{
		Sources:      args[:len(args)-1],
		Dest:         args[len(args)-1],
		DeleteSource: mode.DeleteSource,
		DryRun:       dryRun,
	})
	if errors.Is(err, convert.ErrAborted) {
		fmt.Fprintln(out, "aborted, no files were changed")
		return nil
	}
	return err
}

func newExecutor(settings *config.Settings, out, errOut io.Writer) *transform.Executor {
	e := transform.NewExecutor(settings.Catalog)
	e.Stdout = out
	e.Stderr = errOut
	return e
}

// Execute runs the command for mode and returns the process exit code.
func Execute(mode Mode) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewCommand(mode)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", mode.Name, err)
		return 1
	}
	return 0
}
