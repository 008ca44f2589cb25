// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eutils/internal/journal"
	"github.com/pdiddy/eutils/pkg/types"
)

// History output formats accepted by --history-format.
const (
	historyTable = "table"
	historyYAML  = "yaml"
	historyJSON  = "json"
)

func printHistory(ctx context.Context, w io.Writer, path string, limit int, format string) error {
	store, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	switch format {
	case historyTable, "":
		writeHistoryTable(w, entries)
		return nil
	case historyYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case historyJSON:
		if entries == nil {
			entries = []types.JournalEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown history format %q (want %s, %s or %s)", format, historyTable, historyYAML, historyJSON)
	}
}

func writeHistoryTable(w io.Writer, entries []types.JournalEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No journal entries.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-9s  %-6s  %s\n", "Time", "Action", "Status", "Source -> Dest")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, e := range entries {
		fmt.Fprintf(w, "%-19s  %-9s  %-6s  %s -> %s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), e.Action, e.Status, e.Source, e.Dest)
		if e.Command != "" {
			fmt.Fprintf(w, "%42s$ %s\n", "", e.Command)
		}
		if e.Error != "" {
			fmt.Fprintf(w, "%42s! %s\n", "", e.Error)
		}
	}
}
