// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// JournalStatus is the outcome stored for a journal entry.
type JournalStatus string

const (
	JournalOK     JournalStatus = "ok"
	JournalFailed JournalStatus = "failed"
)

// JournalEntry is one executed plan as kept in the history database.
type JournalEntry struct {
	ID int64 `json:"id" yaml:"id"`

	// Time is when the plan finished executing (UTC).
	Time time.Time `json:"time" yaml:"time"`

	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest" yaml:"dest"`
	Action Action `json:"action" yaml:"action"`

	// Command is the expanded converter command line, empty for copies and
	// moves.
	Command string `json:"command,omitempty" yaml:"command,omitempty"`

	Status JournalStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is JournalFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
