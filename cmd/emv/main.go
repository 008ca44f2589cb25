// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Command emv moves files, converting between formats when the target
// extension differs from the source. Sources are removed only after their
// output was produced.
package main

import (
	"os"

	"github.com/pdiddy/eutils/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.Move))
}
