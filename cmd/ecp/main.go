// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Command ecp copies files, converting between formats when the target
// extension differs from the source.
package main

import (
	"os"

	"github.com/pdiddy/eutils/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.Copy))
}
