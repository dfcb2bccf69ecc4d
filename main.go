// curriculumlab - export generated courses to JSON, Markdown, static
// websites and LMS packages.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"

	"github.com/jeranaias/curriculumlab/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	cli.Version = Version
	cli.GitCommit = GitCommit

	os.Exit(cli.Run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
