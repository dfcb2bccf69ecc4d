// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/curriculumlab/internal/config"
	"github.com/jeranaias/curriculumlab/internal/export"
	"github.com/jeranaias/curriculumlab/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// metadataKey is the App.Metadata entry holding the command environment.
const metadataKey = "env"

// env is what every command action needs. It is built once in Before.
type env struct {
	cfg    *config.Config
	log    *logging.Logger
	svc    *export.Service
	out    io.Writer
	errOut io.Writer
}

// NewApp builds the curriculumlab application writing to out and errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "curriculumlab",
		HelpName:  "curriculumlab",
		Usage:     "Export generated courses to JSON, Markdown, static sites and LMS packages",
		Version:   fmt.Sprintf("%s (%s)", Version, GitCommit),
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (TOML or JSON). Default: ~/.curriculumlab/config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log at debug level",
			},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			exportCommand,
			moduleCommand,
			previewCommand,
			libraryCommand,
			configCommand,
		},
		// Errors are reported by Run.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// Run executes the application and returns the process exit code.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	app := NewApp(out, errOut)
	if err := app.RunContext(ctx, args); err != nil {
		fmt.Fprintln(errOut, RenderConditional(ErrorStyle, "Error:")+" "+err.Error())
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) && exitErr.ExitCode() != 0 {
			return exitErr.ExitCode()
		}
		return 1
	}
	return 0
}

// setup loads configuration and builds the logger and export service.
func setup(c *cli.Context) error {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}

	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	e := &env{
		cfg:    cfg,
		log:    log,
		svc:    export.NewService(cfg.ExportOptions(), log),
		out:    c.App.Writer,
		errOut: c.App.ErrWriter,
	}
	e.svc.SetNotifier(export.NotifierFunc(e.notify))

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[metadataKey] = e
	return nil
}

func teardown(c *cli.Context) error {
	if e, ok := c.App.Metadata[metadataKey].(*env); ok {
		e.log.Sync()
	}
	return nil
}

// envFrom returns the environment built by setup.
func envFrom(c *cli.Context) *env {
	e, _ := c.App.Metadata[metadataKey].(*env)
	return e
}

// notify prints export notices on stderr.
func (e *env) notify(level export.NoticeLevel, msg string) {
	status := "ok"
	if level == export.NoticeError {
		status = "error"
	}
	fmt.Fprintln(e.errOut, RenderStatus(status)+" "+msg)
}
