// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/curriculumlab/internal/export"
	"github.com/jeranaias/curriculumlab/internal/watch"
)

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "Export a whole course",
	ArgsUsage: " ",
	Description: `Formats:
   json       course data with export metadata
   lms-json   course data only
   markdown   single Markdown document
   site       static website (ZIP)
   lms        Canvas LMS pages (ZIP)`,
	Flags: concatFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Export format: json, lms-json, markdown, site, lms",
				Value:   string(export.FormatSite),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Export again whenever the course file or image directory changes",
			},
		},
		courseFlags,
		outputFlags,
	),
	Action: runExport,
}

func runExport(c *cli.Context) error {
	e := envFrom(c)

	f, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	if f.IsModule() {
		return fmt.Errorf("%s is a module format: use the module command", f)
	}
	saver, err := e.saver(c)
	if err != nil {
		return err
	}

	once := func(ctx context.Context) error {
		crs, imgs, err := e.loadCourse(c)
		if err != nil {
			return err
		}
		res, err := e.svc.ExportAndSave(ctx, export.Request{Format: f, Course: crs, Images: imgs}, saver)
		if err != nil {
			return err
		}
		e.report(c, res)
		return nil
	}

	if !c.Bool("watch") {
		return once(c.Context)
	}
	return e.watchExport(c, saver, once)
}

// watchExport exports once and again on every change until interrupted.
func (e *env) watchExport(c *cli.Context, saver export.Saver, once watch.Action) error {
	if c.String("course") == "" {
		return errors.New("--watch needs --course")
	}
	if _, ok := saver.(*export.ClipboardSaver); ok {
		return errors.New("--watch cannot be combined with --clipboard")
	}
	// Re-exports replace the previous file instead of piling up copies.
	if fs, ok := saver.(*export.FileSaver); ok {
		fs.Overwrite = true
		fs.Open = false
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := once(ctx); err != nil {
		return err
	}

	paths := []string{c.String("course")}
	if dir := c.String("images"); dir != "" {
		paths = append(paths, dir)
	}
	w, err := watch.New(watch.Config{
		Paths:    paths,
		Debounce: time.Duration(e.cfg.Watch.DebounceMS) * time.Millisecond,
	}, e.log)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintln(e.errOut, RenderConditional(DimStyle, "Watching for changes. Press Ctrl+C to stop."))
	return w.Run(ctx, once)
}

// concatFlags joins flag groups into one slice.
func concatFlags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
