// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/jeranaias/curriculumlab/internal/export"
)

var moduleCommand = &cli.Command{
	Name:      "module",
	Usage:     "Export a single module as Markdown, JSON or a standalone HTML page",
	ArgsUsage: " ",
	Flags: concatFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:     "index",
				Aliases:  []string{"n"},
				Usage:    "Module number, starting at 1",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Module format: markdown, json, html",
				Value:   "markdown",
			},
		},
		courseFlags,
		outputFlags,
	),
	Action: runModule,
}

func runModule(c *cli.Context) error {
	e := envFrom(c)

	f, err := export.ModuleFormat(c.String("format"))
	if err != nil {
		return err
	}
	saver, err := e.saver(c)
	if err != nil {
		return err
	}
	crs, imgs, err := e.loadCourse(c)
	if err != nil {
		return err
	}

	res, err := e.svc.ExportAndSave(c.Context, export.Request{
		Format: f,
		Course: crs,
		Images: imgs,
		Module: c.Int("index") - 1,
	}, saver)
	if err != nil {
		return err
	}
	e.report(c, res)
	return nil
}
