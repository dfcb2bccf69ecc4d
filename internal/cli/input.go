// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/curriculumlab/internal/course"
	"github.com/jeranaias/curriculumlab/internal/export"
)

// =============================================================================
// COURSE INPUT
// =============================================================================

var errNoCourse = errors.New("a course is required: use --course FILE or --demo")

// courseFlags select the course to export.
var courseFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "course",
		Aliases: []string{"f"},
		Usage:   "Course file (.json, .yaml or .toml)",
	},
	&cli.BoolFlag{
		Name:  "demo",
		Usage: "Use the built-in demonstration course",
	},
	&cli.StringFlag{
		Name:  "images",
		Usage: "Directory of module images named by module ID or position (1.png, 02.jpg)",
	},
}

// loadCourse reads the course and image map selected by courseFlags.
// Lint findings are logged as warnings.
func (e *env) loadCourse(c *cli.Context) (*course.Course, course.ImageMap, error) {
	var (
		crs *course.Course
		err error
	)
	switch {
	case c.String("course") != "" && c.Bool("demo"):
		return nil, nil, errors.New("--course and --demo are mutually exclusive")
	case c.Bool("demo"):
		crs = course.Demo()
	case c.String("course") != "":
		if crs, err = course.Load(c.String("course")); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errNoCourse
	}

	for _, f := range crs.Lint() {
		e.log.Warn("course lint", "finding", f.String())
	}

	var imgs course.ImageMap
	if dir := c.String("images"); dir != "" {
		if imgs, err = course.LoadImageDir(dir); err != nil {
			return nil, nil, err
		}
		e.log.Debug("images loaded", "dir", dir, "count", len(imgs))
	}
	return crs, imgs, nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// outputFlags select where an export goes.
var outputFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Output directory (default from config export.output_dir)",
	},
	&cli.BoolFlag{
		Name:  "stdout",
		Usage: "Write the export to stdout instead of a file",
	},
	&cli.BoolFlag{
		Name:  "clipboard",
		Usage: "Copy the export to the clipboard (text formats only)",
	},
	&cli.BoolFlag{
		Name:  "open",
		Usage: "Open the saved file in the default application",
	},
	&cli.BoolFlag{
		Name:  "overwrite",
		Usage: "Replace existing files instead of adding a numeric suffix",
	},
}

// saver builds the Saver selected by outputFlags.
func (e *env) saver(c *cli.Context) (export.Saver, error) {
	toStdout, toClipboard := c.Bool("stdout"), c.Bool("clipboard")
	switch {
	case toStdout && toClipboard:
		return nil, errors.New("--stdout and --clipboard are mutually exclusive")
	case toStdout:
		return &export.WriterSaver{W: e.out}, nil
	case toClipboard:
		return &export.ClipboardSaver{}, nil
	}

	dir := c.String("out")
	if dir == "" {
		dir = e.cfg.Export.OutputDir
	}
	return &export.FileSaver{
		Dir:       dir,
		Overwrite: c.Bool("overwrite") || e.cfg.Export.Overwrite,
		Open:      c.Bool("open") || e.cfg.Export.OpenAfterExport,
		OnOpenError: func(path string, err error) {
			e.log.Warn("could not open exported file", "path", path, "error", err)
		},
	}, nil
}

// report prints what follows a saved export: the bundle contents at debug
// level and the deployment or import steps for bundles saved to disk.
func (e *env) report(c *cli.Context, res *export.Result) {
	if len(res.Payload.Files) > 0 {
		e.log.Debug("bundle written", "name", res.Payload.Name, "files", len(res.Payload.Files))
	}
	if c.Bool("stdout") || c.Bool("clipboard") {
		return
	}
	if ins, ok := export.InstructionsFor(res.Payload.Format); ok {
		fmt.Fprint(e.out, FormatInstructions(ins, GetTerminalWidth()))
	}
}

// FormatInstructions renders post-export steps as a numbered list.
func FormatInstructions(ins export.Instructions, width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(RenderConditional(TitleStyle, ins.Title))
	b.WriteString("\n")
	b.WriteString(RenderSeparator(min(width, 70)))
	b.WriteString("\n")
	for i, step := range ins.Steps {
		b.WriteString(WrapText(fmt.Sprintf("%d. %s", i+1, step), width))
		b.WriteString("\n")
	}
	if ins.Tip != "" {
		b.WriteString("\n")
		b.WriteString(RenderConditional(DimStyle, WrapText(ins.Tip, width)))
		b.WriteString("\n")
	}
	return b.String()
}
