// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jeranaias/curriculumlab/internal/course"
	"github.com/jeranaias/curriculumlab/internal/export"
	"github.com/jeranaias/curriculumlab/internal/library"
)

var libraryCommand = &cli.Command{
	Name:  "library",
	Usage: "Store courses and module images for later exports",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "db",
			Usage: "Library database (default from config library.db_path)",
		},
	},
	Subcommands: []*cli.Command{
		{
			Name:      "import",
			Usage:     "Add a course file to the library",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "images",
					Usage: "Directory of module images to store with the course",
				},
			},
			Action: runLibraryImport,
		},
		{
			Name:      "update",
			Usage:     "Replace a stored course with a new version of its file",
			ArgsUsage: "ID FILE",
			Action:    runLibraryUpdate,
		},
		{
			Name:   "list",
			Usage:  "List stored courses",
			Action: runLibraryList,
		},
		{
			Name:      "export",
			Usage:     "Export a stored course",
			ArgsUsage: "ID",
			Flags: concatFlags(
				[]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"t"},
						Usage:   "Export format: json, lms-json, markdown, site, lms",
						Value:   string(export.FormatSite),
					},
				},
				outputFlags,
			),
			Action: runLibraryExport,
		},
		{
			Name:      "delete",
			Usage:     "Remove a stored course and its images",
			ArgsUsage: "ID",
			Action:    runLibraryDelete,
		},
		{
			Name:      "image",
			Usage:     "Attach an image file or URL to a module (reference is a module ID or position)",
			ArgsUsage: "ID MODULE_REF FILE|URL",
			Action:    runLibraryImage,
		},
	},
}

// openLibrary opens the library selected by --db or the configuration.
func (e *env) openLibrary(c *cli.Context) (*library.Library, error) {
	path := c.String("db")
	if path == "" {
		path = e.cfg.Library.DBPath
	}
	if path == "" {
		return nil, errors.New("no library database configured")
	}
	e.log.Debug("opening library", "path", path)
	return library.Open(c.Context, path)
}

// argAt returns positional argument i or an error naming it.
func argAt(c *cli.Context, i int, name string) (string, error) {
	v := strings.TrimSpace(c.Args().Get(i))
	if v == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return v, nil
}

func runLibraryImport(c *cli.Context) error {
	e := envFrom(c)
	path, err := argAt(c, 0, "FILE")
	if err != nil {
		return err
	}
	crs, err := course.Load(path)
	if err != nil {
		return err
	}
	for _, f := range crs.Lint() {
		e.log.Warn("course lint", "finding", f.String())
	}

	lib, err := e.openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	id, err := lib.Save(c.Context, crs)
	if err != nil {
		return err
	}
	if dir := c.String("images"); dir != "" {
		imgs, err := course.LoadImageDir(dir)
		if err != nil {
			return err
		}
		if err := lib.SetImages(c.Context, id, imgs); err != nil {
			return err
		}
	}

	e.log.Info("course imported", "id", id, "title", crs.Title)
	fmt.Fprintln(e.out, id)
	return nil
}

func runLibraryUpdate(c *cli.Context) error {
	e := envFrom(c)
	id, err := argAt(c, 0, "ID")
	if err != nil {
		return err
	}
	path, err := argAt(c, 1, "FILE")
	if err != nil {
		return err
	}
	crs, err := course.Load(path)
	if err != nil {
		return err
	}
	for _, f := range crs.Lint() {
		e.log.Warn("course lint", "finding", f.String())
	}

	lib, err := e.openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Update(c.Context, id, crs); err != nil {
		return err
	}
	e.log.Info("course updated", "id", id, "title", crs.Title)
	fmt.Fprintln(e.errOut, RenderStatus("ok")+" updated "+id)
	return nil
}

func runLibraryList(c *cli.Context) error {
	e := envFrom(c)
	lib, err := e.openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	metas, err := lib.List(c.Context)
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Fprintln(e.out, RenderConditional(DimStyle, "The library is empty."))
		return nil
	}

	fmt.Fprint(e.out, LibraryTable(metas).String())
	return nil
}

// LibraryTable lays out stored courses.
func LibraryTable(metas []library.Meta) *Table {
	t := &Table{
		Headers:  []string{"ID", "TITLE", "MODULES", "IMAGES", "UPDATED"},
		MaxWidth: []int{8, 40},
	}
	for _, m := range metas {
		t.AddRow(
			m.ID,
			m.Title,
			strconv.Itoa(m.ModuleCount),
			strconv.Itoa(m.ImageCount),
			m.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t
}

func runLibraryExport(c *cli.Context) error {
	e := envFrom(c)
	id, err := argAt(c, 0, "ID")
	if err != nil {
		return err
	}
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

	lib, err := e.openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	entry, err := lib.Get(c.Context, id)
	if err != nil {
		return err
	}
	imgs, err := lib.Images(c.Context, entry.ID)
	if err != nil {
		return err
	}

	res, err := e.svc.ExportAndSave(c.Context, export.Request{Format: f, Course: entry.Course, Images: imgs}, saver)
	if err != nil {
		return err
	}
	e.report(c, res)
	return nil
}

func runLibraryDelete(c *cli.Context) error {
	e := envFrom(c)
	id, err := argAt(c, 0, "ID")
	if err != nil {
		return err
	}
	lib, err := e.openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Delete(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintln(e.errOut, RenderStatus("ok")+" deleted "+id)
	return nil
}

func runLibraryImage(c *cli.Context) error {
	e := envFrom(c)
	id, err := argAt(c, 0, "ID")
	if err != nil {
		return err
	}
	refArg, err := argAt(c, 1, "MODULE_REF")
	if err != nil {
		return err
	}
	ref, err := strconv.Atoi(refArg)
	if err != nil {
		return fmt.Errorf("MODULE_REF must be an integer: %w", err)
	}
	src, err := argAt(c, 2, "FILE|URL")
	if err != nil {
		return err
	}

	payload := src
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") && !strings.HasPrefix(src, "data:") {
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		if payload, err = course.DataURI(data); err != nil {
			return err
		}
	}

	lib, err := e.openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.SetImage(c.Context, id, ref, payload); err != nil {
		return err
	}
	fmt.Fprintln(e.errOut, RenderStatus("ok")+fmt.Sprintf(" image stored for module reference %d", ref))
	return nil
}
