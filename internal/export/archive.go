// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/jeranaias/curriculumlab/internal/course"
)

// =============================================================================
// BUNDLES
// =============================================================================

// lmsFolder is the directory holding every page of the LMS bundle.
const lmsFolder = "canvas"

// File is one named entry of a bundle.
type File struct {
	Name string
	Data []byte
}

// Bundle is an ordered set of files destined for one archive.
type Bundle struct {
	Format   Format
	Modified time.Time
	files    []File
	names    map[string]bool
}

func newBundle(f Format, modified time.Time) *Bundle {
	return &Bundle{Format: f, Modified: modified, names: make(map[string]bool)}
}

// Add appends a file. Names must be unique within the bundle.
func (b *Bundle) Add(name string, data []byte) error {
	if b.names[name] {
		return fmt.Errorf("duplicate bundle entry %q", name)
	}
	b.names[name] = true
	b.files = append(b.files, File{Name: name, Data: data})
	return nil
}

// Files returns the entries in insertion order.
func (b *Bundle) Files() []File {
	out := make([]File, len(b.files))
	copy(out, b.files)
	return out
}

// Names returns the entry names in insertion order.
func (b *Bundle) Names() []string {
	out := make([]string, len(b.files))
	for i, f := range b.files {
		out[i] = f.Name
	}
	return out
}

// Zip compresses the bundle. On failure no bytes are returned.
func (b *Bundle) Zip() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range b.files {
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: b.Modified,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			_ = zw.Close()
			return nil, &ArchiveError{Format: b.Format, Err: fmt.Errorf("create %s: %w", f.Name, err)}
		}
		if _, err := w.Write(f.Data); err != nil {
			_ = zw.Close()
			return nil, &ArchiveError{Format: b.Format, Err: fmt.Errorf("write %s: %w", f.Name, err)}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &ArchiveError{Format: b.Format, Err: fmt.Errorf("finalize: %w", err)}
	}
	return buf.Bytes(), nil
}

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assembler renders the pages of a bundle. Rendering stops at the first
// failing page and no bundle is returned.
type Assembler struct {
	r *Renderer
}

// NewAssembler creates an assembler backed by r.
func NewAssembler(r *Renderer) *Assembler {
	return &Assembler{r: r}
}

// SiteBundle assembles index.html, README.md and one page per module.
func (a *Assembler) SiteBundle(ctx context.Context, c *course.Course, imgs course.ImageMap) (*Bundle, error) {
	return a.assemble(ctx, FormatSite, c, func(b *Bundle) error {
		index, err := a.r.RenderSiteIndex(c)
		if err != nil {
			return fmt.Errorf("index.html: %w", err)
		}
		if err := b.Add("index.html", index); err != nil {
			return err
		}
		readme, err := a.r.RenderReadme(c)
		if err != nil {
			return fmt.Errorf("README.md: %w", err)
		}
		if err := b.Add("README.md", readme); err != nil {
			return err
		}
		return a.addModulePages(ctx, b, "", ContextSite, c, imgs)
	})
}

// LMSBundle assembles one LMS page per module and an overview page, all
// inside the canvas folder.
func (a *Assembler) LMSBundle(ctx context.Context, c *course.Course, imgs course.ImageMap) (*Bundle, error) {
	return a.assemble(ctx, FormatLMS, c, func(b *Bundle) error {
		if err := a.addModulePages(ctx, b, lmsFolder, ContextLMS, c, imgs); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		overview, err := a.r.RenderLMSOverview(c, imgs)
		if err != nil {
			return fmt.Errorf("index.html: %w", err)
		}
		return b.Add(path.Join(lmsFolder, "index.html"), overview)
	})
}

// assemble validates the input, runs fill and converts panics and errors
// into an ArchiveError. Context errors are returned unwrapped.
func (a *Assembler) assemble(ctx context.Context, f Format, c *course.Course, fill func(*Bundle) error) (b *Bundle, err error) {
	if err := checkCourse(c); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			b = nil
			err = &ArchiveError{Format: f, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	bundle := newBundle(f, a.r.exportedAt())
	if err := fill(bundle); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &ArchiveError{Format: f, Err: err}
	}
	return bundle, nil
}

func (a *Assembler) addModulePages(ctx context.Context, b *Bundle, dir string, pageCtx Context, c *course.Course, imgs course.ImageMap) error {
	mr := a.r.Module(pageCtx)
	total := len(c.Modules)
	for i := range c.Modules {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := ModuleFileName(i+1, total)
		page, err := mr.HTML(c, i, imgs)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := b.Add(path.Join(dir, name), page); err != nil {
			return err
		}
	}
	return nil
}
