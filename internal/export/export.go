// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jeranaias/curriculumlab/internal/course"
	"github.com/jeranaias/curriculumlab/internal/logging"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter produces the bytes of one format.
type Exporter interface {
	// Format returns the format this exporter produces.
	Format() Format

	// Export renders req. Archive exporters honor ctx between files.
	Export(ctx context.Context, req Request) ([]byte, error)
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc struct {
	F  Format
	Fn func(ctx context.Context, req Request) ([]byte, error)
}

func (e ExporterFunc) Format() Format { return e.F }

func (e ExporterFunc) Export(ctx context.Context, req Request) ([]byte, error) {
	return e.Fn(ctx, req)
}

// BundleExporter is implemented by archive exporters. The service zips
// the bundle itself and lists its entries in Payload.Files.
type BundleExporter interface {
	Exporter

	// ExportBundle assembles the archive entries of req.
	ExportBundle(ctx context.Context, req Request) (*Bundle, error)
}

// BundleExporterFunc adapts a bundle-assembling function to BundleExporter.
type BundleExporterFunc struct {
	F  Format
	Fn func(ctx context.Context, req Request) (*Bundle, error)
}

func (e BundleExporterFunc) Format() Format { return e.F }

func (e BundleExporterFunc) ExportBundle(ctx context.Context, req Request) (*Bundle, error) {
	return e.Fn(ctx, req)
}

func (e BundleExporterFunc) Export(ctx context.Context, req Request) ([]byte, error) {
	b, err := e.Fn(ctx, req)
	if err != nil {
		return nil, err
	}
	return b.Zip()
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where FileSaver writes.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens saved files in the default application.
	OpenAfterExport bool

	// PrettyJSON indents JSON exports by two spaces.
	PrettyJSON bool

	// Lang is the lang attribute of HTML documents.
	// Default: "es"
	Lang string

	Branding Branding
	Labels   Labels

	// Now is the clock used for export timestamps. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:  ".",
		PrettyJSON: true,
		Lang:       "es",
		Branding:   DefaultBranding(),
		Labels:     DefaultLabels(),
	}
}

// =============================================================================
// REQUESTS AND PAYLOADS
// =============================================================================

// Request asks for one export.
type Request struct {
	Format Format
	Course *course.Course
	Images course.ImageMap
	// Module is the zero-based module position for module formats.
	Module int
}

// Payload is a rendered export ready to be saved.
type Payload struct {
	Name     string
	Format   Format
	MimeType string
	Data     []byte
	// Files lists the archive entries for bundle formats.
	Files []string
}

// IsBinary reports whether the payload is not text.
func (p *Payload) IsBinary() bool {
	return p.Format.IsArchive()
}

// =============================================================================
// SERVICE
// =============================================================================

// Service is the single entry point for exports. Each call renders from
// its own snapshot of the image map and allocates its own buffers, so a
// Service may be shared between goroutines.
type Service struct {
	renderer  *Renderer
	assembler *Assembler
	exporters map[Format]Exporter
	log       *logging.Logger
	notifier  Notifier
}

// NewService creates a service with every built-in format registered.
func NewService(opts *Options, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	r := NewRenderer(opts)
	s := &Service{
		renderer:  r,
		assembler: NewAssembler(r),
		exporters: make(map[Format]Exporter),
		log:       log,
		notifier:  NopNotifier{},
	}
	s.registerBuiltins()
	return s
}

// Renderer returns the renderer backing the service.
func (s *Service) Renderer() *Renderer { return s.renderer }

// SetNotifier sets where user-facing notices go.
func (s *Service) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}
	s.notifier = n
}

// Register adds or replaces the exporter of a format.
func (s *Service) Register(e Exporter) {
	s.exporters[e.Format()] = e
}

// Formats lists the registered formats in name order.
func (s *Service) Formats() []Format {
	out := make([]Format, 0, len(s.exporters))
	for f := range s.exporters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Service) registerBuiltins() {
	r, a := s.renderer, s.assembler
	text := func(f Format, fn func(Request) ([]byte, error)) {
		s.Register(ExporterFunc{F: f, Fn: func(_ context.Context, req Request) ([]byte, error) {
			return fn(req)
		}})
	}

	text(FormatJSON, func(req Request) ([]byte, error) { return r.RenderCourseJSON(req.Course) })
	text(FormatLMSJSON, func(req Request) ([]byte, error) { return r.RenderRawJSON(req.Course) })
	text(FormatMarkdown, func(req Request) ([]byte, error) { return r.RenderMarkdown(req.Course) })
	text(FormatModuleMarkdown, func(req Request) ([]byte, error) {
		return r.RenderModuleMarkdown(req.Course, req.Module)
	})
	text(FormatModuleJSON, func(req Request) ([]byte, error) {
		return r.RenderModuleJSON(req.Course, req.Module)
	})
	text(FormatModuleHTML, func(req Request) ([]byte, error) {
		return r.Module(ContextStandalone).HTML(req.Course, req.Module, req.Images)
	})

	s.Register(BundleExporterFunc{F: FormatSite, Fn: func(ctx context.Context, req Request) (*Bundle, error) {
		return a.SiteBundle(ctx, req.Course, req.Images)
	}})
	s.Register(BundleExporterFunc{F: FormatLMS, Fn: func(ctx context.Context, req Request) (*Bundle, error) {
		return a.LMSBundle(ctx, req.Course, req.Images)
	}})
}

// render runs e, zipping bundles here so the entry list comes from the
// archive that was actually written.
func render(ctx context.Context, e Exporter, req Request) ([]byte, []string, error) {
	be, ok := e.(BundleExporter)
	if !ok {
		data, err := e.Export(ctx, req)
		return data, nil, err
	}
	b, err := be.ExportBundle(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	data, err := b.Zip()
	if err != nil {
		return nil, nil, err
	}
	return data, b.Names(), nil
}

// Export renders req into a named payload. Nothing is saved.
func (s *Service) Export(ctx context.Context, req Request) (*Payload, error) {
	e, ok := s.exporters[req.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, req.Format)
	}
	if err := checkCourse(req.Course); err != nil {
		return nil, err
	}
	req.Images = req.Images.Clone()

	name, err := s.fileName(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, files, err := render(ctx, e, req)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", req.Format, err)
	}

	p := &Payload{
		Name:     name,
		Format:   req.Format,
		MimeType: req.Format.MimeType(),
		Data:     data,
		Files:    files,
	}

	s.log.Debug("export rendered",
		"format", string(req.Format),
		"course", req.Course.Title,
		"bytes", len(data),
		"elapsed", time.Since(start),
	)
	return p, nil
}

// Result is the outcome of ExportAndSave.
type Result struct {
	Payload  *Payload
	Location string
}

// ExportAndSave renders req and hands the payload to saver. A failed
// export never reaches the saver; the failure is logged and reported
// through the notifier before it is returned.
func (s *Service) ExportAndSave(ctx context.Context, req Request, saver Saver) (*Result, error) {
	p, err := s.Export(ctx, req)
	if err != nil {
		s.fail(req, err)
		return nil, err
	}

	loc, err := saver.Save(ctx, p)
	if err != nil {
		err = fmt.Errorf("save %s: %w", p.Name, err)
		s.fail(req, err)
		return nil, err
	}

	s.log.Info("export saved", "format", string(req.Format), "location", loc, "bytes", len(p.Data))
	s.notifier.Notify(NoticeInfo, fmt.Sprintf("%s: %s", s.renderer.labels.Exported, loc))
	return &Result{Payload: p, Location: loc}, nil
}

func (s *Service) fail(req Request, err error) {
	title := ""
	if req.Course != nil {
		title = req.Course.Title
	}
	s.log.Error("export failed", "format", string(req.Format), "course", title, "error", err)

	msg := s.renderer.labels.ExportFailed
	if errors.Is(err, ErrArchive) {
		msg = s.renderer.labels.ArchiveFailed
	}
	s.notifier.Notify(NoticeError, msg)
}

func (s *Service) fileName(req Request) (string, error) {
	if !req.Format.IsModule() {
		return CourseFileName(req.Course.Title, req.Format), nil
	}
	mod, err := moduleAt(req.Course, req.Module)
	if err != nil {
		return "", err
	}
	return ModuleDocName(s.renderer.labels.ModuleFile, req.Module+1, mod.Title, req.Format), nil
}

// =============================================================================
// NOTICES
// =============================================================================

// NoticeLevel classifies a user-facing notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notifier shows short messages to the user.
type Notifier interface {
	Notify(level NoticeLevel, msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level NoticeLevel, msg string)

func (f NotifierFunc) Notify(level NoticeLevel, msg string) { f(level, msg) }

// NopNotifier discards notices.
type NopNotifier struct{}

func (NopNotifier) Notify(NoticeLevel, string) {}
