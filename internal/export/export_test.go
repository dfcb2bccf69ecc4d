// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/curriculumlab/internal/logging"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type spySaver struct {
	calls []*Payload
}

func (s *spySaver) Save(_ context.Context, p *Payload) (string, error) {
	s.calls = append(s.calls, p)
	return "spy/" + p.Name, nil
}

type notice struct {
	level NoticeLevel
	msg   string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (n *recordingNotifier) Notify(level NoticeLevel, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{level, msg})
}

func observedService(t *testing.T) (*Service, *observer.ObservedLogs, *recordingNotifier) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	log := &logging.Logger{SugaredLogger: zap.New(core).Sugar()}
	svc := NewService(testOptions(), log)
	n := &recordingNotifier{}
	svc.SetNotifier(n)
	return svc, logs, n
}

// =============================================================================
// SERVICE
// =============================================================================

func TestService_ArchiveScenarioEndToEnd(t *testing.T) {
	svc, _, n := observedService(t)
	c, imgs := archiveCourse()
	dir := t.TempDir()

	res, err := svc.ExportAndSave(context.Background(), Request{
		Format: FormatSite,
		Course: c,
		Images: imgs,
	}, &FileSaver{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "Archive___Memory.zip", res.Payload.Name)
	assert.Equal(t, filepath.Join(dir, "Archive___Memory.zip"), res.Location)
	assert.Equal(t, "application/zip", res.Payload.MimeType)
	assert.Equal(t, []string{"index.html", "README.md", "module-01.html", "module-02.html"}, res.Payload.Files)

	data, err := os.ReadFile(res.Location)
	require.NoError(t, err)
	names, files := readZip(t, data)
	assert.Equal(t, res.Payload.Files, names)

	// Module 1 has an image and no prompt, module 2 a prompt and no image.
	assert.Len(t, findAll(parseHTML(t, files["module-01.html"]), tagClass("img", "")), 1)
	page2 := parseHTML(t, files["module-02.html"])
	assert.Empty(t, findAll(page2, tagClass("img", "")))
	assert.Len(t, findAll(page2, tagClass("div", "module-image-placeholder")), 1)

	require.Len(t, n.notices, 1)
	assert.Equal(t, NoticeInfo, n.notices[0].level)
}

func TestService_FileNames(t *testing.T) {
	svc, _, _ := observedService(t)
	c, _ := archiveCourse()

	tests := []struct {
		format Format
		module int
		want   string
	}{
		{FormatJSON, 0, "Archive___Memory.json"},
		{FormatLMSJSON, 0, "Archive___Memory_lms.json"},
		{FormatMarkdown, 0, "Archive___Memory.md"},
		{FormatSite, 0, "Archive___Memory.zip"},
		{FormatLMS, 0, "Archive___Memory_canvas.zip"},
		{FormatModuleMarkdown, 1, "Modulo_2_Conservacion.md"},
		{FormatModuleJSON, 0, "Modulo_1_Fuentes.json"},
		{FormatModuleHTML, 1, "Modulo_2_Conservacion.html"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			p, err := svc.Export(context.Background(), Request{Format: tt.format, Course: c, Module: tt.module})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
			assert.Equal(t, tt.format.MimeType(), p.MimeType)
			assert.NotEmpty(t, p.Data)
		})
	}
}

func TestService_FailureNeverReachesSaver(t *testing.T) {
	svc, logs, n := observedService(t)
	svc.Register(ExporterFunc{F: FormatSite, Fn: func(context.Context, Request) ([]byte, error) {
		return nil, &ArchiveError{Format: FormatSite, Err: errors.New("deflate failed")}
	}})
	c, _ := archiveCourse()
	saver := &spySaver{}

	res, err := svc.ExportAndSave(context.Background(), Request{Format: FormatSite, Course: c}, saver)
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrArchive)
	assert.Empty(t, saver.calls)

	require.Len(t, n.notices, 1)
	assert.Equal(t, NoticeError, n.notices[0].level)
	assert.Equal(t, "Error al generar el paquete ZIP. Por favor, intenta de nuevo.", n.notices[0].msg)

	failed := logs.FilterMessage("export failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "site", failed[0].ContextMap()["format"])
	assert.Equal(t, "Archive & Memory", failed[0].ContextMap()["course"])
}

func TestService_FilesComeFromZippedBundle(t *testing.T) {
	svc, _, _ := observedService(t)
	c, imgs := archiveCourse()

	p, err := svc.Export(context.Background(), Request{Format: FormatLMS, Course: c, Images: imgs})
	require.NoError(t, err)
	names, _ := readZip(t, p.Data)
	assert.Equal(t, names, p.Files)

	// A replaced assembler with its own layout is listed as written.
	svc.Register(BundleExporterFunc{F: FormatSite, Fn: func(context.Context, Request) (*Bundle, error) {
		b := newBundle(FormatSite, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, b.Add("pages/uno.html", []byte("<p>1</p>")))
		require.NoError(t, b.Add("LEEME.txt", []byte("hola")))
		return b, nil
	}})
	p, err = svc.Export(context.Background(), Request{Format: FormatSite, Course: c})
	require.NoError(t, err)
	assert.Equal(t, []string{"pages/uno.html", "LEEME.txt"}, p.Files)
	names, _ = readZip(t, p.Data)
	assert.Equal(t, names, p.Files)

	p, err = svc.Export(context.Background(), Request{Format: FormatMarkdown, Course: c})
	require.NoError(t, err)
	assert.Nil(t, p.Files)
}

func TestService_UnknownFormat(t *testing.T) {
	svc, _, _ := observedService(t)
	c, _ := archiveCourse()

	_, err := svc.Export(context.Background(), Request{Format: "pdf", Course: c})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestService_ModuleIndexChecked(t *testing.T) {
	svc, _, n := observedService(t)
	c, _ := archiveCourse()

	_, err := svc.ExportAndSave(context.Background(), Request{Format: FormatModuleHTML, Course: c, Module: 5}, &spySaver{})
	assert.ErrorIs(t, err, ErrModuleIndex)
	require.Len(t, n.notices, 1)
	assert.Equal(t, DefaultLabels().ExportFailed, n.notices[0].msg)
}

func TestService_ConcurrentExports(t *testing.T) {
	svc, _, _ := observedService(t)
	c, imgs := archiveCourse()

	want, err := svc.Export(context.Background(), Request{Format: FormatLMS, Course: c, Images: imgs})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.Export(context.Background(), Request{Format: FormatLMS, Course: c, Images: imgs})
			if err == nil {
				results[i] = p.Data
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want.Data, got)
	}
}

func TestService_Formats(t *testing.T) {
	svc, _, _ := observedService(t)
	assert.Len(t, svc.Formats(), len(CourseFormats)+len(ModuleFormats))
}

// =============================================================================
// SAVERS
// =============================================================================

func TestFileSaver_PicksFreeName(t *testing.T) {
	dir := t.TempDir()
	s := &FileSaver{Dir: dir}
	p := &Payload{Name: "curso.md", Format: FormatMarkdown, Data: []byte("# Curso\n")}

	first, err := s.Save(context.Background(), p)
	require.NoError(t, err)
	second, err := s.Save(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "curso.md"), first)
	assert.Equal(t, filepath.Join(dir, "curso-2.md"), second)
}

func TestFileSaver_Overwrite(t *testing.T) {
	dir := t.TempDir()
	s := &FileSaver{Dir: dir, Overwrite: true}

	_, err := s.Save(context.Background(), &Payload{Name: "c.md", Data: []byte("a")})
	require.NoError(t, err)
	loc, err := s.Save(context.Background(), &Payload{Name: "c.md", Data: []byte("b")})
	require.NoError(t, err)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}

func TestClipboardSaver(t *testing.T) {
	var copied string
	s := &ClipboardSaver{write: func(text string) error {
		copied = text
		return nil
	}}

	loc, err := s.Save(context.Background(), &Payload{Format: FormatMarkdown, Data: []byte("# Curso")})
	require.NoError(t, err)
	assert.Equal(t, "clipboard", loc)
	assert.Equal(t, "# Curso", copied)

	_, err = s.Save(context.Background(), &Payload{Format: FormatSite, Data: []byte("PK")})
	assert.ErrorIs(t, err, ErrClipboardBinary)
}

func TestWriterSaver(t *testing.T) {
	var buf bytes.Buffer
	s := &WriterSaver{W: &buf}

	loc, err := s.Save(context.Background(), &Payload{Data: []byte(`{"title":"x"}`)})
	require.NoError(t, err)
	assert.Equal(t, "stdout", loc)
	assert.Equal(t, `{"title":"x"}`, buf.String())
}

func TestInstructionsFor(t *testing.T) {
	site, ok := InstructionsFor(FormatSite)
	require.True(t, ok)
	assert.NotEmpty(t, site.Steps)

	_, ok = InstructionsFor(FormatLMS)
	assert.True(t, ok)

	_, ok = InstructionsFor(FormatMarkdown)
	assert.False(t, ok)
}
