// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/curriculumlab/internal/util"
)

// =============================================================================
// SAVERS
// =============================================================================

// Saver delivers a payload and returns where it went.
type Saver interface {
	Save(ctx context.Context, p *Payload) (string, error)
}

// FileSaver writes payloads into a directory.
type FileSaver struct {
	// Dir is the output directory, created when missing.
	Dir string
	// Overwrite replaces an existing file instead of picking a free name.
	Overwrite bool
	// Open opens the saved file in the default application.
	Open bool
	// OnOpenError receives failures to open the file. The file is saved
	// either way.
	OnOpenError func(path string, err error)
}

// Save writes p atomically. The temporary file is removed on failure.
func (s *FileSaver) Save(ctx context.Context, p *Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, p.Name)
	if !s.Overwrite {
		var err error
		if path, err = util.UniquePath(dir, p.Name); err != nil {
			return "", err
		}
	}

	if err := util.WriteFileAtomic(path, p.Data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if s.Open {
		if err := openFile(path); err != nil && s.OnOpenError != nil {
			s.OnOpenError(path, err)
		}
	}
	return path, nil
}

// ClipboardSaver copies text payloads to the system clipboard.
type ClipboardSaver struct {
	// write is replaced in tests.
	write func(string) error
}

// Save copies p. Archive payloads are rejected.
func (s *ClipboardSaver) Save(ctx context.Context, p *Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.IsBinary() {
		return "", ErrClipboardBinary
	}
	write := s.write
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(string(p.Data)); err != nil {
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	return "clipboard", nil
}

// WriterSaver streams payloads to a writer, typically stdout.
type WriterSaver struct {
	W    io.Writer
	Name string
}

// Save writes p to the writer.
func (s *WriterSaver) Save(ctx context.Context, p *Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := s.W.Write(p.Data); err != nil {
		return "", fmt.Errorf("write payload: %w", err)
	}
	name := s.Name
	if name == "" {
		name = "stdout"
	}
	return name, nil
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// Empty quoted title, then the path as the last argument.
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
