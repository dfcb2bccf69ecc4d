// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"

	"github.com/jeranaias/curriculumlab/internal/course"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNilCourse is returned when no course was supplied.
	ErrNilCourse = errors.New("export: nil course")
	// ErrMissingModules is returned when the modules field is absent. An
	// empty module list is valid.
	ErrMissingModules = course.ErrMissingModules
	// ErrUnknownFormat is returned for unsupported format names.
	ErrUnknownFormat = errors.New("export: unknown format")
	// ErrModuleIndex is returned for a module position outside the course.
	ErrModuleIndex = errors.New("export: module index out of range")
	// ErrArchive is the class of every bundle construction failure.
	ErrArchive = errors.New("export: archive construction failed")
	// ErrClipboardBinary is returned when a zip payload is sent to the clipboard.
	ErrClipboardBinary = errors.New("export: binary payload cannot be copied to the clipboard")
)

// ArchiveError reports a failed site or LMS bundle. No partial archive is
// ever returned alongside it.
type ArchiveError struct {
	Format Format
	Err    error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%s archive: %v", e.Format, e.Err)
}

// Unwrap exposes both the ErrArchive class and the cause.
func (e *ArchiveError) Unwrap() []error {
	return []error{ErrArchive, e.Err}
}
