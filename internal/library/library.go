// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/curriculumlab/internal/course"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound      = errors.New("course not found")
	ErrAmbiguousID   = errors.New("ambiguous course id prefix")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// LIBRARY
// =============================================================================

// Entry is a stored course.
type Entry struct {
	ID        string
	Course    *course.Course
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Meta summarizes a stored course without decoding its document.
type Meta struct {
	ID          string
	Title       string
	ModuleCount int
	ImageCount  int
	UpdatedAt   time.Time
}

// Library is a SQLite-backed course store. It is safe for concurrent use.
type Library struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and creates if needed) the library database at path.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Library, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	lib := &Library{db: db, now: time.Now}
	if err := lib.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return lib, nil
}

func (l *Library) initSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, Schema); err != nil {
		return err
	}
	_, err := l.db.ExecContext(ctx, InitMetadata)
	return err
}

// Close releases the database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save stores a new course and returns its ID.
func (l *Library) Save(ctx context.Context, c *course.Course) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode course: %w", err)
	}

	id := uuid.NewString()
	ts := l.now().Unix()
	_, err = l.db.ExecContext(ctx, `
		INSERT INTO courses (id, title, module_count, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, c.Title, len(c.Modules), string(doc), ts, ts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return id, nil
}

// Update replaces the document of an existing course.
func (l *Library) Update(ctx context.Context, id string, c *course.Course) error {
	if err := c.Validate(); err != nil {
		return err
	}
	id, err := l.Resolve(ctx, id)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode course: %w", err)
	}
	_, err = l.db.ExecContext(ctx, `
		UPDATE courses SET title = ?, module_count = ?, document = ?, updated_at = ?
		WHERE id = ?
	`, c.Title, len(c.Modules), string(doc), l.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Resolve expands a full ID or a unique ID prefix to a full ID.
func (l *Library) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNotFound
	}
	if _, err := uuid.Parse(ref); err == nil {
		var id string
		err := l.db.QueryRowContext(ctx, "SELECT id FROM courses WHERE id = ?", ref).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		return id, nil
	}

	rows, err := l.db.QueryContext(ctx, "SELECT id FROM courses WHERE substr(id, 1, ?) = ? LIMIT 2", len(ref), ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
	}
}

// Get loads a stored course by ID or unique ID prefix.
func (l *Library) Get(ctx context.Context, ref string) (*Entry, error) {
	id, err := l.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	var (
		doc              string
		created, updated int64
	)
	err = l.db.QueryRowContext(ctx,
		"SELECT document, created_at, updated_at FROM courses WHERE id = ?", id,
	).Scan(&doc, &created, &updated)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	c, err := course.Parse([]byte(doc), course.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("stored course %s: %w", id, err)
	}
	return &Entry{
		ID:        id,
		Course:    c,
		CreatedAt: time.Unix(created, 0),
		UpdatedAt: time.Unix(updated, 0),
	}, nil
}

// List returns every stored course, most recently updated first.
func (l *Library) List(ctx context.Context) ([]Meta, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.module_count, c.updated_at,
		       (SELECT COUNT(*) FROM images i WHERE i.course_id = c.id)
		FROM courses c
		ORDER BY c.updated_at DESC, c.title ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var (
			m       Meta
			updated int64
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.ModuleCount, &updated, &m.ImageCount); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		m.UpdatedAt = time.Unix(updated, 0)
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return metas, nil
}

// Delete removes a course and its images.
func (l *Library) Delete(ctx context.Context, ref string) error {
	id, err := l.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	if _, err := l.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// =============================================================================
// IMAGES
// =============================================================================

// SetImage stores the image of one module reference. An empty payload
// removes it.
func (l *Library) SetImage(ctx context.Context, ref string, moduleRef int, payload string) error {
	id, err := l.Resolve(ctx, ref)
	if err != nil {
		return err
	}

	if strings.TrimSpace(payload) == "" {
		_, err = l.db.ExecContext(ctx,
			"DELETE FROM images WHERE course_id = ? AND module_ref = ?", id, moduleRef)
	} else {
		_, err = l.db.ExecContext(ctx, `
			INSERT INTO images (course_id, module_ref, payload) VALUES (?, ?, ?)
			ON CONFLICT(course_id, module_ref) DO UPDATE SET payload = excluded.payload
		`, id, moduleRef, payload)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	_, err = l.db.ExecContext(ctx, "UPDATE courses SET updated_at = ? WHERE id = ?", l.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// SetImages stores several images in one transaction.
func (l *Library) SetImages(ctx context.Context, ref string, imgs course.ImageMap) error {
	id, err := l.Resolve(ctx, ref)
	if err != nil {
		return err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	for moduleRef, payload := range imgs {
		if strings.TrimSpace(payload) == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO images (course_id, module_ref, payload) VALUES (?, ?, ?)
			ON CONFLICT(course_id, module_ref) DO UPDATE SET payload = excluded.payload
		`, id, moduleRef, payload)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "UPDATE courses SET updated_at = ? WHERE id = ?", l.now().Unix(), id); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return tx.Commit()
}

// Images returns the stored images of a course. A course without images
// yields an empty map.
func (l *Library) Images(ctx context.Context, ref string) (course.ImageMap, error) {
	id, err := l.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx,
		"SELECT module_ref, payload FROM images WHERE course_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	imgs := course.ImageMap{}
	for rows.Next() {
		var (
			moduleRef int
			payload   string
		)
		if err := rows.Scan(&moduleRef, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		imgs[moduleRef] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return imgs, nil
}
