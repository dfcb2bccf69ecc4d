// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package library

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema is the SQLite schema of the course library.
const Schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Courses table: one row per stored course document
CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,          -- UUID
    title TEXT NOT NULL,
    module_count INTEGER NOT NULL,
    document TEXT NOT NULL,       -- Course JSON
    created_at INTEGER NOT NULL,  -- Unix timestamp
    updated_at INTEGER NOT NULL   -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_courses_updated_at ON courses(updated_at);

-- Images table: module illustrations keyed by module reference
CREATE TABLE IF NOT EXISTS images (
    course_id TEXT NOT NULL,
    module_ref INTEGER NOT NULL,  -- module ID or zero-based position
    payload TEXT NOT NULL,        -- data URI or URL
    PRIMARY KEY (course_id, module_ref),
    FOREIGN KEY(course_id) REFERENCES courses(id) ON DELETE CASCADE
);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`
