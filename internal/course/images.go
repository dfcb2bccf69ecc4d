// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package course

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// =============================================================================
// IMAGE MAP
// =============================================================================

// ImageMap associates a module reference with an image payload (a data URI
// or a URL). A reference is either a module ID or a zero-based position;
// both share one key space. A nil or empty map is valid.
type ImageMap map[int]string

// Resolve returns the image for the module at position idx. The module ID is
// tried first, then the position. Empty payloads count as absent.
func (m ImageMap) Resolve(mod Module, idx int) (string, bool) {
	if len(m) == 0 {
		return "", false
	}
	if src := strings.TrimSpace(m[mod.ID]); src != "" {
		return src, true
	}
	if src := strings.TrimSpace(m[idx]); src != "" {
		return src, true
	}
	return "", false
}

// Clone returns a copy of the map so callers can hand a snapshot to a
// long-running export.
func (m ImageMap) Clone() ImageMap {
	if m == nil {
		return nil
	}
	out := make(ImageMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// =============================================================================
// LOADING
// =============================================================================

// DataURI encodes raw image bytes as a data URI. The content type is sniffed
// from the bytes; anything that is not an image is rejected.
func DataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("unsupported image type %q", mt.String())
	}
	ct := mt.String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// LoadImageDir reads every file in dir whose base name (without extension)
// is an integer module reference, e.g. "1.png" or "02.jpg". Other files and
// subdirectories are ignored.
func LoadImageDir(dir string) (ImageMap, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}

	imgs := make(ImageMap)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		ref, err := strconv.Atoi(stem)
		if err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", name, err)
		}
		uri, err := DataURI(data)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", name, err)
		}
		imgs[ref] = uri
	}
	return imgs, nil
}
