// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package library

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/curriculumlab/internal/course"
)

func openTest(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

// clock returns a fake clock advancing one minute per call.
func clock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Minute)
		return t
	}
}

func TestSaveGet_RoundTrip(t *testing.T) {
	lib := openTest(t)
	ctx := context.Background()
	c := course.Demo()

	id, err := lib.Save(ctx, c)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	entry, err := lib.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
	if diff := cmp.Diff(c, entry.Course); diff != "" {
		t.Errorf("stored course differs (-want +got):\n%s", diff)
	}
}

func TestSave_RejectsMissingModules(t *testing.T) {
	lib := openTest(t)
	_, err := lib.Save(context.Background(), &course.Course{Title: "x"})
	assert.ErrorIs(t, err, course.ErrMissingModules)
}

func TestSave_EmptyModulesAllowed(t *testing.T) {
	lib := openTest(t)
	ctx := context.Background()

	id, err := lib.Save(ctx, &course.Course{Title: "Vacío", Modules: []course.Module{}})
	require.NoError(t, err)

	entry, err := lib.Get(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, entry.Course.Modules)
	assert.Empty(t, entry.Course.Modules)
}

func TestGet_ByPrefix(t *testing.T) {
	lib := openTest(t)
	ctx := context.Background()

	id, err := lib.Save(ctx, course.Demo())
	require.NoError(t, err)

	entry, err := lib.Get(ctx, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
}

func TestGet_NotFound(t *testing.T) {
	lib := openTest(t)
	ctx := context.Background()

	_, err := lib.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = lib.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = lib.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	// Wildcards are matched literally.
	_, err = lib.Get(ctx, "%")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	lib := openTest(t)
	lib.now = clock()
	ctx := context.Background()

	first, err := lib.Save(ctx, &course.Course{Title: "Primero", Modules: []course.Module{{ID: 1}}})
	require.NoError(t, err)
	second, err := lib.Save(ctx, &course.Course{Title: "Segundo", Modules: []course.Module{{ID: 1}, {ID: 2}}})
	require.NoError(t, err)

	metas, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, second, metas[0].ID)
	assert.Equal(t, 2, metas[0].ModuleCount)
	assert.Equal(t, first, metas[1].ID)

	// Touching the first course moves it to the top.
	require.NoError(t, lib.SetImage(ctx, first, 1, "https://example.com/a.png"))
	metas, err = lib.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, metas[0].ID)
	assert.Equal(t, 1, metas[0].ImageCount)
}

func TestUpdate(t *testing.T) {
	lib := openTest(t)
	lib.now = clock()
	ctx := context.Background()

	id, err := lib.Save(ctx, course.Demo())
	require.NoError(t, err)

	c := course.Demo()
	c.Title = "Renombrado"
	require.NoError(t, lib.Update(ctx, id, c))

	entry, err := lib.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", entry.Course.Title)
	assert.True(t, entry.UpdatedAt.After(entry.CreatedAt))
}

func TestImages(t *testing.T) {
	lib := openTest(t)
	ctx := context.Background()

	id, err := lib.Save(ctx, course.Demo())
	require.NoError(t, err)

	imgs, err := lib.Images(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, imgs)

	require.NoError(t, lib.SetImages(ctx, id, course.ImageMap{0: "data:image/png;base64,AA==", 7: "  ", 12: "https://x/y.png"}))
	require.NoError(t, lib.SetImage(ctx, id, 0, "https://x/z.png"))

	imgs, err = lib.Images(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, course.ImageMap{0: "https://x/z.png", 12: "https://x/y.png"}, imgs)

	require.NoError(t, lib.SetImage(ctx, id, 12, ""))
	imgs, err = lib.Images(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, course.ImageMap{0: "https://x/z.png"}, imgs)
}

func TestDelete_CascadesImages(t *testing.T) {
	lib := openTest(t)
	ctx := context.Background()

	id, err := lib.Save(ctx, course.Demo())
	require.NoError(t, err)
	require.NoError(t, lib.SetImage(ctx, id, 1, "https://x/y.png"))

	require.NoError(t, lib.Delete(ctx, id))
	_, err = lib.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	var n int
	require.NoError(t, lib.db.QueryRow("SELECT COUNT(*) FROM images").Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, lib.Delete(ctx, id), ErrNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.db")

	lib, err := Open(ctx, path)
	require.NoError(t, err)
	id, err := lib.Save(ctx, course.Demo())
	require.NoError(t, err)
	require.NoError(t, lib.Close())

	lib, err = Open(ctx, path)
	require.NoError(t, err)
	defer lib.Close()

	_, err = lib.Get(ctx, id)
	assert.NoError(t, err)
}

func TestConcurrentSaves(t *testing.T) {
	lib := openTest(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lib.Save(ctx, course.Demo())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	metas, err := lib.List(ctx)
	require.NoError(t, err)
	assert.Len(t, metas, 8)
}
