// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package library stores courses and their module images in a local SQLite
// database so they can be exported again later.
//
// Courses are kept as JSON documents keyed by a UUID. Images are kept per
// module reference, which is either a module ID or a zero-based position,
// matching course.ImageMap.
//
// # Usage
//
//	lib, err := library.Open(ctx, "library.db")
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	id, err := lib.Save(ctx, c)
//	entry, err := lib.Get(ctx, id)
//	imgs, err := lib.Images(ctx, id)
package library
