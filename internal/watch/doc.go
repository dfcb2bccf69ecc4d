// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch re-runs an action whenever a course file (or its image
// directory) changes on disk.
//
// Bursts of file system events are coalesced: the action runs once the
// watched paths have been quiet for the debounce interval.
//
// # Usage
//
//	w, err := watch.New(watch.Config{
//	    Paths:    []string{"course.yaml", "images"},
//	    Debounce: 300 * time.Millisecond,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.Run(ctx, func(ctx context.Context) error {
//	    return reexport(ctx)
//	})
package watch
