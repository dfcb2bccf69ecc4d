// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging wraps a zap SugaredLogger with key/value helpers.
//
//	log, err := logging.New("dev", "info")
//	if err != nil {
//	    return err
//	}
//	defer log.Sync()
//	log.Info("export finished", "format", "site", "files", 4)
package logging
