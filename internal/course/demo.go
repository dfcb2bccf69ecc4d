// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package course

import (
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the demonstration course used by the read-only publication
// mode. Each call returns a fresh copy.
func Demo() *Course {
	c, err := Parse(demoYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("course: embedded demo course is invalid: %v", err))
	}
	return c
}
