/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package config holds the toolchain-wide settings: whether to accept only
pure WHILE or also the extended dialect, which PAD text style and indent
to render with, and the cooperative step budget the interpreter (C7) may
enforce on a running program.
*/
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
)

/*
ProductVersion is the current version of this toolchain.
*/
const ProductVersion = "1.0.0"

/*
Known configuration options.
*/
const (
	// PureOnly restricts the lexer/parser to pure WHILE. Extended symbols
	// and numeric literals (=, [, <, digits) are reported as diagnostics;
	// the extended words true, false, switch, case and default are read
	// as ordinary identifiers.
	PureOnly = "PureOnly"

	// PadFormat selects the textual PAD rendering: "pure" (quoted tags)
	// or "hwhile" (@-prefixed tags).
	PadFormat = "PadFormat"

	// PadIndent is the per-level indent string FormatProgram uses when
	// laying out a PAD program's command lists.
	PadIndent = "PadIndent"

	// MaxSteps bounds how many work-stack steps the interpreter (C7) will
	// run before aborting with a step-limit error. 0 means unbounded.
	MaxSteps = "MaxSteps"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	PureOnly:  false,
	PadFormat: "pure",
	PadIndent: "  ",
	MaxSteps:  0,
}

/*
Config is the actual config which is used.
*/
var Config map[string]interface{}

/*
Initialise the config.
*/
func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
