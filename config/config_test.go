/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package config

import "testing"

func resetConfig() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}
	Config = data
}

func TestDefaultsAreFalsePureAndUnbounded(t *testing.T) {
	resetConfig()

	if Bool(PureOnly) {
		t.Errorf("expected PureOnly to default to false")
	}
	if Str(PadFormat) != "pure" {
		t.Errorf("expected PadFormat to default to 'pure', got %q", Str(PadFormat))
	}
	if Str(PadIndent) != "  " {
		t.Errorf("expected PadIndent to default to two spaces, got %q", Str(PadIndent))
	}
	if Int(MaxSteps) != 0 {
		t.Errorf("expected MaxSteps to default to 0 (unbounded), got %d", Int(MaxSteps))
	}
}

func TestConfigOverride(t *testing.T) {
	resetConfig()

	Config[PureOnly] = true
	Config[MaxSteps] = 1000

	if !Bool(PureOnly) {
		t.Errorf("expected PureOnly override to stick")
	}
	if Int(MaxSteps) != 1000 {
		t.Errorf("expected MaxSteps override to stick, got %d", Int(MaxSteps))
	}
}

func TestStrFormatsNonStringValues(t *testing.T) {
	resetConfig()

	Config[MaxSteps] = 42
	if Str(MaxSteps) != "42" {
		t.Errorf("expected Str to format an int config value, got %q", Str(MaxSteps))
	}
}
