/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package program

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryLocatorResolvesKnownProgram(t *testing.T) {
	loc := &MemoryLocator{Programs: map[string]string{"sq": "sq read N { M := N } write M"}}

	src, err := loc.Resolve("sq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src == "" {
		t.Errorf("expected a non-empty source")
	}
}

func TestMemoryLocatorFailsOnUnknownProgram(t *testing.T) {
	loc := &MemoryLocator{Programs: map[string]string{}}

	if _, err := loc.Resolve("missing"); err == nil {
		t.Fatalf("expected an error resolving an unknown program")
	}
}

func TestFileLocatorResolvesFileUnderRoot(t *testing.T) {
	dir, err := ioutil.TempDir("", "while-locator")
	if err != nil {
		t.Fatalf("unexpected error creating temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	src := "sq read N { M := N } write M"
	if err := ioutil.WriteFile(filepath.Join(dir, "sq.while"), []byte(src), 0644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}

	loc := &FileLocator{Root: dir}
	got, err := loc.Resolve("sq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != src {
		t.Errorf("expected file contents to round-trip, got %q", got)
	}
}

func TestFileLocatorRejectsEscapingPaths(t *testing.T) {
	dir, err := ioutil.TempDir("", "while-locator")
	if err != nil {
		t.Fatalf("unexpected error creating temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	loc := &FileLocator{Root: dir}
	if _, err := loc.Resolve("../etc/passwd"); err == nil {
		t.Fatalf("expected an error resolving a path that escapes the root")
	}
}

func TestFileLocatorFailsOnMissingFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "while-locator")
	if err != nil {
		t.Fatalf("unexpected error creating temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	loc := &FileLocator{Root: dir}
	if _, err := loc.Resolve("missing"); err == nil {
		t.Fatalf("expected an error resolving a nonexistent file")
	}
}
