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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

/*
Locator resolves a macro program's name to its source text. Modelled
on the teacher's util.ECALImportLocator: a macro reference is resolved
the same way an ECAL import is, just one level simpler (a name, not a
path expression).
*/
type Locator interface {
	Resolve(name string) (string, error)
}

/*
MemoryLocator holds a fixed set of macro sources in memory.
*/
type MemoryLocator struct {
	Programs map[string]string
}

/*
Resolve looks name up in Programs.
*/
func (l *MemoryLocator) Resolve(name string) (string, error) {
	src, ok := l.Programs[name]
	if !ok {
		return "", fmt.Errorf("could not find macro program: %v", name)
	}
	return src, nil
}

/*
FileLocator looks for "<name>.while" files under Root.
*/
type FileLocator struct {
	Root string
}

/*
Resolve reads "<name>.while" from Root, refusing to escape it.
*/
func (l *FileLocator) Resolve(name string) (string, error) {
	path := filepath.Clean(filepath.Join(l.Root, name+".while"))

	ok, err := isSubpath(l.Root, path)
	if err == nil && !ok {
		err = fmt.Errorf("macro program path is outside of the root: %v", name)
	}
	if err != nil {
		return "", err
	}

	b, err := ioutil.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not load macro program %v: %v", name, err)
	}
	return string(b), nil
}

func isSubpath(root, sub string) (bool, error) {
	rel, err := filepath.Rel(root, sub)
	return err == nil &&
		!strings.HasPrefix(rel, fmt.Sprintf("..%v", string(os.PathSeparator))) &&
		rel != "..", err
}
