/*
 * WHILE
 *
 * Copyright 2024 The WHILE Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package namespace

import "sort"

/*
DefaultNamespace is used whenever a caller does not supply one.
*/
const DefaultNamespace = "default"

/*
nameRef is the inverse-lookup payload: which old name, in which
namespace, a fresh name was minted for.
*/
type nameRef struct {
	old string
	ns  string
}

/*
Manager maintains the bijection old-name <-> fresh-name, scoped by
namespace (C8). A default namespace is used whenever the caller omits
one. Fresh names are minted by an embedded Generator (C9); a second,
independent Generator mints namespace names.
*/
type Manager struct {
	varGen *Generator
	nsGen  *Generator

	forward  map[string]map[string]string // ns -> old -> fresh
	backward map[string]nameRef           // fresh -> (old, ns)
}

/*
NewManager creates an empty namespace manager.
*/
func NewManager() *Manager {
	return &Manager{
		varGen:   NewGenerator(1),
		nsGen:    NewGenerator(1),
		forward:  map[string]map[string]string{},
		backward: map[string]nameRef{},
	}
}

func resolveNamespace(ns string) string {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

/*
Exists reports whether old has a mapping in namespace ns.
*/
func (m *Manager) Exists(old, ns string) bool {
	ns = resolveNamespace(ns)
	_, ok := m.forward[ns][old]
	return ok
}

/*
NamespaceExists reports whether ns has any mappings at all.
*/
func (m *Manager) NamespaceExists(ns string) bool {
	ns = resolveNamespace(ns)
	_, ok := m.forward[ns]
	return ok
}

/*
Get returns the fresh name bound to old in namespace ns, if any.
*/
func (m *Manager) Get(old, ns string) (string, bool) {
	ns = resolveNamespace(ns)
	fresh, ok := m.forward[ns][old]
	return fresh, ok
}

/*
Add binds old to a fresh name in namespace ns. If newName is empty, a
name is minted via GetNextVarName. If a mapping already exists for
(old, ns), Add returns it unchanged unless force is true, in which
case the previous fresh name is released and replaced - spec §4.8:
"add returns the existing mapping on conflict unless force=true, which
replaces it."
*/
func (m *Manager) Add(old, ns, newName string, force bool) string {
	ns = resolveNamespace(ns)

	if existing, ok := m.forward[ns][old]; ok && !force {
		return existing
	} else if ok && force {
		delete(m.backward, existing)
	}

	if newName == "" {
		newName = m.GetNextVarName()
	}

	if m.forward[ns] == nil {
		m.forward[ns] = map[string]string{}
	}
	m.forward[ns][old] = newName
	m.backward[newName] = nameRef{old: old, ns: ns}

	return newName
}

/*
Delete removes the mapping for old in namespace ns, returning whether
a mapping existed.
*/
func (m *Manager) Delete(old, ns string) bool {
	ns = resolveNamespace(ns)

	fresh, ok := m.forward[ns][old]
	if !ok {
		return false
	}

	delete(m.forward[ns], old)
	delete(m.backward, fresh)

	if len(m.forward[ns]) == 0 {
		delete(m.forward, ns)
	}

	return true
}

/*
DeleteNamespace removes every mapping in ns.
*/
func (m *Manager) DeleteNamespace(ns string) {
	ns = resolveNamespace(ns)

	for _, fresh := range m.forward[ns] {
		delete(m.backward, fresh)
	}
	delete(m.forward, ns)
}

/*
Variables returns every fresh name currently registered, across all
namespaces, sorted for deterministic output (spec §5: "two consecutive
runs with identical inputs produce byte-identical outputs").
*/
func (m *Manager) Variables() []string {
	names := make([]string, 0, len(m.backward))
	for fresh := range m.backward {
		names = append(names, fresh)
	}
	sort.Strings(names)
	return names
}

/*
Namespaces returns every namespace with at least one mapping, sorted.
*/
func (m *Manager) Namespaces() []string {
	names := make([]string, 0, len(m.forward))
	for ns := range m.forward {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

/*
GetNewNamespace returns a namespace name that is not yet in use,
minting one from the dedicated namespace generator. Used when the
macro's own name is already taken as a namespace (spec §4.10 step 1).
*/
func (m *Manager) GetNewNamespace() string {
	for {
		candidate := m.nsGen.Next(true)
		if !m.NamespaceExists(candidate) {
			return candidate
		}
	}
}

/*
GetNextVarName mints and returns the next fresh variable name from the
shared generator, without binding it to anything.
*/
func (m *Manager) GetNextVarName() string {
	return m.varGen.Next(true)
}

/*
GetNextVarNameAvoiding mints a fresh variable name the same way
GetNextVarName does, skipping past any candidate present in avoid -
the same loop-until-available idiom GetNewNamespace already uses for
namespace names. Used when renaming a whole set of variables at once
(spec §4.10 step 3), so that a fresh name minted early in the batch can
never collide with one of the batch's own names that has not been
renamed away yet.
*/
func (m *Manager) GetNextVarNameAvoiding(avoid map[string]bool) string {
	for {
		candidate := m.GetNextVarName()
		if !avoid[candidate] {
			return candidate
		}
	}
}
