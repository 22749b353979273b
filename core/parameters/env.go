/*
Package parameters holds the variable environment of a document.

Variables are set by assignments in the markup (`@NAME=value`), on the
command line, or by the system itself (THOT_FILE, THOT_VERSION, …).
Environments are grouped: an included file opens a group, and variables
pushed within the group are restored when the group ends.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import "sort"

// Well-known variables
const (
	THOT_VERSION  = "THOT_VERSION"
	THOT_FILE     = "THOT_FILE"
	THOT_OUT_TYPE = "THOT_OUT_TYPE"
	THOT_USE_PATH = "THOT_USE_PATH"
	THOT_BASE     = "THOT_BASE"
	ENCODING      = "ENCODING"
	TITLE         = "TITLE"
	AUTHORS       = "AUTHORS"
	LANG          = "LANG"
	TOC           = "TOC"
)

type group struct {
	vars  map[string]string
	level int
	next  *group
}

// Env is a grouped variable environment.
type Env struct {
	base       map[string]string
	groups     *group
	grouplevel int
}

// NewEnv creates an environment with the given base variables.
func NewEnv(initial map[string]string) *Env {
	env := &Env{base: make(map[string]string, len(initial))}
	for k, v := range initial {
		env.base[k] = v
	}
	return env
}

// Begingroup opens a group. Variables pushed after this call are forgotten
// with the matching Endgroup.
func (env *Env) Begingroup() {
	env.grouplevel++
}

// Endgroup closes the innermost group.
func (env *Env) Endgroup() {
	if env.grouplevel == 0 {
		return
	}
	if env.groups != nil && env.groups.level == env.grouplevel {
		env.groups = env.groups.next
	}
	env.grouplevel--
}

// Push sets a variable in the current group.
func (env *Env) Push(key, value string) {
	if env.grouplevel == 0 {
		env.base[key] = value
		return
	}
	g := env.groups
	if g == nil || g.level < env.grouplevel {
		g = &group{vars: make(map[string]string), level: env.grouplevel, next: env.groups}
		env.groups = g
	}
	g.vars[key] = value
}

// Set sets a variable globally, outliving any open group.
func (env *Env) Set(key, value string) {
	for g := env.groups; g != nil; g = g.next {
		delete(g.vars, key)
	}
	env.base[key] = value
}

// Lookup returns a variable's value, searching from the innermost group outwards.
func (env *Env) Lookup(key string) (string, bool) {
	for g := env.groups; g != nil; g = g.next {
		if v, ok := g.vars[key]; ok {
			return v, true
		}
	}
	v, ok := env.base[key]
	return v, ok
}

// Get returns a variable's value or "".
func (env *Env) Get(key string) string {
	v, _ := env.Lookup(key)
	return v
}

// GetOr returns a variable's value or a default.
func (env *Env) GetOr(key, deflt string) string {
	if v, ok := env.Lookup(key); ok {
		return v
	}
	return deflt
}

// Keys returns all visible variable names, sorted.
func (env *Env) Keys() []string {
	seen := make(map[string]bool, len(env.base))
	for k := range env.base {
		seen[k] = true
	}
	for g := env.groups; g != nil; g = g.next {
		for k := range g.vars {
			seen[k] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns the visible variables as a map.
func (env *Env) Snapshot() map[string]string {
	m := make(map[string]string)
	for _, k := range env.Keys() {
		m[k] = env.Get(k)
	}
	return m
}
