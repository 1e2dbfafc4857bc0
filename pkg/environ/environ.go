// Package environ provides an explicit environment mapping that is passed
// between loaders and collectors instead of mutating the process environment.
package environ

import (
	"os"
	"sort"
	"strings"
)

// Source records where a variable came from.
type Source string

const (
	SourceAmbient Source = "ambient"
	SourceFile    Source = "file"
)

// Env is a key/value environment with per-key provenance.
type Env struct {
	vars   map[string]string
	origin map[string]Source
}

// New returns an empty environment.
func New() *Env {
	return &Env{
		vars:   make(map[string]string),
		origin: make(map[string]Source),
	}
}

// FromOS snapshots the current process environment.
func FromOS() *Env {
	return FromList(os.Environ())
}

// FromList builds an environment from KEY=VALUE strings as returned by
// os.Environ. Entries without '=' are ignored; the first occurrence of a key
// wins.
func FromList(list []string) *Env {
	env := New()
	for _, kv := range list {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env.SetDefault(key, value, SourceAmbient)
	}
	return env
}

// Lookup returns the value for key. An empty value still reports ok.
func (e *Env) Lookup(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

// Get returns the value for key, or "" when unset.
func (e *Env) Get(key string) string {
	return e.vars[key]
}

// SetDefault stores value under key unless the key is already present.
// It reports whether the value was stored.
func (e *Env) SetDefault(key, value string, source Source) bool {
	if _, exists := e.vars[key]; exists {
		return false
	}
	e.vars[key] = value
	e.origin[key] = source
	return true
}

// SourceOf returns the source of key and whether it is set.
func (e *Env) SourceOf(key string) (Source, bool) {
	s, ok := e.origin[key]
	return s, ok
}

// Len returns the number of variables.
func (e *Env) Len() int {
	return len(e.vars)
}

// Keys returns all keys in sorted order.
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (e *Env) Clone() *Env {
	c := New()
	for k, v := range e.vars {
		c.vars[k] = v
		c.origin[k] = e.origin[k]
	}
	return c
}
