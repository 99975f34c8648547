// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Names assigns unique identifiers to resources, by identity: the
// same key always gets the same name, and different keys never share one.
type Names struct {
	byKey map[any]string
	used  map[string]bool
}

// NewNames returns a new empty name table.
func NewNames() *Names {
	return &Names{byKey: map[any]string{}, used: map[string]bool{}}
}

// Name returns the identifier of the key, assigning one derived from
// want on first use. def is used when want folds to nothing.
func (nm *Names) Name(key any, want, def string) string {
	if n, ok := nm.byKey[key]; ok {
		return n
	}
	base := Identifier(want)
	if base == "" {
		base = def
	}
	n := base
	for i := 1; nm.used[n]; i++ {
		n = fmt.Sprintf("%s_%d", base, i)
	}
	nm.used[n] = true
	nm.byKey[key] = n
	return n
}

// Lookup returns the identifier already assigned to the key.
func (nm *Names) Lookup(key any) (string, bool) {
	n, ok := nm.byKey[key]
	return n, ok
}

// Len returns the number of names assigned.
func (nm *Names) Len() int {
	return len(nm.byKey)
}

// Identifier folds s to an ASCII identifier: accents are removed,
// other characters that are not letters, digits or '_' become '_',
// and a leading digit gets a '_' prefix.
func Identifier(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	f, _, err := transform.String(t, s)
	if err != nil {
		f = s
	}
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, f)
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	return id
}

// Cache records the resources already written, by identity.
type Cache[K comparable, V any] struct {
	m map[K]V
}

// Get returns the value recorded for the key.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	v, ok := c.m[k]
	return v, ok
}

// Set records the value for the key.
func (c *Cache[K, V]) Set(k K, v V) {
	if c.m == nil {
		c.m = make(map[K]V)
	}
	c.m[k] = v
}

// Has returns whether the key has been recorded.
func (c *Cache[K, V]) Has(k K) bool {
	_, ok := c.m[k]
	return ok
}

// Len returns the number of recorded keys.
func (c *Cache[K, V]) Len() int {
	return len(c.m)
}

// SideFile is a side file being written, such as a material library.
type SideFile struct {
	Name string
	io.WriteCloser
}
