// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"iter"

	"cogentcore.org/meshio/base/ordmap"
)

// Library holds named material definitions in declaration order.
type Library struct {
	m ordmap.Map[string, *Material]
}

// NewLibrary returns a new empty library.
func NewLibrary() *Library {
	return &Library{}
}

// Add adds the material, replacing any with the same name.
func (lb *Library) Add(mt *Material) {
	lb.m.Add(mt.Name, mt)
}

// Get returns the named material.
func (lb *Library) Get(name string) (*Material, bool) {
	if lb == nil {
		return nil, false
	}
	return lb.m.ValueByKeyTry(name)
}

// Len returns the number of materials.
func (lb *Library) Len() int {
	if lb == nil {
		return 0
	}
	return lb.m.Len()
}

// All iterates over the materials in declaration order.
func (lb *Library) All() iter.Seq2[string, *Material] {
	if lb == nil {
		return func(func(string, *Material) bool) {}
	}
	return lb.m.All()
}

// Names returns the material names in declaration order.
func (lb *Library) Names() []string {
	if lb == nil {
		return nil
	}
	return lb.m.Keys()
}
