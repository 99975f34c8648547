// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap implements a generic map that remembers the order in
// which keys were first added. Material libraries use it so that
// materials are written in declaration order.
package ordmap

import "iter"

// KeyValue is a key and its value.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an ordered map. The zero value is an empty map ready to use,
// and a nil *Map reads as empty.
type Map[K comparable, V any] struct {

	// Order has the entries in the order their keys were first added.
	Order []KeyValue[K, V]

	// Map has the index in Order of each key.
	Map map[K]int
}

// New returns a new empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{Map: map[K]int{}}
}

// Add sets the value of the key. A new key goes to the end of the
// order; an existing key keeps its position.
func (om *Map[K, V]) Add(key K, val V) {
	if om.Map == nil {
		om.Map = map[K]int{}
	}
	if i, ok := om.Map[key]; ok {
		om.Order[i].Value = val
		return
	}
	om.Map[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{key, val})
}

// ValueByKeyTry returns the value of the key and whether it is present.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if om == nil {
		var zv V
		return zv, false
	}
	i, ok := om.Map[key]
	if !ok {
		var zv V
		return zv, false
	}
	return om.Order[i].Value, true
}

// Len returns the number of entries.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Keys returns the keys in order.
func (om *Map[K, V]) Keys() []K {
	keys := make([]K, om.Len())
	for i := range keys {
		keys[i] = om.Order[i].Key
	}
	return keys
}

// All returns an iterator over the entries in order.
func (om *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if om == nil {
			return
		}
		for _, kv := range om.Order {
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}
