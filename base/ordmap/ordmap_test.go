// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	var om Map[string, int]
	om.Add("red", 1)
	om.Add("green", 2)
	om.Add("blue", 3)
	om.Add("green", 20)

	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"red", "green", "blue"}, om.Keys())
	v, ok := om.ValueByKeyTry("green")
	assert.True(t, ok)
	assert.Equal(t, 20, v)
	_, ok = om.ValueByKeyTry("cyan")
	assert.False(t, ok)

	var keys []string
	for k := range om.All() {
		keys = append(keys, k)
		if k == "green" {
			break
		}
	}
	assert.Equal(t, []string{"red", "green"}, keys)

	assert.Equal(t, 0, New[string, int]().Len())

	var nilMap *Map[string, int]
	assert.Equal(t, 0, nilMap.Len())
	assert.Empty(t, nilMap.Keys())
	_, ok = nilMap.ValueByKeyTry("x")
	assert.False(t, ok)
}
