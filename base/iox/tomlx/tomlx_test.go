// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name   string
	Width  int
	Strict bool
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.toml")
	v := &testStruct{Name: "bake", Width: 256, Strict: true}
	require.NoError(t, Save(v, fn))

	r := &testStruct{}
	require.NoError(t, Open(r, fn))
	assert.Equal(t, v, r)
}

func TestReadBytes(t *testing.T) {
	r := &testStruct{}
	require.NoError(t, ReadBytes(r, []byte("Name = 'cube'\nWidth = 64\n")))
	assert.Equal(t, "cube", r.Name)
	assert.Equal(t, 64, r.Width)

	b, err := WriteBytes(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Width = 64")
}
