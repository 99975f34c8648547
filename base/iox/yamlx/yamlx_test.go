// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.yaml")
	v := &testStruct{Name: "bake", Width: 256}
	require.NoError(t, Save(v, fn))

	r := &testStruct{}
	require.NoError(t, Open(r, fn))
	assert.Equal(t, v, r)

	require.NoError(t, ReadBytes(r, []byte("name: cube\nwidth: 64\n")))
	assert.Equal(t, "cube", r.Name)
	assert.Equal(t, 64, r.Width)
}
