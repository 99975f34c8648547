// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"cogentcore.org/meshio/base/iox/imagex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrLengthMismatch, ErrMalformedContainer))
	assert.False(t, errors.Is(ErrMalformedContainer, ErrLengthMismatch))

	err := LineError("obj", 12, Errorf(ErrInvalidIndex, "vertex %d out of range", 11))
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, "obj: line 12: invalid index: vertex 11 out of range", err.Error())

	oerr := OffsetError("3ds", 1024, ErrLengthMismatch)
	assert.ErrorIs(t, oerr, ErrMalformedContainer)
	assert.Contains(t, oerr.Error(), "offset 1024")

	var ce *Error
	located := Located("obj", 3, -1, ErrMalformedRecord)
	require.True(t, errors.As(located, &ce))
	assert.Equal(t, 3, ce.Line)
	assert.Same(t, err, Located("ply", 1, -1, err))
	assert.NoError(t, Located("obj", 1, -1, nil))
}

func TestNotices(t *testing.T) {
	ns := &Notices{}
	ns.Unsupported("stl", "lights are not written")
	ns.Skipped("obj", LineError("obj", 7, Errorf(ErrInvalidIndex, "bad face")))
	assert.Equal(t, 2, ns.Len())
	assert.Equal(t, 1, ns.Count(ErrInvalidIndex))
	assert.Equal(t, 1, ns.Count(ErrUnsupportedFeature))
	assert.Equal(t, 7, ns.List[1].Line)
	assert.Equal(t, "obj: line 7: invalid index: bad face", ns.List[1].String())

	var nilNotices *Notices
	nilNotices.Unsupported("stl", "no crash")
	assert.Equal(t, 0, nilNotices.Len())
}

func TestMemFiles(t *testing.T) {
	fs := MemFiles{}
	w, err := fs.Create("cube.mtl")
	require.NoError(t, err)
	_, err = io.WriteString(w, "newmtl red\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, []string{"cube.mtl"}, fs.Names())

	r, err := fs.Open("cube.mtl")
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "newmtl red\n", string(b))

	_, err = fs.Open("missing.mtl")
	assert.Error(t, err)
}

func TestDirFiles(t *testing.T) {
	dir := t.TempDir()
	fs := DirFiles(dir)
	w, err := fs.Create("tex.png")
	require.NoError(t, err)
	_, err = w.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	r, err := fs.Open("tex.png")
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)
}

func TestOptions(t *testing.T) {
	var o *Options
	assert.False(t, o.Ignore())
	assert.False(t, o.Smooth())
	assert.Nil(t, o.Notes())
	assert.Equal(t, "scene", o.BaseName("scene"))
	bk := o.Baking()
	assert.Equal(t, 256, bk.Width)
	assert.Equal(t, 2, bk.Quality)
	assert.Equal(t, imagex.PNG, bk.Format)

	po := o.ForPath(filepath.Join("models", "cube.obj"))
	assert.Equal(t, "cube", po.Name)
	assert.Equal(t, DirFiles("models"), po.Files)

	o = &Options{IgnoreErrors: true, SmoothUngrouped: true, Bake: BakeOptions{Quality: 9}}
	assert.True(t, o.Ignore())
	assert.True(t, o.Smooth())
	assert.Equal(t, 4, o.Baking().Quality)
}
