// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textio

import (
	"strings"
	"testing"

	"cogentcore.org/meshio/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# comment

v 1 2 3
f 1 2 \
  3 4
	vt	0.5 0.25
   # indented comment
g  cube  side
`

func TestScan(t *testing.T) {
	s := NewScanner(strings.NewReader(sample), "obj", nil)
	var lines []Line
	for s.Scan() {
		lines = append(lines, s.Line())
	}
	require.NoError(t, s.Err())
	require.Len(t, lines, 4)

	assert.Equal(t, Line{Num: 3, Keyword: "v", Rest: "1 2 3"}, lines[0])
	assert.Equal(t, 4, lines[1].Num)
	assert.Equal(t, "f", lines[1].Keyword)
	assert.Equal(t, []string{"1", "2", "3", "4"}, lines[1].Fields())
	assert.Equal(t, "vt", lines[2].Keyword)
	assert.Equal(t, "0.5 0.25", lines[2].Rest)
	assert.Equal(t, 8, lines[3].Num)
	assert.Equal(t, []string{"cube", "side"}, lines[3].Fields())
	assert.Equal(t, "g cube  side", lines[3].Text())
}

func TestNumbers(t *testing.T) {
	v, err := Floats([]string{"1", "-2.5", "1e3"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, -2.5, 1000}, v)

	_, err = Floats([]string{"1", "2"}, 3)
	assert.ErrorIs(t, err, codec.ErrMalformedRecord)
	_, err = Floats([]string{"1,5"}, 1)
	assert.ErrorIs(t, err, codec.ErrMalformedRecord)

	iv, err := Ints([]string{"3", "-1"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, -1}, iv)
	_, err = Int("x")
	assert.ErrorIs(t, err, codec.ErrMalformedRecord)
}

func TestFailPolicy(t *testing.T) {
	line := Line{Num: 5, Keyword: "f"}
	strict := NewScanner(strings.NewReader(""), "obj", nil)
	err := strict.Fail(line, codec.Errorf(codec.ErrInvalidIndex, "vertex 12 out of range"))
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrInvalidIndex)
	assert.Contains(t, err.Error(), "line 5")

	ns := &codec.Notices{}
	lax := NewScanner(strings.NewReader(""), "obj", &codec.Options{IgnoreErrors: true, Notices: ns})
	assert.NoError(t, lax.Fail(line, codec.Errorf(codec.ErrInvalidIndex, "vertex 12 out of range")))
	require.Equal(t, 1, ns.Len())
	assert.Equal(t, 5, ns.List[0].Line)
	assert.Equal(t, 1, ns.Count(codec.ErrInvalidIndex))

	lax.Unsupported(Line{Num: 9}, "keyword l")
	assert.Equal(t, 1, ns.Count(codec.ErrUnsupportedFeature))
}
