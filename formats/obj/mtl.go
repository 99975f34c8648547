// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/textio"
	"github.com/mattn/go-shellwords"
)

// mapArgs is the number of arguments of the texture map options
// that are skipped.
var mapArgs = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-mm":      2,
	"-texres":  1,
	"-type":    1,
}

// ReadMTL reads a material library, adding its materials to lib.
// Properties before the first newmtl are malformed records.
func ReadMTL(r io.Reader, lib *material.Library, opts *codec.Options) error {
	sc := textio.NewScanner(r, MTLFormat, opts)
	var mt *material.Material
	reported := map[string]bool{}
	for sc.Scan() {
		ln := sc.Line()
		if ln.Keyword == "newmtl" {
			if ln.Rest == "" {
				if err := sc.Fail(ln, codec.Errorf(codec.ErrMalformedRecord, "newmtl with no name")); err != nil {
					return err
				}
				continue
			}
			mt = material.New(ln.Rest)
			lib.Add(mt)
			continue
		}
		if mt == nil {
			if err := sc.Fail(ln, codec.Errorf(codec.ErrMalformedRecord, "%s before newmtl", ln.Keyword)); err != nil {
				return err
			}
			continue
		}
		ok, err := parseMTLLine(mt, ln)
		if err != nil {
			if err = sc.Fail(ln, err); err != nil {
				return err
			}
			continue
		}
		if !ok && !reported[ln.Keyword] {
			reported[ln.Keyword] = true
			sc.Unsupported(ln, "material keyword "+ln.Keyword)
		}
	}
	return sc.Err()
}

// parseMTLLine sets the material property of the line, returning
// false when the keyword is not supported.
func parseMTLLine(mt *material.Material, ln textio.Line) (bool, error) {
	var err error
	if f := firstField(ln.Fields()); f == "spectral" || f == "xyz" {
		return false, nil
	}
	switch ln.Keyword {
	case "Ka":
		mt.Ambient, err = parseColor(ln.Fields())
	case "Kd":
		mt.Diffuse, err = parseColor(ln.Fields())
	case "Ks":
		mt.Specular, err = parseColor(ln.Fields())
	case "Ke":
		mt.Emissive, err = parseColor(ln.Fields())
	case "Ns":
		mt.SpecularPower, err = parseFloat(ln.Fields())
	case "d":
		mt.Opacity, err = parseFloat(ln.Fields())
	case "Tr":
		var tr float32
		tr, err = parseFloat(ln.Fields())
		mt.Opacity = 1 - tr
	case "Ni":
		mt.RefractionIndex, err = parseFloat(ln.Fields())
	case "illum":
		mt.Illum, err = textio.Int(firstField(ln.Fields()))
	case "map_Kd":
		mt.DiffuseMap, err = parseMap(ln.Rest, &mt.Tiling)
	case "map_Ka":
		mt.AmbientMap, err = parseMap(ln.Rest, nil)
	case "map_Ks":
		mt.SpecularMap, err = parseMap(ln.Rest, nil)
	case "map_bump", "map_Bump", "bump":
		mt.BumpMap, err = parseMap(ln.Rest, nil)
	case "map_d":
		mt.OpacityMap, err = parseMap(ln.Rest, nil)
	default:
		return false, nil
	}
	return true, err
}

func firstField(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseFloat(fields []string) (float32, error) {
	if len(fields) < 1 {
		return 0, codec.Errorf(codec.ErrMalformedRecord, "missing value")
	}
	return textio.Float32(fields[0])
}

// parseColor parses an r [g b] color; a single value is gray.
func parseColor(fields []string) (color.RGBA, error) {
	vals, err := textio.Floats(fields, 1)
	if err != nil {
		return color.RGBA{}, err
	}
	if len(vals) < 3 {
		return colors.FromFloat32(vals[0], vals[0], vals[0], 1), nil
	}
	return colors.FromFloat32(vals[0], vals[1], vals[2], 1), nil
}

// parseMap parses a texture map statement: options followed by the
// file name, which may be quoted or contain spaces. The -s and -o
// options set the tiling when tl is not nil.
func parseMap(rest string, tl *material.Tiling) (string, error) {
	args, err := shellwords.Parse(rest)
	if err != nil {
		return "", codec.Errorf(codec.ErrMalformedRecord, "invalid texture map %q: %v", rest, err)
	}
	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") {
		opt := args[i]
		i++
		switch opt {
		case "-s", "-o", "-t":
			var v []float32
			for len(v) < 3 && i < len(args) {
				f, err := strconv.ParseFloat(args[i], 32)
				if err != nil {
					break
				}
				v = append(v, float32(f))
				i++
			}
			if len(v) == 0 {
				return "", codec.Errorf(codec.ErrMalformedRecord, "texture map option %s needs a value", opt)
			}
			if len(v) == 1 {
				v = append(v, v[0])
			}
			if tl == nil {
				continue
			}
			switch opt {
			case "-s":
				tl.Repeat = math32.Vec2(v[0], v[1])
			case "-o":
				tl.Off = math32.Vec2(v[0], v[1])
			}
		default:
			n, ok := mapArgs[opt]
			if !ok {
				return "", codec.Errorf(codec.ErrMalformedRecord, "unknown texture map option %s", opt)
			}
			i += n
		}
	}
	if i >= len(args) {
		return "", codec.Errorf(codec.ErrMalformedRecord, "texture map with no file name")
	}
	return strings.Join(args[i:], " "), nil
}
