// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ply

import (
	"bufio"
	"encoding/binary"
	"strconv"
	"strings"

	"cogentcore.org/meshio/codec"
	"github.com/Masterminds/semver/v3"
)

// Encoding is the encoding of the element data.
type Encoding int32

const (
	ASCII Encoding = iota
	BinaryLittleEndian
	BinaryBigEndian
)

var encodings = map[string]Encoding{
	"ascii":                ASCII,
	"binary_little_endian": BinaryLittleEndian,
	"binary_big_endian":    BinaryBigEndian,
}

// Order returns the byte order of a binary encoding.
func (e Encoding) Order() binary.ByteOrder {
	if e == BinaryBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Type is a scalar property type.
type Type int32

const (
	Int8 Type = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
)

var types = map[string]Type{
	"char": Int8, "int8": Int8,
	"uchar": Uint8, "uint8": Uint8,
	"short": Int16, "int16": Int16,
	"ushort": Uint16, "uint16": Uint16,
	"int": Int32, "int32": Int32,
	"uint": Uint32, "uint32": Uint32,
	"float": Float32, "float32": Float32,
	"double": Float64, "float64": Float64,
}

// IsFloat returns whether the type is a floating point type.
func (t Type) IsFloat() bool {
	return t == Float32 || t == Float64
}

// Property is a property of an element.
type Property struct {
	Name string
	Type Type

	// List is set for list properties, whose length is of CountType.
	List      bool
	CountType Type
}

// Element is a declared element with its record count.
type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// Index returns the index of the named property, or -1.
func (el *Element) Index(name string) int {
	for i, p := range el.Properties {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Header is a parsed PLY header.
type Header struct {
	Encoding Encoding
	Version  *semver.Version
	Comments []string
	Elements []*Element

	// Lines is the number of header lines, through end_header.
	Lines int
}

// readHeader reads the header through end_header, leaving br at the
// first byte of the element data.
func readHeader(br *bufio.Reader) (*Header, error) {
	hd := &Header{}
	var el *Element
	fail := func(format string, args ...any) (*Header, error) {
		return nil, codec.LineError(Format, hd.Lines, codec.Errorf(codec.ErrMalformedContainer, format, args...))
	}
	for {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			if hd.Lines == 0 {
				return fail("empty file")
			}
			return fail("missing end_header")
		}
		hd.Lines++
		fields := strings.Fields(line)
		if hd.Lines == 1 {
			if len(fields) != 1 || fields[0] != "ply" {
				return fail("missing ply magic")
			}
			continue
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) != 3 {
				return fail("invalid format line")
			}
			enc, ok := encodings[fields[1]]
			if !ok {
				return fail("unknown encoding %q", fields[1])
			}
			hd.Encoding = enc
			v, err := semver.NewVersion(fields[2])
			if err != nil {
				return fail("invalid version %q", fields[2])
			}
			if v.Major() != 1 {
				return fail("unsupported version %s", v)
			}
			hd.Version = v
		case "comment", "obj_info":
			hd.Comments = append(hd.Comments, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0])))
		case "element":
			if len(fields) != 3 {
				return fail("invalid element line")
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return fail("invalid element count %q", fields[2])
			}
			el = &Element{Name: fields[1], Count: n}
			hd.Elements = append(hd.Elements, el)
		case "property":
			if el == nil {
				return fail("property before element")
			}
			p, ok := parseProperty(fields[1:])
			if !ok {
				return fail("invalid property %q", strings.TrimSpace(line))
			}
			el.Properties = append(el.Properties, p)
		case "end_header":
			if hd.Version == nil {
				return fail("missing format line")
			}
			return hd, nil
		default:
			return fail("unknown header keyword %q", fields[0])
		}
	}
}

// parseProperty parses "<type> <name>" or "list <ctype> <itype> <name>".
func parseProperty(fields []string) (Property, bool) {
	if len(fields) == 4 && fields[0] == "list" {
		ct, ok1 := types[fields[1]]
		it, ok2 := types[fields[2]]
		if !ok1 || !ok2 || ct.IsFloat() {
			return Property{}, false
		}
		return Property{Name: fields[3], Type: it, List: true, CountType: ct}, true
	}
	if len(fields) != 2 {
		return Property{}, false
	}
	t, ok := types[fields[0]]
	if !ok {
		return Property{}, false
	}
	return Property{Name: fields[1], Type: t}, true
}
