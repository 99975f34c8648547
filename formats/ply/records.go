// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ply

import (
	"strconv"

	"cogentcore.org/meshio/chunk"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/textio"
)

// asciiRecords reads one record per line.
type asciiRecords struct {
	sc   *textio.Scanner
	line int
}

func (ar *asciiRecords) next(el *Element) ([][]float64, error) {
	if !ar.sc.Scan() {
		if err := ar.sc.Err(); err != nil {
			return nil, err
		}
		return nil, codec.LineError(Format, ar.sc.LineNum(), codec.Errorf(codec.ErrMalformedContainer, "end of data in %s element", el.Name))
	}
	ln := ar.sc.Line()
	ar.line = ln.Num
	toks := append([]string{ln.Keyword}, ln.Fields()...)
	rec := make([][]float64, len(el.Properties))
	for i, p := range el.Properties {
		n := 1
		if p.List {
			if len(toks) == 0 {
				return nil, ar.sc.Error(ln, codec.Errorf(codec.ErrMalformedRecord, "missing %s list length", p.Name))
			}
			c, err := strconv.Atoi(toks[0])
			if err != nil || c < 0 || c > maxList {
				return nil, ar.sc.Error(ln, codec.Errorf(codec.ErrMalformedRecord, "invalid %s list length %q", p.Name, toks[0]))
			}
			toks = toks[1:]
			n = c
		}
		if len(toks) < n {
			return nil, ar.sc.Error(ln, codec.Errorf(codec.ErrMalformedRecord, "missing %s values", p.Name))
		}
		vals := make([]float64, n)
		for j := range vals {
			v, err := strconv.ParseFloat(toks[j], 64)
			if err != nil {
				return nil, ar.sc.Error(ln, codec.Errorf(codec.ErrMalformedRecord, "invalid %s value %q", p.Name, toks[j]))
			}
			vals[j] = v
		}
		toks = toks[n:]
		rec[i] = vals
	}
	return rec, nil
}

func (ar *asciiRecords) pos() (int, int64) {
	return ar.line, -1
}

func (ar *asciiRecords) trailing() bool {
	return ar.sc.Scan()
}

// binaryRecords reads packed records in the byte order of the encoding.
type binaryRecords struct {
	cr  *chunk.Reader
	off int64
}

func (br *binaryRecords) next(el *Element) ([][]float64, error) {
	br.off = br.cr.Offset()
	rec := make([][]float64, len(el.Properties))
	for i, p := range el.Properties {
		n := 1
		if p.List {
			c := readScalar(br.cr, p.CountType)
			if br.cr.Err() == nil && (c < 0 || c > maxList) {
				return nil, br.cr.Fail("invalid %s list length %v", p.Name, c)
			}
			n = int(c)
		}
		vals := make([]float64, n)
		for j := range vals {
			vals[j] = readScalar(br.cr, p.Type)
		}
		rec[i] = vals
		if err := br.cr.Err(); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (br *binaryRecords) pos() (int, int64) {
	return 0, br.off
}

func (br *binaryRecords) trailing() bool {
	br.cr.Bytes(1)
	return br.cr.Err() == nil
}

// readScalar reads a value of the given type.
func readScalar(cr *chunk.Reader, t Type) float64 {
	switch t {
	case Int8:
		return float64(chunk.Int[int8](cr))
	case Uint8:
		return float64(chunk.Uint[uint8](cr))
	case Int16:
		return float64(chunk.Int[int16](cr))
	case Uint16:
		return float64(chunk.Uint[uint16](cr))
	case Int32:
		return float64(chunk.Int[int32](cr))
	case Uint32:
		return float64(chunk.Uint[uint32](cr))
	case Float32:
		return float64(cr.F32())
	}
	return cr.F64()
}
