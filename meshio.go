// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshio reads and writes polygon mesh scenes in common
// interchange formats, dispatching on the file extension through
// an explicit [Registry].
//
// The format packages under formats/ can also be used directly.
package meshio

import (
	"io"
	"slices"
	"strings"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/formats/collada"
	"cogentcore.org/meshio/formats/kerkythea"
	"cogentcore.org/meshio/formats/lwo"
	"cogentcore.org/meshio/formats/obj"
	"cogentcore.org/meshio/formats/off"
	"cogentcore.org/meshio/formats/ply"
	"cogentcore.org/meshio/formats/pov"
	"cogentcore.org/meshio/formats/rib"
	"cogentcore.org/meshio/formats/stl"
	"cogentcore.org/meshio/formats/tds"
	"cogentcore.org/meshio/formats/vrml"
	"cogentcore.org/meshio/formats/x3d"
	"cogentcore.org/meshio/scene"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Reader reads a scene in one format.
type Reader interface {
	Read(r io.Reader, opts *codec.Options) (*scene.Scene, error)
}

// Writer writes a scene in one format.
type Writer interface {
	Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error
}

// ReaderFunc is a function implementing [Reader].
type ReaderFunc func(r io.Reader, opts *codec.Options) (*scene.Scene, error)

func (f ReaderFunc) Read(r io.Reader, opts *codec.Options) (*scene.Scene, error) {
	return f(r, opts)
}

// WriterFunc is a function implementing [Writer].
type WriterFunc func(w io.Writer, sc *scene.Scene, opts *codec.Options) error

func (f WriterFunc) Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	return f(w, sc, opts)
}

// Registry maps file extensions to readers and writers.
// Extensions are given without the leading dot and matched
// case-insensitively. A Registry must not be modified while
// it is in use.
type Registry struct {
	readers  map[string]Reader
	writers  map[string]Writer
	sniffers []sniffer
}

// sniffer recognizes the content of files with the extension.
type sniffer struct {
	ext   string
	match func(header []byte) bool
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: map[string]Reader{}, writers: map[string]Writer{}}
}

// Default returns a new registry with all the formats of this module.
func Default() *Registry {
	rg := NewRegistry()
	rg.AddReader(ReaderFunc(obj.Read), "obj")
	rg.AddReader(ReaderFunc(stl.Read), "stl")
	rg.AddReader(ReaderFunc(ply.Read), "ply")
	rg.AddReader(ReaderFunc(off.Read), "off")
	rg.AddReader(ReaderFunc(tds.Read), "3ds")
	rg.AddReader(ReaderFunc(lwo.Read), "lwo")

	rg.AddWriter(WriterFunc(obj.Write), "obj")
	rg.AddWriter(WriterFunc(stl.Write), "stl")
	rg.AddWriter(WriterFunc(off.Write), "off")
	rg.AddWriter(WriterFunc(collada.Write), "dae")
	rg.AddWriter(WriterFunc(x3d.Write), "x3d")
	rg.AddWriter(WriterFunc(vrml.Write), "wrl")
	rg.AddWriter(WriterFunc(pov.Write), "pov")
	rg.AddWriter(WriterFunc(rib.Write), "rib")
	rg.AddWriter(WriterFunc(kerkythea.Write), "xml")

	// binary STL has no signature and is recognized by its extension only
	rg.AddSniffer("stl", stl.IsASCII)
	rg.AddSniffer("ply", ply.IsPLY)
	rg.AddSniffer("off", off.IsOFF)
	rg.AddSniffer("3ds", tds.IsTDS)
	rg.AddSniffer("lwo", lwo.IsLWO)
	return rg
}

// normExt returns the extension without a leading dot, lower cased.
func normExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AddReader registers the reader for the extensions.
func (rg *Registry) AddReader(r Reader, exts ...string) {
	for _, ext := range exts {
		rg.readers[normExt(ext)] = r
	}
}

// AddWriter registers the writer for the extensions.
func (rg *Registry) AddWriter(w Writer, exts ...string) {
	for _, ext := range exts {
		rg.writers[normExt(ext)] = w
	}
}

// AddSniffer registers a content matcher for files with the extension,
// used by [Registry.Detect]. Matchers are tried in the order added.
func (rg *Registry) AddSniffer(ext string, match func(header []byte) bool) {
	rg.sniffers = append(rg.sniffers, sniffer{ext: normExt(ext), match: match})
}

// Reader returns the reader for the extension, or an
// [codec.ErrUnknownFormat] error.
func (rg *Registry) Reader(ext string) (Reader, error) {
	r, ok := rg.readers[normExt(ext)]
	if !ok {
		return nil, unknown("read", ext, rg.ReaderExts())
	}
	return r, nil
}

// Writer returns the writer for the extension, or an
// [codec.ErrUnknownFormat] error.
func (rg *Registry) Writer(ext string) (Writer, error) {
	w, ok := rg.writers[normExt(ext)]
	if !ok {
		return nil, unknown("write", ext, rg.WriterExts())
	}
	return w, nil
}

// ReaderExts returns the sorted extensions that can be read.
func (rg *Registry) ReaderExts() []string {
	return sortedKeys(rg.readers)
}

// WriterExts returns the sorted extensions that can be written.
func (rg *Registry) WriterExts() []string {
	return sortedKeys(rg.writers)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// unknown returns the unknown format error for the extension,
// suggesting the most similar known extension.
func unknown(op, ext string, known []string) error {
	ext = normExt(ext)
	if ext == "" {
		return codec.Errorf(codec.ErrUnknownFormat, "cannot %s a file without extension", op)
	}
	if s := Suggest(ext, known); s != "" {
		return codec.Errorf(codec.ErrUnknownFormat, "cannot %s .%s files (did you mean .%s?)", op, ext, s)
	}
	return codec.Errorf(codec.ErrUnknownFormat, "cannot %s .%s files", op, ext)
}

// Suggest returns the known extension most similar to ext,
// or "" if none is similar enough.
func Suggest(ext string, known []string) string {
	jaro := metrics.NewJaro()
	jaro.CaseSensitive = false
	best, bestSim := "", 0.7
	for _, k := range known {
		if sim := strutil.Similarity(ext, k, jaro); sim > bestSim {
			best, bestSim = k, sim
		}
	}
	return best
}

// Read reads a scene in the format of the extension from r.
func (rg *Registry) Read(r io.Reader, ext string, opts *codec.Options) (*scene.Scene, error) {
	rd, err := rg.Reader(ext)
	if err != nil {
		return nil, err
	}
	return rd.Read(r, opts)
}

// Write writes the scene in the format of the extension to w.
func (rg *Registry) Write(w io.Writer, ext string, sc *scene.Scene, opts *codec.Options) error {
	wr, err := rg.Writer(ext)
	if err != nil {
		return err
	}
	return wr.Write(w, sc, opts)
}
