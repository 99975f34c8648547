// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Files gives readers and writers access to side files, such as
// material libraries and texture images, that live next to the
// main file. Names are relative to the main file's directory.
type Files interface {
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
}

// DirFiles is [Files] on the given directory of the file system.
type DirFiles string

// Open opens the named file in the directory.
func (d DirFiles) Open(name string) (io.ReadCloser, error) {
	return os.Open(d.path(name))
}

// Create creates or truncates the named file in the directory.
func (d DirFiles) Create(name string) (io.WriteCloser, error) {
	return os.Create(d.path(name))
}

func (d DirFiles) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(string(d), filepath.FromSlash(name))
}

// MemFiles is an in-memory [Files], used in tests and by hosts
// that keep side files in memory.
type MemFiles map[string][]byte

// Open returns a reader over the named file.
func (m MemFiles) Open(name string) (io.ReadCloser, error) {
	b, ok := m[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Create returns a writer that stores the named file when closed.
func (m MemFiles) Create(name string) (io.WriteCloser, error) {
	if m == nil {
		return nil, fmt.Errorf("codec.MemFiles: cannot create %q in nil map", name)
	}
	return &memFile{m: m, name: name}, nil
}

// Names returns the sorted names of the files.
func (m MemFiles) Names() []string {
	ns := make([]string, 0, len(m))
	for n := range m {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

type memFile struct {
	bytes.Buffer
	m    MemFiles
	name string
}

func (f *memFile) Close() error {
	f.m[f.name] = f.Bytes()
	return nil
}
