// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshio

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/meshio/base/errors"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/scene"
	"github.com/h2non/filetype"
)

// sniffLen is the number of leading bytes used for content detection.
const sniffLen = 512

// ReadFile reads the scene in the file, in the format of its extension.
// Side files are read from the directory of the file unless
// opts has Files.
func (rg *Registry) ReadFile(path string, opts *codec.Options) (*scene.Scene, error) {
	rd, err := rg.Reader(filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	slog.Debug("reading", "path", path)
	sc, err := rd.Read(bufio.NewReader(f), opts.ForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// WriteFile writes the scene to the file, in the format of its
// extension. Side files are written to the directory of the file
// unless opts has Files. The file is written under a temporary
// name and renamed once complete, so that it is never left partially
// written, and it is not created at all for an unknown extension.
func (rg *Registry) WriteFile(path string, sc *scene.Scene, opts *codec.Options) error {
	wr, err := rg.Writer(filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	slog.Debug("writing", "path", path)
	bw := bufio.NewWriter(f)
	err = wr.Write(bw, sc, opts.ForPath(path))
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		errors.Log(os.Remove(tmp))
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Detect returns the extension of the readable format of the file
// content starting with header, which should have at least its first
// 512 bytes. Binary STL and OBJ files cannot be detected.
func (rg *Registry) Detect(header []byte) (string, error) {
	for _, s := range rg.sniffers {
		if _, ok := rg.readers[s.ext]; ok && s.match(header) {
			return s.ext, nil
		}
	}
	if kind, err := filetype.Match(header); err == nil && kind != filetype.Unknown {
		return "", codec.Errorf(codec.ErrUnknownFormat, "content is %s, not a mesh", kind.MIME.Value)
	}
	return "", codec.Errorf(codec.ErrUnknownFormat, "content not recognized")
}

// DetectFile returns the extension of the readable format of the file,
// using its content.
func (rg *Registry) DetectFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	ext, err := rg.Detect(header[:n])
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return ext, nil
}
