// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex encodes and decodes texture images.
package imagex

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are image file formats. WebP can be read but not written.
type Formats int32

const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formats = []struct {
	name string
	exts []string
}{
	None: {"none", nil},
	PNG:  {"png", []string{"png"}},
	JPEG: {"jpeg", []string{"jpg", "jpeg"}},
	GIF:  {"gif", []string{"gif"}},
	TIFF: {"tiff", []string{"tif", "tiff"}},
	BMP:  {"bmp", []string{"bmp"}},
	WebP: {"webp", []string{"webp"}},
}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formats) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formats[f].name
}

// Ext returns the file extension written for the format, with the dot.
func (f Formats) Ext() string {
	if f <= None || int(f) >= len(formats) {
		return ""
	}
	return "." + formats[f].exts[0]
}

// ExtToFormat returns the format of a file extension, with or
// without the dot, in any case.
func ExtToFormat(ext string) (Formats, error) {
	e := strings.ToLower(strings.TrimPrefix(ext, "."))
	if e == "" {
		return None, fmt.Errorf("imagex: empty image extension")
	}
	for f, fm := range formats {
		for _, x := range fm.exts {
			if x == e {
				return Formats(f), nil
			}
		}
	}
	return None, fmt.Errorf("imagex: unknown image extension %q", ext)
}

// Read decodes an image and reports its format.
func Read(r io.Reader) (image.Image, Formats, error) {
	im, name, err := image.Decode(r)
	if err != nil {
		return nil, None, err
	}
	f, err := ExtToFormat(name)
	return im, f, err
}

// Write encodes the image in the given format.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, im, nil)
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	}
	return fmt.Errorf("imagex: cannot write %v images", f)
}

// Encode returns the image encoded in the given format.
func Encode(im image.Image, f Formats) ([]byte, error) {
	var b bytes.Buffer
	if err := Write(im, &b, f); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// AsRGBA returns src itself when it is an [image.RGBA], and an RGBA
// copy otherwise.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	return clone.AsRGBA(src)
}
