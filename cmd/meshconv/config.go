// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/meshio/base/iox/imagex"
	"cogentcore.org/meshio/base/iox/tomlx"
	"cogentcore.org/meshio/base/iox/yamlx"
	"cogentcore.org/meshio/codec"
	"github.com/mitchellh/go-homedir"
)

// Config is the configuration of meshconv, read from a TOML
// or YAML file and overridden by command line flags.
type Config struct {

	// IgnoreErrors drops malformed records instead of failing.
	IgnoreErrors bool `toml:"ignore_errors" yaml:"ignore_errors"`

	// Smooth shares identical vertices of OBJ faces that have
	// no smoothing group.
	Smooth bool `toml:"smooth" yaml:"smooth"`

	// ASCIISTL writes STL files in the ASCII encoding.
	ASCIISTL bool `toml:"ascii_stl" yaml:"ascii_stl"`

	// OutDir is the directory of converted files when the output
	// is given as an extension only. Empty means next to the input.
	OutDir string `toml:"out_dir" yaml:"out_dir"`

	// Texture configures baking of procedural materials.
	Texture TextureConfig `toml:"texture" yaml:"texture"`
}

// TextureConfig configures baked textures.
type TextureConfig struct {
	Width   int    `toml:"width" yaml:"width"`
	Height  int    `toml:"height" yaml:"height"`
	Quality int    `toml:"quality" yaml:"quality"`
	Format  string `toml:"format" yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{Texture: TextureConfig{Width: 256, Height: 256, Quality: 2, Format: "png"}}
}

// LoadConfig reads the configuration file over the defaults, choosing
// the encoding by its extension. A leading ~ is the home directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = tomlx.Open(cfg, path)
	case ".yaml", ".yml":
		err = yamlx.Open(cfg, path)
	default:
		return nil, fmt.Errorf("config %s: unknown extension, want .toml or .yaml", path)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Options returns the codec options of the configuration.
func (cfg *Config) Options(notes *codec.Notices) (*codec.Options, error) {
	opts := &codec.Options{
		IgnoreErrors:    cfg.IgnoreErrors,
		SmoothUngrouped: cfg.Smooth,
		Notices:         notes,
		Bake: codec.BakeOptions{
			Width:   cfg.Texture.Width,
			Height:  cfg.Texture.Height,
			Quality: cfg.Texture.Quality,
		},
	}
	if cfg.Texture.Format != "" {
		f, err := imagex.ExtToFormat(cfg.Texture.Format)
		if err != nil {
			return nil, fmt.Errorf("texture format: %w", err)
		}
		opts.Bake.Format = f
	}
	return opts, nil
}

// expand returns path with a leading ~ expanded.
func expand(path string) string {
	if p, err := homedir.Expand(path); err == nil {
		return p
	}
	return path
}
