// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	defer func(l *slog.Logger) { slog.SetDefault(l) }(slog.Default())
	var b bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&b, nil)))

	assert.NoError(t, Log(nil))
	assert.Empty(t, b.String())

	err := errors.New("boom")
	assert.Same(t, err, Log(err))
	assert.Contains(t, b.String(), "level=ERROR msg=boom")
}
