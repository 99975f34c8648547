// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors has helpers for errors that can only be reported,
// such as failing to clean up a temporary file after another error.
package errors

import "log/slog"

// Log reports a non-nil err through [slog.Error] and returns it.
//
//	errors.Log(os.Remove(tmp))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}
