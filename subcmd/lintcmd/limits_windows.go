// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build windows

package lintcmd

import "context"

func (c *run) checkResourceLimits(ctx context.Context) {
	// no fd limit to adjust on windows.
}
