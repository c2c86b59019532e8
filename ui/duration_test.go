// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	for _, tc := range []struct {
		d    time.Duration
		want string
	}{
		{d: 120 * time.Millisecond, want: "0.12s"},
		{d: 1500 * time.Millisecond, want: "1.50s"},
		{d: 75 * time.Second, want: "1m15.00s"},
		{d: 61 * time.Second, want: "1m01.00s"},
		{d: 3725 * time.Second, want: "1h2m05.00s"},
	} {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v)=%q; want %q", tc.d, got, tc.want)
		}
	}
}
