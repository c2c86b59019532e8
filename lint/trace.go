// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package lint

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// traceEvent is one complete event ("ph":"X") in the Chrome trace
// event format. Timestamps and durations are in microseconds.
type traceEvent struct {
	Name string `json:"name"`
	Cat  string `json:"cat"`
	Ph   string `json:"ph"`
	Ts   int64  `json:"ts"`
	Dur  int64  `json:"dur"`
	Pid  int    `json:"pid"`
	Tid  int    `json:"tid"`
}

// WriteTrace writes one span per linted file to fname in the Chrome
// trace event format, loadable in chrome://tracing or Perfetto. The
// tid of each span is the semaphore slot the file was linted on, so
// the trace shows per-worker occupancy.
func WriteTrace(fname string, started time.Time, results []Result) error {
	events := make([]traceEvent, 0, len(results))
	pid := os.Getpid()
	for _, res := range results {
		events = append(events, traceEvent{
			Name: res.File,
			Cat:  "lint",
			Ph:   "X",
			Ts:   res.Start.Sub(started).Microseconds(),
			Dur:  res.Duration.Microseconds(),
			Pid:  pid,
			Tid:  res.TID,
		})
	}
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = json.NewEncoder(f).Encode(map[string]any{
		"traceEvents": events,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write trace %s: %w", fname, err)
	}
	return nil
}
