// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package lint

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Report is the machine readable summary of one lint run, stored as
// gzip compressed JSON.
type Report struct {
	RunID      string       `json:"run_id"`
	Started    time.Time    `json:"started"`
	DurationMS int64        `json:"duration_ms"`
	Jobs       int          `json:"jobs"`
	Total      int          `json:"total"`
	Failed     int          `json:"failed"`
	Files      []FileReport `json:"files"`
}

// FileReport is the report entry for one linted file.
type FileReport struct {
	File        string `json:"file"`
	TID         int    `json:"tid"`
	ExitCode    int    `json:"exit_code"`
	DurationMS  int64  `json:"duration_ms"`
	OutputBytes int    `json:"output_bytes"`
}

// MakeReport assembles a report from the run's results.
func MakeReport(runID string, started time.Time, jobs int, stats Stats, results []Result) *Report {
	rep := &Report{
		RunID:      runID,
		Started:    started,
		DurationMS: time.Since(started).Milliseconds(),
		Jobs:       jobs,
		Total:      stats.Total,
		Failed:     stats.Failed,
	}
	for _, res := range results {
		rep.Files = append(rep.Files, FileReport{
			File:        res.File,
			TID:         res.TID,
			ExitCode:    res.ExitCode,
			DurationMS:  res.Duration.Milliseconds(),
			OutputBytes: len(res.Output),
		})
	}
	return rep
}

// WriteFile writes the report to fname, gzip compressed.
func (rep *Report) WriteFile(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := gzip.NewWriter(f)
	err = json.NewEncoder(w).Encode(rep)
	if err != nil {
		f.Close()
		return fmt.Errorf("write report %s: %w", fname, err)
	}
	err = w.Close()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write report %s: %w", fname, err)
	}
	return nil
}

// ReadReportFile reads a report written by WriteFile.
func ReadReportFile(fname string) (*Report, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", fname, err)
	}
	defer r.Close()
	rep := &Report{}
	err = json.NewDecoder(r).Decode(rep)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", fname, err)
	}
	return rep, nil
}
