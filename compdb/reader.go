// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package compdb

import (
	"encoding/json"
	"fmt"
	"io"

	"go.chromium.org/infra/build/lintdb/toolsupport/ccutil"
)

// read consumes a compilation database document incrementally.
//
// It walks the decoder's token stream: outside a record it waits for
// the opening brace of the next array element; inside a record it
// assigns the element's immediate children to record fields until the
// closing brace, then finalizes the record and goes back to waiting.
// Only one record is materialized at a time.
func read(r io.Reader, visitors []ccutil.Visitor) (*DB, error) {
	dec := json.NewDecoder(r)
	db := &DB{}
	tok, err := dec.Token()
	if err == io.EOF {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		// Not an array at the top level: no records.
		return db, nil
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		delim, ok := tok.(json.Delim)
		if !ok || delim != '{' {
			// Non-object array elements carry no record fields.
			if err := skipValue(dec, tok); err != nil {
				return nil, fmt.Errorf("parse: %w", err)
			}
			continue
		}
		rec := &Record{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parse: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("parse: record key %v", keyTok)
			}
			if err := rec.setField(dec, key); err != nil {
				return nil, fmt.Errorf("parse: %w", err)
			}
		}
		if _, err := dec.Token(); err != nil { // closing }
			return nil, fmt.Errorf("parse: %w", err)
		}
		if err := rec.finish(visitors); err != nil {
			return nil, err
		}
		db.Records = append(db.Records, rec)
	}
	if _, err := dec.Token(); err != nil { // closing ]
		return nil, fmt.Errorf("parse: %w", err)
	}
	return db, nil
}

// setField assigns the value following key in the decoder stream to
// the matching record field. Compilation databases routinely carry
// vendor specific fields; unknown keys are skipped without error.
func (r *Record) setField(dec *json.Decoder, key string) error {
	switch key {
	case "directory":
		return readString(dec, &r.Directory)
	case "command":
		return readString(dec, &r.Command)
	case "file":
		return readString(dec, &r.File)
	case "arguments":
		return readStrings(dec, &r.Arguments)
	default:
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		return skipValue(dec, tok)
	}
}

// readString reads one value and stores it in dst if it is a string.
// Values of other types are consumed and dropped.
func readString(dec *json.Decoder, dst *string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if s, ok := tok.(string); ok {
		*dst = s
		return nil
	}
	return skipValue(dec, tok)
}

// readStrings reads an array value, appending its string elements to
// dst. Non-array values and non-string elements are consumed and
// dropped.
func readStrings(dec *json.Decoder, dst *[]string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return skipValue(dec, tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if s, ok := tok.(string); ok {
			*dst = append(*dst, s)
			continue
		}
		if err := skipValue(dec, tok); err != nil {
			return err
		}
	}
	_, err = dec.Token() // closing ]
	return err
}

// skipValue consumes the remainder of the value whose first token was
// tok. Scalars are already fully consumed; only containers need to be
// skipped to their matching close delimiter.
func skipValue(dec *json.Decoder, tok json.Token) error {
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch d, _ := tok.(json.Delim); d {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		}
	}
	return nil
}
