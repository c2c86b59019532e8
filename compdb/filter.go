// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package compdb

import (
	"fmt"
	"regexp"
)

// Filter returns a new DB keeping records in order. When includeOnly
// is non-empty, a record's File must match at least one of its
// patterns to be kept; a record matching any excludeAll pattern is
// then dropped. Patterns are matched from the start of File.
func (db *DB) Filter(includeOnly, excludeAll []string) (*DB, error) {
	inc, err := compilePatterns(includeOnly)
	if err != nil {
		return nil, err
	}
	exc, err := compilePatterns(excludeAll)
	if err != nil {
		return nil, err
	}
	out := &DB{}
	for _, rec := range db.Records {
		if len(inc) > 0 && !matchAny(inc, rec.File) {
			continue
		}
		if matchAny(exc, rec.File) {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// compilePatterns compiles exprs anchored at the start of the subject.
func compilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	var res []*regexp.Regexp
	for _, expr := range exprs {
		re, err := regexp.Compile(`\A(?:` + expr + `)`)
		if err != nil {
			return nil, fmt.Errorf("bad filter pattern %q: %w", expr, err)
		}
		res = append(res, re)
	}
	return res, nil
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
