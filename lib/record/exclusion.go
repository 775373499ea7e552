//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package record

import (
	"bufio"
	"io"
	"os"
	"strings"

	"gopkg.in/fatih/set.v0"
)

// OpenExclusions reads a list of sequence identifiers, one per line.
// Text after '#' is a comment.
func OpenExclusions(epath string) (set.Interface, error) {
	efos, err := os.Open(epath)
	if err != nil {
		return set.New(set.ThreadSafe), err
	}
	defer efos.Close()
	return ReadExclusions(efos)
}

func ReadExclusions(r io.Reader) (set.Interface, error) {
	s := set.New(set.ThreadSafe)
	escanner := bufio.NewScanner(r)
	for escanner.Scan() {
		line := escanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		// Quoted entries copied from a report are accepted
		line = strings.Trim(strings.TrimSpace(line), "\",")
		if line != "" {
			s.Add(line)
		}
	}
	if err := escanner.Err(); err != nil {
		return s, err
	}
	return s, nil
}
