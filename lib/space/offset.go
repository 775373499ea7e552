//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package space

import (
	"strconv"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

// Canonical positions of the conserved D-loop used to measure the offset.
const (
	offsetStart = 15
	offsetEnd   = 25
)

// Offset returns the labeling offset of seq: the most common difference
// between a plain label in 15-25 and its template index. Ties go to the
// difference seen first. ok is false when no residue qualifies.
func Offset(seq *record.Sequence) (offset int, ok bool) {
	counts := make(map[int]int)
	var seen []int
	for _, r := range seq.Residues {
		if r.Label.Kind != label.KindPlain || r.Label.Base < offsetStart || r.Label.Base > offsetEnd || r.Template <= 0 {
			continue
		}
		d := r.Label.Base - r.Template
		if counts[d] == 0 {
			seen = append(seen, d)
		}
		counts[d]++
	}
	best := 0
	for _, d := range seen {
		if counts[d] > best {
			offset, best = d, counts[d]
		}
	}
	return offset, best > 0
}

// OffsetName returns the run name of an offset, e.g. "offset+2",
// "offset0" or "offset-1".
func OffsetName(offset int) string {
	if offset > 0 {
		return "offset+" + strconv.Itoa(offset)
	}
	return "offset" + strconv.Itoa(offset)
}
