//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package order

import (
	"fmt"
	"sort"

	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

// Gap identifies the interval between two ordinals. 0 stands for a
// sequence edge: {0, f} precedes the first labeled residue, {l, 0} follows
// the last one.
type Gap struct {
	Before, After int
}

func (g Gap) String() string {
	return fmt.Sprintf("%d-%d", g.Before, g.After)
}

// Run is a maximal stretch of residues without ordinal, [Start, End) in
// residue indexes.
type Run struct {
	Gap        Gap
	Start, End int
}

// Count returns the number of residues in the run.
func (r Run) Count() int {
	return r.End - r.Start
}

// Runs splits the residue ordinals of one sequence (0 for none) into
// insertion runs.
func Runs(ords []int) (runs []Run) {
	for i := 0; i < len(ords); {
		if ords[i] != 0 {
			i++
			continue
		}
		j := i
		for j < len(ords) && ords[j] == 0 {
			j++
		}
		run := Run{Start: i, End: j}
		if i > 0 {
			run.Gap.Before = ords[i-1]
		}
		if j < len(ords) {
			run.Gap.After = ords[j]
		}
		runs = append(runs, run)
		i = j
	}
	return
}

// Slots is the gap-slot table: for each gap, the maximum number of
// insertions observed in any sequence.
type Slots struct {
	max map[Gap]int
}

// BuildSlots scans the insertion runs of all sequences.
func BuildSlots(seqs []*record.Sequence, o *Order) *Slots {
	s := &Slots{max: make(map[Gap]int)}
	for _, seq := range seqs {
		for _, run := range Runs(o.Ordinals(seq)) {
			if run.Count() > s.max[run.Gap] {
				s.max[run.Gap] = run.Count()
			}
		}
	}
	return s
}

// Max returns the reserved slot count of a gap. Gaps never observed have
// zero slots.
func (s *Slots) Max(g Gap) int {
	return s.max[g]
}

// Len returns the number of gaps with at least one insertion.
func (s *Slots) Len() int {
	return len(s.max)
}

// Gaps returns the observed gaps sorted by ordinals.
func (s *Slots) Gaps() []Gap {
	gaps := make([]Gap, 0, len(s.max))
	for g := range s.max {
		gaps = append(gaps, g)
	}
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Before != gaps[j].Before {
			return gaps[i].Before < gaps[j].Before
		}
		return gaps[i].After < gaps[j].After
	})
	return gaps
}
