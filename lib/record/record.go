//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package record

import (
	"fmt"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
)

// Residue is one nucleotide of a sequence.
type Residue struct {
	SeqIndex  int
	Raw       string
	Label     label.Label
	Canonical int
	Template  int
	Symbol    string
	Filled    bool
}

type Sequence struct {
	ID       string
	Source   string
	Residues []Residue
}

// Length returns the number of residues.
func (s *Sequence) Length() int {
	return len(s.Residues)
}

// Canonical returns the residue at canonical position pos. Suffixed
// insertions sharing the base position are skipped.
func (s *Sequence) Canonical(pos int) (Residue, bool) {
	for _, r := range s.Residues {
		if r.Canonical == pos && !r.Label.IsInsertion() {
			return r, true
		}
	}
	return Residue{}, false
}

// Window returns the symbols at canonical positions start..end. ok is false
// when any position is unresolved.
func (s *Sequence) Window(start, end int) (w string, ok bool) {
	for p := start; p <= end; p++ {
		r, found := s.Canonical(p)
		if !found {
			return "", false
		}
		w += r.Symbol
	}
	return w, true
}

// CheckIndex verifies that seq_index starts at 1 and has no gap.
func (s *Sequence) CheckIndex() error {
	for i, r := range s.Residues {
		if r.SeqIndex != i+1 {
			return fmt.Errorf("%s: residue %d has seq_index %d", s.ID, i+1, r.SeqIndex)
		}
	}
	return nil
}

// CanonicalMonotone reports whether resolved canonical positions never
// decrease along the sequence. The first offending residue is returned.
func (s *Sequence) CanonicalMonotone() (int, bool) {
	last := label.Unresolved
	for _, r := range s.Residues {
		if r.Canonical == label.Unresolved {
			continue
		}
		if r.Canonical < last {
			return r.SeqIndex, false
		}
		last = r.Canonical
	}
	return 0, true
}

// Sorting functions: By ID
// Use it with: sort.Sort(record.ByID(seqs))
type ByID []*Sequence

func (s ByID) Len() int           { return len(s) }
func (s ByID) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s ByID) Less(i, j int) bool { return s[i].ID < s[j].ID }

// Row is a residue with its coordinates on the shared axis.
type Row struct {
	*Residue
	SequenceID  string
	Source      string
	Ordinal     int
	Continuous  float64
	GlobalIndex int
	Region      string
}
