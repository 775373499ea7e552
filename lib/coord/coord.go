//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package coord assigns fractional coordinates to the residues of one
// sequence using the global label order and the gap-slot table of its run.
package coord

import (
	"errors"
	"fmt"
	"math"

	"git.sr.ht/~vejnar/tRNAspace/lib/order"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

// DefaultPrecision is the number of decimal places kept.
const DefaultPrecision = 6

var ErrUnlabeled = errors.New("no labeled residue")

// Interpolate returns the ordinal (0 for none) and the continuous
// coordinate of every residue of seq. Labeled residues sit on their
// ordinal. The i-th insertion after ordinal a sits at a+i/(M+1) where M is
// the slot count of the gap, so that insertions of different sequences
// share columns. Leading insertions are placed backward from the first
// ordinal with the same step.
func Interpolate(seq *record.Sequence, o *order.Order, slots *order.Slots, precision int) (ords []int, cont []float64, err error) {
	ords = o.Ordinals(seq)
	cont = make([]float64, len(ords))
	for i, ord := range ords {
		if ord != 0 {
			cont[i] = float64(ord)
		}
	}
	for _, run := range order.Runs(ords) {
		m := slots.Max(run.Gap)
		if run.Count() > m {
			m = run.Count()
		}
		step := 1 / float64(m+1)
		switch {
		case run.Gap.Before != 0:
			for k := run.Start; k < run.End; k++ {
				cont[k] = float64(run.Gap.Before) + float64(k-run.Start+1)*step
			}
		case run.Gap.After != 0:
			for k := run.Start; k < run.End; k++ {
				cont[k] = float64(run.Gap.After) - float64(run.End-k)*step
			}
		default:
			return nil, nil, fmt.Errorf("%s: %w", seq.ID, ErrUnlabeled)
		}
	}
	for i := range cont {
		cont[i] = Round(cont[i], precision)
	}
	return
}

// Round rounds v to precision decimal places.
func Round(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}

// Scaled returns v as an integer number of 10^-precision units.
func Scaled(v float64, precision int) int64 {
	return int64(math.Round(v * math.Pow10(precision)))
}
