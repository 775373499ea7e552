//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package record

import (
	"math"
	"strconv"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
)

// noStep marks a residue no pass reached.
const noStep = math.MinInt

// AutoFill labels the single empty residue of a labeled(N), empty,
// labeled(N+2) pattern as N+1. No other gap is filled. It returns the
// number of filled residues.
func AutoFill(residues []Residue) (n int) {
	for i := 1; i+1 < len(residues); i++ {
		prev, cur, next := residues[i-1].Label, residues[i].Label, residues[i+1].Label
		if !cur.IsEmpty() || prev.Kind != label.KindPlain || next.Kind != label.KindPlain {
			continue
		}
		if next.Base != prev.Base+2 {
			continue
		}
		residues[i].Label = label.Plain(prev.Base + 1)
		residues[i].Raw = strconv.Itoa(prev.Base + 1)
		residues[i].Filled = true
		n++
	}
	return
}

// InferCanonical sets the canonical position of every residue. Positions
// carried by labels are kept. Other residues take the position implied by
// a unit step from their resolved neighbors when the forward and backward
// passes agree, or when only one side exists. Extension tokens and
// everything else stay unresolved.
func InferCanonical(residues []Residue) {
	n := len(residues)
	seeds := make([]int, n)
	for i := range residues {
		seeds[i] = residues[i].Label.Canonical()
	}

	// Forward pass
	fwd := make([]int, n)
	last, haveLast := 0, false
	for i := 0; i < n; i++ {
		if seeds[i] != label.Unresolved {
			last, haveLast = seeds[i], true
			fwd[i] = last
		} else if haveLast {
			last++
			fwd[i] = last
		} else {
			fwd[i] = noStep
		}
	}
	// Backward pass
	bwd := make([]int, n)
	next, haveNext := 0, false
	for i := n - 1; i >= 0; i-- {
		if seeds[i] != label.Unresolved {
			next, haveNext = seeds[i], true
			bwd[i] = next
		} else if haveNext {
			next--
			bwd[i] = next
		} else {
			bwd[i] = noStep
		}
	}

	for i := range residues {
		c := seeds[i]
		if c == label.Unresolved {
			f, b := fwd[i], bwd[i]
			switch {
			case f != noStep && b != noStep:
				if f == b {
					c = f
				}
			case f != noStep:
				c = f
			case b != noStep:
				c = b
			}
			if c < label.MinCanonical || c > label.MaxCanonical {
				c = label.Unresolved
			}
		}
		// Extended arm residues have no Sprinzl position
		if residues[i].Label.Kind == label.KindExtension {
			c = label.Unresolved
		}
		residues[i].Canonical = c
	}
}
