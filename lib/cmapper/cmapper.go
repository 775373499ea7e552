//
// Copyright (C) 2015-2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.
//

// Package cmapper maps the continuous coordinates of a run onto the dense
// global index 1..K.
package cmapper

import (
	"math"
	"sort"

	"git.sr.ht/~vejnar/tRNAspace/lib/coord"
)

type CoordMapper struct {
	Precision int
	// CoordsContinuous holds the distinct coordinates in increasing order,
	// as integer numbers of 10^-Precision units.
	CoordsContinuous []int64
	Length           int

	seen  map[int64]struct{}
	index map[int64]int
}

// NewCoordMapper returns an empty mapper at the given precision.
func NewCoordMapper(precision int) *CoordMapper {
	return &CoordMapper{Precision: precision, seen: make(map[int64]struct{})}
}

// Add records continuous coordinates. Values equal once rounded are merged.
func (cm *CoordMapper) Add(coords ...float64) {
	for _, c := range coords {
		cm.seen[coord.Scaled(c, cm.Precision)] = struct{}{}
	}
}

// Init sorts the recorded coordinates and numbers them from 1.
func (cm *CoordMapper) Init() {
	cm.CoordsContinuous = make([]int64, 0, len(cm.seen))
	for c := range cm.seen {
		cm.CoordsContinuous = append(cm.CoordsContinuous, c)
	}
	sort.Slice(cm.CoordsContinuous, func(i, j int) bool { return cm.CoordsContinuous[i] < cm.CoordsContinuous[j] })
	cm.index = make(map[int64]int, len(cm.CoordsContinuous))
	for i, c := range cm.CoordsContinuous {
		cm.index[c] = i + 1
	}
	// Length
	cm.Length = cm.GetLength()
}

// GetLength returns mapper length.
func (cm *CoordMapper) GetLength() int {
	return len(cm.CoordsContinuous)
}

// Continuous2Global translates a continuous coordinate to the global index.
func (cm *CoordMapper) Continuous2Global(c float64) (gcoord int, within bool) {
	gcoord, within = cm.index[coord.Scaled(c, cm.Precision)]
	return
}

// Global2Continuous translates a global index back to its continuous coordinate.
func (cm *CoordMapper) Global2Continuous(gcoord int) (c float64, within bool) {
	if gcoord < 1 || gcoord > len(cm.CoordsContinuous) {
		return
	}
	return coord.Round(float64(cm.CoordsContinuous[gcoord-1])/math.Pow10(cm.Precision), cm.Precision), true
}
