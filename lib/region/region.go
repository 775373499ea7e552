//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package region assigns canonical positions to structural domains.
package region

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

const (
	Unknown     = "unknown"
	VariableArm = "variable-arm"
)

// Range is a closed range of canonical positions.
type Range struct {
	Start, End int
	Name       string
}

// Sprinzl is the domain layout of the cloverleaf.
var Sprinzl = []Range{
	{1, 7, "acceptor-stem"},
	{8, 13, "D-stem"},
	{14, 21, "D-loop"},
	{22, 25, "D-stem"},
	{26, 31, "anticodon-stem"},
	{32, 38, "anticodon-loop"},
	{39, 43, "anticodon-stem"},
	{44, 48, "variable-region"},
	{49, 53, "T-stem"},
	{54, 60, "T-loop"},
	{61, 65, "T-stem"},
	{66, 72, "acceptor-stem"},
	{73, 76, "acceptor-tail"},
}

type Classifier struct {
	tree *interval.IntTree
}

// NewClassifier builds the lookup tree. The ranges must tile the canonical
// positions 1..76 with neither gap nor overlap.
func NewClassifier(ranges []Range) (*Classifier, error) {
	rs := append([]Range(nil), ranges...)
	sort.Slice(rs, func(i, j int) bool { return rs[i].Start < rs[j].Start })
	next := label.MinCanonical
	for _, r := range rs {
		if r.Start > r.End {
			return nil, fmt.Errorf("Empty range %d-%d %s", r.Start, r.End, r.Name)
		}
		if r.Start != next {
			return nil, fmt.Errorf("Range %d-%d %s does not start at %d", r.Start, r.End, r.Name, next)
		}
		next = r.End + 1
	}
	if next != label.MaxCanonical+1 {
		return nil, fmt.Errorf("Ranges end at %d instead of %d", next-1, label.MaxCanonical)
	}

	tree := &interval.IntTree{}
	for i, r := range rs {
		if err := tree.Insert(IntInterval{Start: r.Start, End: r.End + 1, UID: uintptr(i), Name: r.Name}, false); err != nil {
			return nil, err
		}
	}
	tree.AdjustRanges()
	return &Classifier{tree: tree}, nil
}

// Region returns the domain of a canonical position, Unknown when the
// position is unresolved.
func (c *Classifier) Region(canonical int) string {
	if canonical == label.Unresolved {
		return Unknown
	}
	ivs := c.tree.Get(IntInterval{Start: canonical, End: canonical + 1})
	if len(ivs) != 1 {
		return Unknown
	}
	return ivs[0].(IntInterval).Name
}

// Classify returns the domain of a residue. Extended-arm tokens are
// overridden to VariableArm after the range lookup.
func (c *Classifier) Classify(r *record.Residue) string {
	name := c.Region(r.Canonical)
	if r.Label.Kind == label.KindExtension {
		name = VariableArm
	}
	return name
}
