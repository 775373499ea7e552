//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package order builds the global label order of a run and its gap-slot
// table. Both are built once from every included sequence and are
// read-only afterwards.
package order

import (
	"github.com/biogo/store/llrb"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

// node is a distinct label stored in the ordered tree.
type node struct {
	key label.Key
	lbl label.Label
}

func (n node) Compare(c llrb.Comparable) int {
	return n.key.Compare(c.(node).key)
}

// Order maps every distinct non-empty label of a run to its dense rank.
type Order struct {
	ordinals map[label.Key]int
	labels   []label.Label
}

// Build collects the distinct labels of all sequences and ranks them from 1
// in sort key order.
func Build(seqs []*record.Sequence) *Order {
	tree := &llrb.Tree{}
	for _, seq := range seqs {
		for _, r := range seq.Residues {
			if r.Label.IsEmpty() {
				continue
			}
			n := node{key: r.Label.Key(), lbl: r.Label}
			if tree.Get(n) == nil {
				tree.Insert(n)
			}
		}
	}
	o := &Order{ordinals: make(map[label.Key]int, tree.Len()), labels: make([]label.Label, 0, tree.Len())}
	tree.Do(func(c llrb.Comparable) (done bool) {
		n := c.(node)
		o.labels = append(o.labels, n.lbl)
		o.ordinals[n.key] = len(o.labels)
		return
	})
	return o
}

// Ordinal returns the rank of a label.
func (o *Order) Ordinal(l label.Label) (int, bool) {
	if l.IsEmpty() {
		return 0, false
	}
	ord, ok := o.ordinals[l.Key()]
	return ord, ok
}

// Len returns the number of distinct labels.
func (o *Order) Len() int {
	return len(o.labels)
}

// Label returns the label of rank ord.
func (o *Order) Label(ord int) label.Label {
	return o.labels[ord-1]
}

// Labels returns the labels in rank order.
func (o *Order) Labels() []label.Label {
	return append([]label.Label(nil), o.labels...)
}

// Ordinals returns the rank of every residue of seq, 0 for residues
// without label.
func (o *Order) Ordinals(seq *record.Sequence) []int {
	ords := make([]int, len(seq.Residues))
	for i, r := range seq.Residues {
		ords[i], _ = o.Ordinal(r.Label)
	}
	return ords
}
