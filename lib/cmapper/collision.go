//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package cmapper

import (
	"fmt"
	"sort"
	"strings"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

// Number of example sequences reported per colliding label.
const maxExamples = 3

// Collision is a global index shared by distinct structural positions.
type Collision struct {
	GlobalIndex int                 `json:"global_index"`
	Labels      []string            `json:"labels"`
	Examples    map[string][]string `json:"examples"`
}

type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d global index collision(s)", len(e.Collisions))
	for _, c := range e.Collisions {
		fmt.Fprintf(&b, "\n  global_index %d:", c.GlobalIndex)
		for _, l := range c.Labels {
			fmt.Fprintf(&b, "\n    - position '%s' (examples: %s)", l, strings.Join(c.Examples[l], ", "))
		}
	}
	return b.String()
}

// Validate checks that no global index is shared by two rows carrying
// distinct labels. Unlabeled rows are slot positions and are not checked,
// even when a canonical position was inferred for them. It returns a
// *CollisionError listing every offending index.
func Validate(rows []record.Row) error {
	type group struct {
		labels   []string
		examples map[string][]string
	}
	groups := make(map[int]*group)
	for _, r := range rows {
		if r.Label.IsEmpty() {
			continue
		}
		pl := r.Label.String()
		g, ok := groups[r.GlobalIndex]
		if !ok {
			g = &group{examples: make(map[string][]string)}
			groups[r.GlobalIndex] = g
		}
		ex, ok := g.examples[pl]
		if !ok {
			g.labels = append(g.labels, pl)
		}
		if len(ex) < maxExamples && !contains(ex, r.SequenceID) {
			g.examples[pl] = append(ex, r.SequenceID)
		}
	}

	var collisions []Collision
	for gi, g := range groups {
		if len(g.labels) < 2 {
			continue
		}
		sort.Slice(g.labels, func(i, j int) bool {
			return label.Parse(g.labels[i]).Key().Compare(label.Parse(g.labels[j]).Key()) < 0
		})
		collisions = append(collisions, Collision{GlobalIndex: gi, Labels: g.labels, Examples: g.examples})
	}
	if len(collisions) == 0 {
		return nil
	}
	sort.Slice(collisions, func(i, j int) bool { return collisions[i].GlobalIndex < collisions[j].GlobalIndex })
	return &CollisionError{Collisions: collisions}
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
