//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package space

import (
	"bytes"
	"context"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/tRNAspace/lib/filter"
	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
	"git.sr.ht/~vejnar/tRNAspace/lib/region"
)

func numbered(from, to int) (labels []string) {
	for i := from; i <= to; i++ {
		labels = append(labels, strconv.Itoa(i))
	}
	return
}

func concat(parts ...[]string) (labels []string) {
	for _, p := range parts {
		labels = append(labels, p...)
	}
	return
}

// trna builds a sequence from labels. Residues labeled 34-36 read the
// anticodon, 54-56 read UUC, every other residue is G.
func trna(t *testing.T, id, anticodon string, labels []string) *record.Sequence {
	t.Helper()
	rs := make([]record.Residue, len(labels))
	for i, l := range labels {
		sym := "G"
		if p, err := strconv.Atoi(l); err == nil {
			switch {
			case p >= 34 && p <= 36:
				sym = string(anticodon[p-34])
			case p == 54 || p == 55:
				sym = "U"
			case p == 56:
				sym = "C"
			}
		}
		rs[i] = record.Residue{SeqIndex: i + 1, Raw: l, Symbol: sym, Template: label.Unresolved}
	}
	seq, err := record.NewSequence(id, id+".enriched.json", rs)
	require.NoError(t, err)
	return seq
}

// shift sets the template index of every residue to its seq_index plus d.
func shift(seq *record.Sequence, d int) *record.Sequence {
	for i := range seq.Residues {
		seq.Residues[i].Template = seq.Residues[i].SeqIndex + d
	}
	return seq
}

func corpus(t *testing.T) []*record.Sequence {
	return []*record.Sequence{
		trna(t, "nuc-tRNA-Gly-GCC-1-1", "GCC", concat(numbered(1, 21), []string{"", ""}, numbered(22, 76))),
		trna(t, "nuc-tRNA-Gly-GCC-2-1", "GCC", concat(numbered(1, 21), []string{"", "", ""}, numbered(22, 76))),
		trna(t, "nuc-tRNA-Ala-AGC-1-1", "AGC", concat(numbered(1, 20), []string{"20A"}, numbered(21, 76))),
		trna(t, "nuc-tRNA-Val-AAC-1-1", "AAC", concat(numbered(1, 73), []string{"", "", ""})),
		trna(t, "nuc-tRNA-Ala-AGC-2-1", "GGC", numbered(1, 76)),
		trna(t, "mito-tRNA-Trp-TCA-1-1", "UCA", numbered(1, 76)),
	}
}

func build(t *testing.T, seqs []*record.Sequence, cfg Config) *Result {
	t.Helper()
	res, err := Build(context.Background(), seqs, cfg)
	require.NoError(t, err)
	return res
}

func rowsOf(rows []record.Row, id string) (out []record.Row) {
	for _, r := range rows {
		if r.SequenceID == id {
			out = append(out, r)
		}
	}
	return
}

func TestBuildExclusions(t *testing.T) {
	res := build(t, corpus(t), Config{})
	assert.Equal(t, []filter.Exclusion{
		{ID: "nuc-tRNA-Ala-AGC-2-1", Source: "nuc-tRNA-Ala-AGC-2-1.enriched.json", Reason: "anticodon mismatch"},
		{ID: "mito-tRNA-Trp-TCA-1-1", Source: "mito-tRNA-Trp-TCA-1-1.enriched.json", Reason: "structural type"},
	}, res.Excluded)
	require.Len(t, res.Runs, 1)
	run := res.Runs[0]
	assert.Equal(t, "", run.Name)
	assert.Equal(t, 4, run.Sequences)
	assert.Empty(t, rowsOf(run.Rows, "nuc-tRNA-Ala-AGC-2-1"))
	// 1-76 and 20A
	assert.Equal(t, 77, run.Labels)
}

func TestBuildFixedSlots(t *testing.T) {
	run := build(t, corpus(t), Config{}).Runs[0]
	two := rowsOf(run.Rows, "nuc-tRNA-Gly-GCC-1-1")[20:24]
	three := rowsOf(run.Rows, "nuc-tRNA-Gly-GCC-2-1")[20:25]
	assert.Equal(t, two[0].GlobalIndex, three[0].GlobalIndex)
	assert.Equal(t, two[1].GlobalIndex, three[1].GlobalIndex)
	assert.Equal(t, two[2].GlobalIndex, three[2].GlobalIndex)
	assert.Equal(t, two[3].GlobalIndex, three[4].GlobalIndex)
	assert.Equal(t, three[2].GlobalIndex+1, three[3].GlobalIndex)
	assert.Equal(t, three[3].GlobalIndex+1, three[4].GlobalIndex)

	// 21 is ranked after 20A
	assert.Equal(t, []float64{22, 22.25, 22.5, 23}, []float64{two[0].Continuous, two[1].Continuous, two[2].Continuous, two[3].Continuous})
	assert.Equal(t, 22, two[0].Ordinal)
	assert.Equal(t, 0, two[1].Ordinal)
	assert.Equal(t, label.Unresolved, two[1].Canonical)
	assert.Equal(t, region.Unknown, two[1].Region)
	assert.Equal(t, "D-loop", two[0].Region)
}

func TestBuildMonotone(t *testing.T) {
	run := build(t, corpus(t), Config{}).Runs[0]
	var prev *record.Row
	lastCanonical := label.Unresolved
	for i := range run.Rows {
		r := &run.Rows[i]
		if prev == nil || prev.SequenceID != r.SequenceID {
			assert.Equal(t, 1, r.SeqIndex)
			lastCanonical = label.Unresolved
		} else {
			assert.Equal(t, prev.SeqIndex+1, r.SeqIndex)
			assert.Less(t, prev.GlobalIndex, r.GlobalIndex)
		}
		if r.Canonical != label.Unresolved {
			assert.GreaterOrEqual(t, r.Canonical, lastCanonical)
			lastCanonical = r.Canonical
		}
		prev = r
	}
}

func TestBuildCollisionFree(t *testing.T) {
	run := build(t, corpus(t), Config{}).Runs[0]
	byIndex := make(map[int]map[string]bool)
	maxIndex := 0
	for _, r := range run.Rows {
		if r.GlobalIndex > maxIndex {
			maxIndex = r.GlobalIndex
		}
		if r.Label.IsEmpty() {
			continue
		}
		pl := r.Label.String()
		if byIndex[r.GlobalIndex] == nil {
			byIndex[r.GlobalIndex] = make(map[string]bool)
		}
		byIndex[r.GlobalIndex][pl] = true
	}
	for gi, labels := range byIndex {
		assert.Len(t, labels, 1, gi)
	}
	assert.Equal(t, run.Length, maxIndex)
}

func TestBuildDeterministic(t *testing.T) {
	var want bytes.Buffer
	for _, r := range build(t, corpus(t), Config{}).Runs {
		require.NoError(t, record.EncodeTable(&want, r.Rows, "tsv", 6))
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		seqs := corpus(t)
		rng.Shuffle(len(seqs), func(i, j int) { seqs[i], seqs[j] = seqs[j], seqs[i] })
		var got bytes.Buffer
		for _, r := range build(t, seqs, Config{NumWorker: 1 + i}).Runs {
			require.NoError(t, record.EncodeTable(&got, r.Rows, "tsv", 6))
		}
		assert.Equal(t, want.String(), got.String())
	}
}

func TestBuildTerminal(t *testing.T) {
	run := build(t, corpus(t), Config{}).Runs[0]
	require.Len(t, run.Terminal, 4)
	assert.Equal(t, 73, run.Terminal[0].Canonical)
	require.Len(t, run.Terminal[0].Columns, 1)
	assert.Equal(t, uint64(4), run.Terminal[0].Columns[0].Sequences)

	// Inferred 3' positions of the shorter annotation sit apart
	t74 := run.Terminal[1]
	assert.Equal(t, 74, t74.Canonical)
	require.Len(t, t74.Columns, 2)
	assert.Equal(t, uint64(1), t74.Columns[0].Sequences)
	assert.Equal(t, uint64(3), t74.Columns[1].Sequences)
	assert.Less(t, t74.Columns[0].GlobalIndex, t74.Columns[1].GlobalIndex)
}

func TestBuildSplitType(t *testing.T) {
	seqs := append(corpus(t),
		trna(t, "nuc-tRNA-Leu-CAA-1-1", "CAA", concat(numbered(1, 46), []string{"e11", "e12", "e1", "e21"}, numbered(47, 76))),
		trna(t, "nuc-tRNA-Ser-GCT-1-1", "GCT", concat(numbered(1, 46), []string{"e11", "e1", "e2", "e22", "e21"}, numbered(47, 76))),
	)
	res := build(t, seqs, Config{SplitType: true})
	require.Len(t, res.Runs, 2)
	assert.Equal(t, filter.Type1, res.Runs[0].Name)
	assert.Equal(t, 4, res.Runs[0].Sequences)
	assert.Equal(t, filter.Type2, res.Runs[1].Name)
	assert.Equal(t, 2, res.Runs[1].Sequences)

	leu := rowsOf(res.Runs[1].Rows, "nuc-tRNA-Leu-CAA-1-1")
	ser := rowsOf(res.Runs[1].Rows, "nuc-tRNA-Ser-GCT-1-1")
	for _, r := range leu[46:50] {
		assert.Equal(t, region.VariableArm, r.Region)
		assert.Equal(t, label.Unresolved, r.Canonical)
	}
	assert.Equal(t, "variable-region", leu[45].Region)
	// e11 and e1 share columns across sequences, following the hairpin
	assert.Equal(t, leu[46].GlobalIndex, ser[46].GlobalIndex)
	assert.Equal(t, leu[48].GlobalIndex, ser[47].GlobalIndex)
	assert.Less(t, leu[47].GlobalIndex, leu[48].GlobalIndex)
	assert.Less(t, ser[48].GlobalIndex, ser[49].GlobalIndex)
	assert.Equal(t, leu[49].GlobalIndex, ser[50].GlobalIndex)
	assert.Equal(t, leu[50].GlobalIndex, ser[51].GlobalIndex)
}

func TestBuildEmpty(t *testing.T) {
	seqs := []*record.Sequence{trna(t, "nuc-tRNA-Ala-AGC-2-1", "GGC", numbered(1, 76))}
	res, err := Build(context.Background(), seqs, Config{})
	assert.ErrorIs(t, err, filter.ErrEmpty)
	require.NotNil(t, res)
	assert.Len(t, res.Excluded, 1)
	assert.Equal(t, filter.ReasonMismatch, res.Excluded[0].Reason)
}

func TestBuildOrganelle(t *testing.T) {
	res := build(t, corpus(t), Config{Organelle: true})
	require.Len(t, res.Runs, 1)
	assert.Equal(t, 1, res.Runs[0].Sequences)
	assert.Len(t, res.Excluded, 5)
}

func TestBuildDeletionVariants(t *testing.T) {
	empty := func(n int) []string { return make([]string, n) }
	seqs := []*record.Sequence{
		trna(t, "nuc-tRNA-Gly-GCC-1-1", "GCC", concat(numbered(1, 16), empty(2), numbered(19, 76))),
		trna(t, "nuc-tRNA-Gly-GCC-2-1", "GCC", concat(numbered(1, 16), empty(3), numbered(19, 76))),
		trna(t, "nuc-tRNA-Gly-GCC-3-1", "GCC", concat(numbered(1, 16), empty(3), numbered(20, 76))),
		trna(t, "nuc-tRNA-Gly-GCC-4-1", "GCC", concat(numbered(1, 16), empty(5), numbered(20, 76))),
	}
	res := build(t, seqs, Config{})
	require.Len(t, res.Runs, 1)
	run := res.Runs[0]
	assert.Equal(t, 4, run.Sequences)

	// Inferred positions 18 and 19 share a slot column without colliding
	first := rowsOf(run.Rows, "nuc-tRNA-Gly-GCC-1-1")
	third := rowsOf(run.Rows, "nuc-tRNA-Gly-GCC-3-1")
	assert.Equal(t, 18, first[17].Canonical)
	assert.Equal(t, 19, third[18].Canonical)
	assert.True(t, first[17].Label.IsEmpty())
	assert.Equal(t, first[17].GlobalIndex, third[18].GlobalIndex)
	assert.Equal(t, "D-loop", third[18].Region)
}

func TestBuildDotted(t *testing.T) {
	seqs := []*record.Sequence{
		trna(t, "nuc-tRNA-Gly-GCC-1-1", "GCC", concat(numbered(1, 9), []string{"9.1"}, numbered(10, 76))),
		trna(t, "nuc-tRNA-Gly-GCC-2-1", "GCC", numbered(1, 76)),
	}
	res := build(t, seqs, Config{})
	assert.Empty(t, res.Excluded)
	run := res.Runs[0]
	assert.Equal(t, 77, run.Labels)

	dotted := rowsOf(run.Rows, "nuc-tRNA-Gly-GCC-1-1")[9]
	plain := rowsOf(run.Rows, "nuc-tRNA-Gly-GCC-2-1")
	assert.Equal(t, "9.1", dotted.Raw)
	assert.Equal(t, 9, dotted.Canonical)
	assert.Equal(t, 10, dotted.Ordinal)
	assert.Equal(t, "D-stem", dotted.Region)
	assert.Less(t, plain[8].GlobalIndex, dotted.GlobalIndex)
	assert.Less(t, dotted.GlobalIndex, plain[9].GlobalIndex)
}

func TestBuildSplitOffset(t *testing.T) {
	seqs := []*record.Sequence{
		shift(trna(t, "nuc-tRNA-Gly-GCC-1-1", "GCC", numbered(1, 76)), 0),
		shift(trna(t, "nuc-tRNA-Gly-GCC-2-1", "GCC", numbered(1, 76)), -2),
		shift(trna(t, "nuc-tRNA-Leu-CAA-1-1", "CAA", numbered(1, 76)), 0),
		trna(t, "nuc-tRNA-Val-AAC-1-1", "AAC", numbered(1, 76)),
	}
	res := build(t, seqs, Config{SplitOffset: true})
	assert.Equal(t, []filter.Exclusion{
		{ID: "nuc-tRNA-Val-AAC-1-1", Source: "nuc-tRNA-Val-AAC-1-1.enriched.json", Reason: filter.ReasonOffset},
	}, res.Excluded)
	var names []string
	for _, r := range res.Runs {
		names = append(names, r.Name)
		assert.Equal(t, 1, r.Sequences)
	}
	assert.Equal(t, []string{"offset+2_type1", "offset0_type1", "offset0_type2"}, names)
	assert.Equal(t, "nuc-tRNA-Gly-GCC-2-1", res.Runs[0].Rows[0].SequenceID)

	// Nothing left once offsets are unknown
	_, err := Build(context.Background(), seqs[3:], Config{SplitOffset: true})
	assert.ErrorIs(t, err, filter.ErrEmpty)
}
