//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package space

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

// Canonical positions of the 3' end.
const (
	terminalStart = 73
	terminalEnd   = 76
)

// Thresholds of the annotation summary.
const (
	EmptyThreshold = 20.0
	RunThreshold   = 5
)

// Terminal lists the global indexes a 3' canonical position was placed at.
type Terminal struct {
	Canonical int              `json:"canonical_index"`
	Columns   []TerminalColumn `json:"columns"`
}

type TerminalColumn struct {
	GlobalIndex int    `json:"global_index"`
	Sequences   uint64 `json:"sequences"`
}

// TerminalReport reports, for each canonical position 73-76, the distinct
// global indexes observed and how many sequences use each.
func TerminalReport(rows []record.Row) (terminals []Terminal) {
	seqNumbers := make(map[string]uint32)
	columns := make(map[int]map[int]*roaring.Bitmap)
	for _, r := range rows {
		n, ok := seqNumbers[r.SequenceID]
		if !ok {
			n = uint32(len(seqNumbers))
			seqNumbers[r.SequenceID] = n
		}
		if r.Canonical < terminalStart || r.Canonical > terminalEnd || r.Label.IsInsertion() {
			continue
		}
		if columns[r.Canonical] == nil {
			columns[r.Canonical] = make(map[int]*roaring.Bitmap)
		}
		bm, ok := columns[r.Canonical][r.GlobalIndex]
		if !ok {
			bm = roaring.New()
			columns[r.Canonical][r.GlobalIndex] = bm
		}
		bm.Add(n)
	}
	for p := terminalStart; p <= terminalEnd; p++ {
		if len(columns[p]) == 0 {
			continue
		}
		t := Terminal{Canonical: p}
		for gi, bm := range columns[p] {
			t.Columns = append(t.Columns, TerminalColumn{GlobalIndex: gi, Sequences: bm.GetCardinality()})
		}
		sort.Slice(t.Columns, func(i, j int) bool { return t.Columns[i].GlobalIndex < t.Columns[j].GlobalIndex })
		terminals = append(terminals, t)
	}
	return
}

// Review is a label falling inside the positions skipped by a jump of the
// template index. It is reported for manual review and never corrected.
type Review struct {
	SequenceID     string `json:"sequence_id"`
	SeqIndex       int    `json:"seq_index"`
	LabelBefore    string `json:"label_before"`
	Label          string `json:"label"`
	TemplateBefore int    `json:"template_before"`
	Template       int    `json:"template"`
}

// ReviewJumps flags residues following a deletion in the template index
// (prev+1 < cur) whose plain label lies in the skipped range.
func ReviewJumps(seqs []*record.Sequence) (reviews []Review) {
	for _, seq := range seqs {
		for i := 1; i < len(seq.Residues); i++ {
			prev, cur := seq.Residues[i-1], seq.Residues[i]
			if prev.Template <= 0 || cur.Template <= prev.Template+1 {
				continue
			}
			if cur.Label.Kind != label.KindPlain {
				continue
			}
			if cur.Label.Base <= prev.Template || cur.Label.Base >= cur.Template {
				continue
			}
			reviews = append(reviews, Review{
				SequenceID:     seq.ID,
				SeqIndex:       cur.SeqIndex,
				LabelBefore:    prev.Raw,
				Label:          cur.Raw,
				TemplateBefore: prev.Template,
				Template:       cur.Template,
			})
		}
	}
	return
}

// Summary describes the annotation coverage of a sequence.
type Summary struct {
	SequenceID string   `json:"sequence_id"`
	Source     string   `json:"source_document"`
	Total      int      `json:"total_positions"`
	Empty      int      `json:"empty_labels"`
	EmptyPct   float64  `json:"empty_pct"`
	MaxRun     int      `json:"max_gap"`
	Anticodon  bool     `json:"has_anticodon_labels"`
	Reasons    []string `json:"issue_reasons"`
}

// Summarize returns the summaries of the sequences with an annotation issue:
// too many empty labels, unlabeled anticodon or a long unlabeled run.
// Auto-filled labels count as empty.
func Summarize(seqs []*record.Sequence) (summaries []Summary) {
	for _, seq := range seqs {
		s := Summary{SequenceID: seq.ID, Source: seq.Source, Total: seq.Length(), Anticodon: true}
		run := 0
		for _, r := range seq.Residues {
			if r.Raw == "" || r.Filled {
				s.Empty++
				run++
				if run > s.MaxRun {
					s.MaxRun = run
				}
			} else {
				run = 0
			}
		}
		for p := 34; p <= 36; p++ {
			if r, ok := seq.Canonical(p); !ok || r.Raw == "" || r.Filled {
				s.Anticodon = false
			}
		}
		if s.Total > 0 {
			s.EmptyPct = 100 * float64(s.Empty) / float64(s.Total)
		}
		if s.EmptyPct > EmptyThreshold {
			s.Reasons = append(s.Reasons, fmt.Sprintf("%.1f%% empty labels", s.EmptyPct))
		}
		if !s.Anticodon {
			s.Reasons = append(s.Reasons, "missing anticodon labels (34-36)")
		}
		if s.MaxRun > RunThreshold {
			s.Reasons = append(s.Reasons, fmt.Sprintf("large gap (%d positions)", s.MaxRun))
		}
		if len(s.Reasons) > 0 {
			summaries = append(summaries, s)
		}
	}
	return
}
