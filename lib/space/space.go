//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package space builds the shared coordinate axis of a tRNA corpus in two
// phases: the label order and gap-slot table are built from every included
// sequence, then each sequence is placed on the axis.
package space

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/tRNAspace/lib/cmapper"
	"git.sr.ht/~vejnar/tRNAspace/lib/coord"
	"git.sr.ht/~vejnar/tRNAspace/lib/filter"
	"git.sr.ht/~vejnar/tRNAspace/lib/order"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
	"git.sr.ht/~vejnar/tRNAspace/lib/region"
)

type Config struct {
	// Organelle builds the organelle run instead of the standard run.
	Organelle bool
	// SplitType builds one run per structural type.
	SplitType bool
	// SplitOffset builds one run per labeling offset and structural type.
	SplitOffset bool
	// Precision is the number of decimal places of continuous coordinates.
	Precision int
	// Exclusions lists identifiers excluded for annotation quality. May be nil.
	Exclusions set.Interface
	NumWorker  int
}

// Run is one coordinate space with its own label order.
type Run struct {
	Name      string
	Rows      []record.Row
	Sequences int
	Labels    int
	Gaps      int
	Length    int
	Terminal  []Terminal
	Reviews   []Review
}

type Result struct {
	Runs      []*Run
	Excluded  []filter.Exclusion
	Summaries []Summary
}

// Build filters seqs and builds the coordinate space of each run. It fails
// when no sequence is left or when two structural positions share a
// global index.
func Build(ctx context.Context, seqs []*record.Sequence, cfg Config) (*Result, error) {
	if cfg.Precision <= 0 {
		cfg.Precision = coord.DefaultPrecision
	}
	if cfg.NumWorker <= 0 {
		cfg.NumWorker = runtime.NumCPU()
	}
	res := &Result{Summaries: Summarize(seqs)}

	included, excluded, err := filter.Partition(seqs, filter.Config{Organelle: cfg.Organelle, Exclusions: cfg.Exclusions})
	res.Excluded = excluded
	if err != nil {
		return res, err
	}

	// Runs
	groups := map[string][]*record.Sequence{"": included}
	switch {
	case cfg.SplitOffset:
		groups = make(map[string][]*record.Sequence)
		for _, seq := range included {
			offset, ok := Offset(seq)
			if !ok {
				res.Excluded = append(res.Excluded, filter.Exclusion{ID: seq.ID, Source: seq.Source, Reason: filter.ReasonOffset})
				continue
			}
			name := OffsetName(offset) + "_" + filter.StructuralType(seq.ID)
			groups[name] = append(groups[name], seq)
		}
		if len(groups) == 0 {
			return res, filter.ErrEmpty
		}
	case cfg.SplitType:
		groups = make(map[string][]*record.Sequence)
		for _, seq := range included {
			t := filter.StructuralType(seq.ID)
			groups[t] = append(groups[t], seq)
		}
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	classifier, err := region.NewClassifier(region.Sprinzl)
	if err != nil {
		return res, err
	}
	for _, name := range names {
		run, err := buildRun(ctx, name, groups[name], classifier, cfg)
		if err != nil {
			return res, err
		}
		res.Runs = append(res.Runs, run)
	}
	return res, nil
}

func buildRun(ctx context.Context, name string, seqs []*record.Sequence, classifier *region.Classifier, cfg Config) (*Run, error) {
	seqs = append([]*record.Sequence(nil), seqs...)
	sort.Stable(record.ByID(seqs))

	// Phase 1: order and slots, frozen from here
	o := order.Build(seqs)
	slots := order.BuildSlots(seqs, o)

	// Phase 2: per-sequence coordinates
	ords := make([][]int, len(seqs))
	conts := make([][]float64, len(seqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorker)
	for i, seq := range seqs {
		i, seq := i, seq
		g.Go(func() (err error) {
			if err = gctx.Err(); err != nil {
				return
			}
			ords[i], conts[i], err = coord.Interpolate(seq, o, slots, cfg.Precision)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Global index
	cm := cmapper.NewCoordMapper(cfg.Precision)
	for _, cont := range conts {
		cm.Add(cont...)
	}
	cm.Init()

	run := &Run{Name: name, Sequences: len(seqs), Labels: o.Len(), Gaps: slots.Len(), Length: cm.Length}
	for i, seq := range seqs {
		for j := range seq.Residues {
			gi, _ := cm.Continuous2Global(conts[i][j])
			run.Rows = append(run.Rows, record.Row{
				Residue:     &seq.Residues[j],
				SequenceID:  seq.ID,
				Source:      seq.Source,
				Ordinal:     ords[i][j],
				Continuous:  conts[i][j],
				GlobalIndex: gi,
				Region:      classifier.Classify(&seq.Residues[j]),
			})
		}
	}
	if err := cmapper.Validate(run.Rows); err != nil {
		return nil, err
	}

	run.Terminal = TerminalReport(run.Rows)
	run.Reviews = ReviewJumps(seqs)
	return run, nil
}
