//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"git.sr.ht/~vejnar/tRNAspace/lib/coord"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
	"git.sr.ht/~vejnar/tRNAspace/lib/space"
)

// Skipped is a document that could not be read.
type Skipped struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func checkFormat(format string) error {
	tableFormat, tableZip, _ := strings.Cut(format, "+")
	if tableFormat != "tsv" {
		return fmt.Errorf("Unknown output format %s", tableFormat)
	}
	switch tableZip {
	case "", "lz4", "lz4hc", "bgzf", "gz":
		return nil
	}
	return fmt.Errorf("Unknown output compression %s", tableZip)
}

// runPath returns the output path of a run: the table extension is kept
// last and the run name is appended to the base name.
func runPath(pathOutput, format, name string) string {
	ext := record.TableExtension(format)
	base := strings.TrimSuffix(pathOutput, ext)
	if name != "" {
		base += "_" + name
	}
	return base + ext
}

// FindDocuments returns the sorted paths of the documents under root.
func FindDocuments(root string) (paths []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && record.IsDocument(path) {
			paths = append(paths, path)
		}
		return nil
	})
	sort.Strings(paths)
	return
}

// OpenDocuments reads documents concurrently. Sequences keep the order of
// paths. Unreadable documents are skipped and returned.
func OpenDocuments(ctx context.Context, paths []string, nWorker int) (seqs []*record.Sequence, skipped []Skipped, err error) {
	results := make([]*record.Sequence, len(paths))
	errs := make([]error, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nWorker)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = record.OpenR2DT(p)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	for i, p := range paths {
		if errs[i] != nil {
			skipped = append(skipped, Skipped{Path: p, Error: errs[i].Error()})
			continue
		}
		seqs = append(seqs, results[i])
	}
	return
}

// BuildSpace reads the documents of pathJSON, builds the coordinate
// space(s) and writes one table per run. The report is returned even on
// error.
func BuildSpace(pathJSON, pathOutput, formatOutput string, cfg space.Config, timeStart time.Time, verboseLevel int) (*Report, error) {
	report := &Report{}
	ctx := context.Background()
	if cfg.NumWorker < 1 {
		cfg.NumWorker = 1
	}
	if cfg.Precision < 1 {
		cfg.Precision = coord.DefaultPrecision
	}

	// Documents
	paths, err := FindDocuments(pathJSON)
	if err != nil {
		return report, err
	}
	report.Documents = len(paths)
	if verboseLevel > 0 {
		timeNow := time.Now()
		fmt.Printf("%.1fmin - Found %d document(s)\n", timeNow.Sub(timeStart).Minutes(), len(paths))
	}
	seqs, skipped, err := OpenDocuments(ctx, paths, cfg.NumWorker)
	if err != nil {
		return report, err
	}
	report.Skipped = skipped
	for _, s := range skipped {
		fmt.Printf("Warning: skipping %s (%s)\n", s.Path, s.Error)
	}

	// Coordinates
	res, err := space.Build(ctx, seqs, cfg)
	if res != nil {
		report.Excluded = res.Excluded
		report.Summaries = res.Summaries
	}
	if verboseLevel > 1 && res != nil {
		for _, e := range res.Excluded {
			fmt.Printf("%.1fmin - Excluded %s: %s\n", time.Since(timeStart).Minutes(), e.ID, e.Reason)
		}
	}
	if err != nil {
		return report, err
	}

	// Output
	for _, run := range res.Runs {
		p := runPath(pathOutput, formatOutput, run.Name)
		if err := record.WriteTable(run.Rows, p, formatOutput, cfg.Precision); err != nil {
			return report, err
		}
		report.Runs = append(report.Runs, NewRunReport(run, p))
		if verboseLevel > 0 {
			timeNow := time.Now()
			fmt.Printf("%.1fmin - Wrote %s: %d tRNA(s), %d label(s), %d global position(s)\n", timeNow.Sub(timeStart).Minutes(), p, run.Sequences, run.Labels, run.Length)
		}
	}
	return report, nil
}
