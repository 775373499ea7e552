//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"git.sr.ht/~vejnar/tRNAspace/lib/cmapper"
	"git.sr.ht/~vejnar/tRNAspace/lib/filter"
	"git.sr.ht/~vejnar/tRNAspace/lib/space"
)

type Report struct {
	Documents  int                 `json:"documents"`
	Skipped    []Skipped           `json:"skipped"`
	Excluded   []filter.Exclusion  `json:"excluded"`
	Runs       []RunReport         `json:"runs"`
	Summaries  []space.Summary     `json:"annotation_issues"`
	Collisions []cmapper.Collision `json:"collisions,omitempty"`
}

type RunReport struct {
	Name      string           `json:"name"`
	Path      string           `json:"path"`
	Sequences int              `json:"sequences"`
	Labels    int              `json:"labels"`
	Gaps      int              `json:"gaps"`
	Length    int              `json:"global_positions"`
	Rows      int              `json:"rows"`
	Terminal  []space.Terminal `json:"terminal_positions"`
	Reviews   []space.Review   `json:"label_index_reviews"`
}

func NewRunReport(run *space.Run, path string) RunReport {
	return RunReport{
		Name:      run.Name,
		Path:      path,
		Sequences: run.Sequences,
		Labels:    run.Labels,
		Gaps:      run.Gaps,
		Length:    run.Length,
		Rows:      len(run.Rows),
		Terminal:  run.Terminal,
		Reviews:   run.Reviews,
	}
}

// Included returns the number of sequences placed in a coordinate space.
func (r *Report) Included() (n int) {
	for _, run := range r.Runs {
		n += run.Sequences
	}
	return
}

func WriteReport(pathReport string, report *Report) error {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if pathReport == "-" {
		_, err = fmt.Println(string(out))
		return err
	}
	f, err := os.Create(pathReport)
	if err != nil {
		return err
	}
	if _, err = f.Write(out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
