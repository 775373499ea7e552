//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package filter removes sequences that cannot share the coordinate space
// of a run, either because of their structural class or because their
// annotation fails sanity checks.
package filter

import (
	"errors"
	"regexp"
	"strings"

	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

// Structural classes
const (
	ClassStandard       = "standard"
	ClassOrganelle      = "organelle"
	ClassSelenocysteine = "selenocysteine"
	ClassInitiator      = "initiator"
)

// Structural types
const (
	Type1 = "type1"
	Type2 = "type2"
)

// Exclusion reasons
const (
	ReasonStructural   = "structural type"
	ReasonDuplicate    = "duplicate identifier"
	ReasonListed       = "excluded list"
	ReasonLabel        = "unrecognized label"
	ReasonOrder        = "canonical order violation"
	ReasonNoLabel      = "no structural labels"
	ReasonUnresolved   = "anticodon unresolved"
	ReasonUnverifiable = "identity unverifiable"
	ReasonMismatch     = "anticodon mismatch"
	ReasonTLoop        = "invalid T-loop motif"
	ReasonOffset       = "offset undetermined"
)

// ErrEmpty is returned when no sequence survives filtering.
var ErrEmpty = errors.New("no sequence left after filtering")

var identity = regexp.MustCompile(`(?i)tRNA-([A-Za-z]+)-([ACGTUN]{3})`)

type Config struct {
	// Organelle selects the organelle run instead of the standard run.
	Organelle bool
	// Exclusions lists identifiers excluded for annotation quality. May be nil.
	Exclusions set.Interface
}

type Exclusion struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// Classify returns the structural class encoded in a sequence identifier.
func Classify(id string) string {
	u := strings.ToUpper(id)
	switch {
	case strings.Contains(u, "SEC") || strings.Contains(u, "SELENOCYSTEINE"):
		return ClassSelenocysteine
	case strings.Contains(u, "MITO-TRNA") || strings.HasPrefix(u, "MITO-"):
		return ClassOrganelle
	case strings.Contains(u, "IMET") || strings.Contains(u, "INITIAT") || strings.Contains(u, "FMET"):
		return ClassInitiator
	}
	return ClassStandard
}

// StructuralType returns Type2 for tRNAs with an extended variable arm
// (Leu, Ser, Tyr) and Type1 otherwise.
func StructuralType(id string) string {
	if aa, _, ok := Identity(id); ok {
		switch aa {
		case "LEU", "SER", "TYR":
			return Type2
		}
	}
	return Type1
}

// Identity returns the upper-cased amino acid and the anticodon (DNA)
// declared in a sequence identifier such as "nuc-tRNA-Ala-AGC-1-1".
func Identity(id string) (aa, anticodon string, ok bool) {
	m := identity.FindStringSubmatch(id)
	if m == nil {
		return
	}
	aa = strings.ToUpper(m[1])
	if _, known := aminoAcids[aa]; !known {
		return "", "", false
	}
	return aa, ToDNA(m[2]), true
}

// Check runs the annotation-quality checks and returns the first failing
// reason, or "" when the sequence passes.
func Check(seq *record.Sequence, cfg Config) string {
	if cfg.Exclusions != nil && cfg.Exclusions.Has(seq.ID) {
		return ReasonListed
	}
	labeled := false
	for _, r := range seq.Residues {
		if r.Label.Kind == label.KindOther {
			return ReasonLabel
		}
		if !r.Label.IsEmpty() {
			labeled = true
		}
	}
	if _, ok := seq.CanonicalMonotone(); !ok {
		return ReasonOrder
	}
	if !labeled {
		return ReasonNoLabel
	}

	// Anticodon
	window, ok := seq.Window(34, 36)
	if !ok {
		return ReasonUnresolved
	}
	aa, anticodon, ok := Identity(seq.ID)
	if !ok {
		return ReasonUnverifiable
	}
	window = ToDNA(window)
	if window != anticodon || DecodeAnticodon(window, cfg.Organelle) != aminoAcids[aa] {
		return ReasonMismatch
	}

	// T-loop: TΨC or its single-substitution variants
	tloop, ok := seq.Window(54, 56)
	if !ok || !ValidTLoop(tloop) {
		return ReasonTLoop
	}
	return ""
}

// ValidTLoop reports whether the 54-56 window is UUC, UUU or any triplet
// ending in UC.
func ValidTLoop(w string) bool {
	w = ToDNA(w)
	if len(w) != 3 {
		return false
	}
	return w == "TTT" || w[1:] == "TC"
}

// Partition splits sequences into the ones belonging to the run and the
// excluded ones, each with a reason. Only the first sequence of an
// identifier is kept. It returns ErrEmpty when nothing is left.
func Partition(seqs []*record.Sequence, cfg Config) (included []*record.Sequence, excluded []Exclusion, err error) {
	target := ClassStandard
	if cfg.Organelle {
		target = ClassOrganelle
	}
	seen := set.New(set.NonThreadSafe)
	for _, seq := range seqs {
		var reason string
		if seen.Has(seq.ID) {
			reason = ReasonDuplicate
		} else if Classify(seq.ID) != target {
			reason = ReasonStructural
		} else {
			reason = Check(seq, cfg)
		}
		seen.Add(seq.ID)
		if reason != "" {
			excluded = append(excluded, Exclusion{ID: seq.ID, Source: seq.Source, Reason: reason})
		} else {
			included = append(included, seq)
		}
	}
	if len(included) == 0 {
		err = ErrEmpty
	}
	return
}
