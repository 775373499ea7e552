//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package label parses Sprinzl structural labels into a tagged variant and
// builds their sort keys.
package label

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	KindPlain = iota
	KindSuffixed
	KindExtension
	KindOther
	KindEmpty
	KindDotted
)

const (
	// MinCanonical and MaxCanonical bound the canonical Sprinzl positions.
	MinCanonical = 1
	MaxCanonical = 76
	// Unresolved marks a canonical position that could not be derived.
	Unresolved = -1
	// ExtensionAnchor is the canonical position the extended variable arm is spliced after.
	ExtensionAnchor = 46
)

// Label is a parsed Sprinzl label. Only the fields of its Kind are set:
// Plain uses Base, Suffixed uses Base and Suffix, Dotted uses Base and
// Minor, Extension uses Token, Other keeps the raw text in Suffix.
type Label struct {
	Kind   int
	Base   int
	Suffix string
	Minor  int
	Token  int
}

// Empty is the label of an unannotated residue.
var Empty = Label{Kind: KindEmpty}

func Plain(n int) Label { return Label{Kind: KindPlain, Base: n} }

func Suffixed(n int, suffix string) Label {
	return Label{Kind: KindSuffixed, Base: n, Suffix: strings.ToUpper(suffix)}
}

// Dotted is an insertion written "N.M".
func Dotted(n, minor int) Label { return Label{Kind: KindDotted, Base: n, Minor: minor} }

func Extension(k int) Label { return Label{Kind: KindExtension, Token: k} }

func Other(raw string) Label { return Label{Kind: KindOther, Suffix: raw} }

// Parse parses a raw label. Labels of unknown shape are returned as Other.
func Parse(raw string) Label {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Empty
	}
	// Extension token
	if (s[0] == 'e' || s[0] == 'E') && len(s) > 1 && isDigits(s[1:]) {
		k, err := strconv.Atoi(s[1:])
		if err == nil {
			return Extension(k)
		}
	}
	// Number with optional letter suffix
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return Other(s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return Other(s)
	}
	if i == len(s) {
		return Plain(n)
	}
	if isLetters(s[i:]) {
		return Suffixed(n, s[i:])
	}
	if s[i] == '.' && isDigits(s[i+1:]) {
		if minor, err := strconv.Atoi(s[i+1:]); err == nil {
			return Dotted(n, minor)
		}
	}
	return Other(s)
}

// String returns the normalized text of the label. Two raw labels with
// the same String share one ordinal.
func (l Label) String() string {
	switch l.Kind {
	case KindPlain:
		return strconv.Itoa(l.Base)
	case KindSuffixed:
		return strconv.Itoa(l.Base) + l.Suffix
	case KindDotted:
		return strconv.Itoa(l.Base) + "." + strconv.Itoa(l.Minor)
	case KindExtension:
		return "e" + strconv.Itoa(l.Token)
	case KindOther:
		return l.Suffix
	}
	return ""
}

// IsEmpty reports whether the residue carries no label.
func (l Label) IsEmpty() bool { return l.Kind == KindEmpty }

// IsInsertion reports whether the label is an insertion after its base
// position ("20A", "9.1").
func (l Label) IsInsertion() bool { return l.Kind == KindSuffixed || l.Kind == KindDotted }

// Canonical returns the canonical position carried by the label itself, or
// Unresolved. Suffixed insertions carry the position of their base.
func (l Label) Canonical() int {
	switch l.Kind {
	case KindPlain, KindSuffixed, KindDotted:
		if l.Base >= MinCanonical && l.Base <= MaxCanonical {
			return l.Base
		}
	}
	return Unresolved
}

// Key is a comparable sort key. Every slot has a single type; Secondary is
// always a string so that mixed batches compare without conversion.
type Key struct {
	Primary   int
	Kind      int
	Secondary string
}

// Key returns the sort key of the label.
func (l Label) Key() Key {
	switch l.Kind {
	case KindPlain:
		return Key{Primary: l.Base, Kind: KindPlain}
	case KindSuffixed:
		return Key{Primary: l.Base, Kind: KindSuffixed, Secondary: l.Suffix}
	case KindDotted:
		return Key{Primary: l.Base, Kind: KindSuffixed, Secondary: padRank(l.Minor)}
	case KindExtension:
		return Key{Primary: ExtensionAnchor, Kind: KindExtension, Secondary: padRank(HairpinRank(l.Token))}
	case KindOther:
		return Key{Primary: math.MaxInt - 1, Kind: KindOther, Secondary: l.Suffix}
	}
	return Key{Primary: math.MaxInt, Kind: KindEmpty}
}

// Compare returns -1, 0 or 1.
func (k Key) Compare(o Key) int {
	switch {
	case k.Primary < o.Primary:
		return -1
	case k.Primary > o.Primary:
		return 1
	case k.Kind < o.Kind:
		return -1
	case k.Kind > o.Kind:
		return 1
	}
	return strings.Compare(k.Secondary, o.Secondary)
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,%d,%q)", k.Primary, k.Kind, k.Secondary)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return len(s) > 0
}
