//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
)

func TestSprinzlTiling(t *testing.T) {
	c, err := NewClassifier(Sprinzl)
	require.NoError(t, err)
	for p := label.MinCanonical; p <= label.MaxCanonical; p++ {
		assert.NotEqual(t, Unknown, c.Region(p), p)
	}
}

func TestRegion(t *testing.T) {
	c, err := NewClassifier(Sprinzl)
	require.NoError(t, err)
	tests := map[int]string{
		1: "acceptor-stem", 7: "acceptor-stem", 8: "D-stem", 14: "D-loop",
		21: "D-loop", 25: "D-stem", 26: "anticodon-stem", 34: "anticodon-loop",
		43: "anticodon-stem", 47: "variable-region", 49: "T-stem", 55: "T-loop",
		65: "T-stem", 72: "acceptor-stem", 73: "acceptor-tail", 76: "acceptor-tail",
		label.Unresolved: Unknown, 0: Unknown, 77: Unknown,
	}
	for p, want := range tests {
		assert.Equal(t, want, c.Region(p), p)
	}
}

func TestClassifyOverride(t *testing.T) {
	c, err := NewClassifier(Sprinzl)
	require.NoError(t, err)
	assert.Equal(t, VariableArm, c.Classify(&record.Residue{Label: label.Extension(1), Canonical: label.Unresolved}))
	// Inferred positions never win over the extended arm
	assert.Equal(t, VariableArm, c.Classify(&record.Residue{Label: label.Extension(21), Canonical: 47}))
	assert.Equal(t, "D-loop", c.Classify(&record.Residue{Label: label.Suffixed(20, "A"), Canonical: 20}))
	assert.Equal(t, Unknown, c.Classify(&record.Residue{Label: label.Empty, Canonical: label.Unresolved}))
}

func TestNewClassifierInvalid(t *testing.T) {
	_, err := NewClassifier([]Range{{1, 40, "a"}, {42, 76, "b"}})
	assert.Error(t, err)
	_, err = NewClassifier([]Range{{1, 40, "a"}, {40, 76, "b"}})
	assert.Error(t, err)
	_, err = NewClassifier([]Range{{1, 40, "a"}, {41, 70, "b"}})
	assert.Error(t, err)
	_, err = NewClassifier([]Range{{2, 76, "a"}})
	assert.Error(t, err)
	_, err = NewClassifier([]Range{{41, 76, "b"}, {1, 40, "a"}})
	assert.NoError(t, err)
}
