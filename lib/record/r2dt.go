//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"git.sr.ht/~vejnar/tRNAspace/lib/label"
)

// ErrMalformed is returned for documents missing required fields.
var ErrMalformed = errors.New("malformed document")

var (
	documentSuffixes = []string{".enriched.json", ".json"}
	compressSuffixes = []string{".gz", ".zst"}
	isotypeModel     = regexp.MustCompile(`^(.*?)-[A-Z]_[A-Za-z0-9]+$`)
)

// IsDocument reports whether path names an R2DT enriched JSON, possibly compressed.
func IsDocument(path string) bool {
	name := trimCompress(filepath.Base(path))
	return strings.HasSuffix(name, ".enriched.json")
}

// SequenceID infers the sequence identifier from a document path, e.g.
// "tRNA-Ala-AGC-1-1-B_Ala.enriched.json" is "tRNA-Ala-AGC-1-1".
func SequenceID(path string) string {
	name := trimCompress(filepath.Base(path))
	for _, suf := range documentSuffixes {
		if strings.HasSuffix(name, suf) {
			name = strings.TrimSuffix(name, suf)
			break
		}
	}
	if m := isotypeModel.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

func trimCompress(name string) string {
	for _, suf := range compressSuffixes {
		if strings.HasSuffix(name, suf) {
			return strings.TrimSuffix(name, suf)
		}
	}
	return name
}

// OpenR2DT reads one R2DT enriched JSON document (plain, .gz or .zst).
func OpenR2DT(path string) (seq *Sequence, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	seq, err = ReadR2DT(r, SequenceID(path), filepath.Base(path))
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return
}

// ReadR2DT parses a document and returns the extracted sequence with
// auto-filled labels and inferred canonical positions.
func ReadR2DT(r io.Reader, id, source string) (*Sequence, error) {
	d := json.NewDecoder(r)
	d.UseNumber()
	var raw interface{}
	if err := d.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	complexes, ok := doc["rnaComplexes"].([]interface{})
	if !ok || len(complexes) == 0 {
		return nil, fmt.Errorf("%w: no rnaComplexes", ErrMalformed)
	}
	cplx, ok := complexes[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: rnaComplexes[0]", ErrMalformed)
	}
	molecules, ok := cplx["rnaMolecules"].([]interface{})
	if !ok || len(molecules) == 0 {
		return nil, fmt.Errorf("%w: no rnaMolecules", ErrMalformed)
	}
	mol, ok := molecules[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: rnaMolecules[0]", ErrMalformed)
	}
	rawSeq, ok := mol["sequence"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: no sequence", ErrMalformed)
	}

	var residues []Residue
	for i, rs := range rawSeq {
		ms, ok := rs.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: sequence[%d]", ErrMalformed, i)
		}
		name, ok := ms["residueName"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: sequence[%d] has no residueName", ErrMalformed, i)
		}
		if name == "5'" || name == "3'" {
			continue
		}
		num, ok := ms["residueIndex"].(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: sequence[%d] has no residueIndex", ErrMalformed, i)
		}
		idx, err := num.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: sequence[%d] residueIndex %s", ErrMalformed, i, num)
		}
		res := Residue{SeqIndex: int(idx), Symbol: name, Template: label.Unresolved}
		if info, ok := ms["info"].(map[string]interface{}); ok {
			if t, ok := info["templateResidueIndex"].(json.Number); ok {
				if ti, err := t.Int64(); err == nil {
					res.Template = int(ti)
				}
			}
			if l, ok := info["templateNumberingLabel"].(string); ok {
				res.Raw = strings.TrimSpace(l)
			}
		}
		residues = append(residues, res)
	}
	if len(residues) == 0 {
		return nil, fmt.Errorf("%w: no residue", ErrMalformed)
	}
	return NewSequence(id, source, residues)
}

// NewSequence parses labels, sorts residues by seq_index, checks the index,
// then auto-fills labels and infers canonical positions.
func NewSequence(id, source string, residues []Residue) (*Sequence, error) {
	sort.SliceStable(residues, func(i, j int) bool { return residues[i].SeqIndex < residues[j].SeqIndex })
	for i := range residues {
		residues[i].Label = label.Parse(residues[i].Raw)
	}
	seq := &Sequence{ID: id, Source: source, Residues: residues}
	if err := seq.CheckIndex(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	AutoFill(seq.Residues)
	InferCanonical(seq.Residues)
	return seq, nil
}
