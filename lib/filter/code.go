//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package filter

import "strings"

// Standard genetic code: DNA codon to amino acid (single letter).
var standardCode = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',

	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// Vertebrate mitochondrial code differences.
var mitoCode = map[string]byte{
	"TGA": 'W', "ATA": 'M', "AGA": '*', "AGG": '*',
}

// Three-letter amino acid names as found in tRNA identifiers.
var aminoAcids = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"IMET": 'M', "FMET": 'M', "SEC": 'U', "PYL": 'O',
}

var complementMap = map[byte]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G', 'N': 'N',
}

// ToDNA upper-cases a nucleotide string and replaces U by T.
func ToDNA(s string) string {
	return strings.ReplaceAll(strings.ToUpper(s), "U", "T")
}

// ReverseComplement returns the reverse complement of a DNA sequence.
func ReverseComplement(seq string) string {
	n := len(seq)
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		if comp, ok := complementMap[seq[n-1-i]]; ok {
			result[i] = comp
		} else {
			result[i] = 'N'
		}
	}
	return string(result)
}

// TranslateCodon translates a DNA codon. Returns 'X' for unknown codons
// and '*' for stop codons.
func TranslateCodon(codon string, organelle bool) byte {
	codon = ToDNA(codon)
	if organelle {
		if aa, ok := mitoCode[codon]; ok {
			return aa
		}
	}
	if aa, ok := standardCode[codon]; ok {
		return aa
	}
	return 'X'
}

// DecodeAnticodon returns the amino acid read by an anticodon (5'->3').
func DecodeAnticodon(anticodon string, organelle bool) byte {
	return TranslateCodon(ReverseComplement(ToDNA(anticodon)), organelle)
}
