//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package record

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4"
)

// Columns of the output table. Names and order are relied upon downstream.
var Columns = []string{"sequence_id", "source_document", "seq_index", "canonical_index", "raw_label", "residue", "ordinal", "continuous", "global_index", "region"}

type GenericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

// TableExtension returns the file extension matching a table format.
func TableExtension(format string) string {
	_, zip, _ := strings.Cut(format, "+")
	switch zip {
	case "lz4", "lz4hc":
		return ".tsv.lz4"
	case "bgzf", "gz":
		return ".tsv.gz"
	}
	return ".tsv"
}

// WriteTable writes rows to tablePath. format is "tsv" optionally followed
// by a compression: "tsv+lz4", "tsv+lz4hc", "tsv+bgzf" or "tsv+gz".
func WriteTable(rows []Row, tablePath string, format string, precision int) error {
	f, err := os.Create(tablePath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeTable(f, rows, format, precision); err != nil {
		return err
	}
	return f.Close()
}

// EncodeTable writes rows to w in the given format.
func EncodeTable(w io.Writer, rows []Row, format string, precision int) error {
	tableFormat, tableZip, _ := strings.Cut(format, "+")
	if tableFormat != "tsv" {
		return fmt.Errorf("Unknown table format %s", tableFormat)
	}
	var writer GenericWriter
	switch tableZip {
	case "lz4":
		writer = lz4.NewWriter(w)
	case "lz4hc":
		lzWriter := lz4.NewWriter(w)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		writer = lzWriter
	case "bgzf":
		writer = bgzf.NewWriter(w, 1)
	case "gz":
		writer = gzip.NewWriter(w)
	case "":
		writer = nopCloser{w}
	default:
		return fmt.Errorf("Unknown table compression %s", tableZip)
	}

	bw := bufio.NewWriter(writer)
	bw.WriteString(strings.Join(Columns, "\t"))
	bw.WriteString("\n")
	for _, r := range rows {
		bw.WriteString(r.SequenceID)
		bw.WriteByte('\t')
		bw.WriteString(r.Source)
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(r.SeqIndex))
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(r.Canonical))
		bw.WriteByte('\t')
		bw.WriteString(r.Raw)
		bw.WriteByte('\t')
		bw.WriteString(r.Symbol)
		bw.WriteByte('\t')
		if r.Ordinal > 0 {
			bw.WriteString(strconv.Itoa(r.Ordinal))
		}
		bw.WriteByte('\t')
		bw.WriteString(strconv.FormatFloat(r.Continuous, 'f', precision, 64))
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(r.GlobalIndex))
		bw.WriteByte('\t')
		bw.WriteString(r.Region)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return writer.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
