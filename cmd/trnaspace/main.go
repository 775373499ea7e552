//
// Copyright (C) 2026 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/tRNAspace/lib/cmapper"
	"git.sr.ht/~vejnar/tRNAspace/lib/coord"
	"git.sr.ht/~vejnar/tRNAspace/lib/record"
	"git.sr.ht/~vejnar/tRNAspace/lib/space"
)

var version = "DEV"

func main() {
	// Arguments: General
	var pathReport string
	var nWorker, verboseLevel int
	var verbose, printVersion bool
	flag.StringVar(&pathReport, "path_report", "", "Write report to path (stdout with -)")
	flag.IntVar(&nWorker, "num_worker", 1, "Number of worker(s)")
	flag.IntVar(&verboseLevel, "verbose_level", 0, "Verbose level")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	// Arguments: Input
	var pathJSON, pathExclusion string
	flag.StringVar(&pathJSON, "path_json", "", "Path to directory of R2DT enriched JSON (.enriched.json, optionally .gz or .zst)")
	flag.StringVar(&pathExclusion, "path_exclusion", "", "Path to list of sequence identifiers to exclude (one per line)")
	// Arguments: Coordinates
	var organelle, splitType, splitOffset bool
	var precision int
	flag.BoolVar(&organelle, "organelle", false, "Build the coordinate space of organelle tRNAs (default nuclear)")
	flag.BoolVar(&splitType, "split_type", false, "Build one coordinate space per structural type (type1, type2)")
	flag.BoolVar(&splitOffset, "split_offset", false, "Build one coordinate space per labeling offset and structural type (e.g. offset+1_type1)")
	flag.IntVar(&precision, "precision", coord.DefaultPrecision, "Decimal places of continuous coordinates")
	// Arguments: Output
	var pathOutput, formatOutput string
	flag.StringVar(&pathOutput, "path_output", "trnas_in_space.tsv", "Path to output table (suffixed with type if split)")
	flag.StringVar(&formatOutput, "format_output", "tsv", "Output format: 'tsv', 'tsv+lz4', 'tsv+lz4hc', 'tsv+bgzf' or 'tsv+gz'")
	// Arguments: Parse
	flag.Parse()

	// Version
	if printVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Verbose
	if verbose && verboseLevel == 0 {
		verboseLevel = 1
	}

	// Max CPU
	runtime.GOMAXPROCS(nWorker * 2)

	// Time start
	var timeStart time.Time
	if verboseLevel > 0 {
		timeStart = time.Now()
	}

	// Check arguments
	if len(pathJSON) == 0 {
		log.Fatal("No JSON input")
	} else if _, err := os.Stat(pathJSON); os.IsNotExist(err) {
		log.Fatalln(pathJSON, "not found")
	}
	if precision < 1 || precision > 12 {
		log.Fatal("Precision must be between 1 and 12")
	}
	if err := checkFormat(formatOutput); err != nil {
		log.Fatal(err)
	}

	// Exclusion list
	var exclusions set.Interface
	if pathExclusion != "" {
		var err error
		exclusions, err = record.OpenExclusions(pathExclusion)
		if err != nil {
			log.Fatal(err)
		}
		if verboseLevel > 0 {
			timeNow := time.Now()
			fmt.Printf("%.1fmin - Loaded %d excluded identifier(s)\n", timeNow.Sub(timeStart).Minutes(), exclusions.Size())
		}
	}

	cfg := space.Config{
		Organelle:   organelle,
		SplitType:   splitType,
		SplitOffset: splitOffset,
		Precision:   precision,
		Exclusions:  exclusions,
		NumWorker:   nWorker,
	}

	// Build coordinate space(s)
	report, err := BuildSpace(pathJSON, pathOutput, formatOutput, cfg, timeStart, verboseLevel)
	var cerr *cmapper.CollisionError
	if errors.As(err, &cerr) {
		report.Collisions = cerr.Collisions
	}
	if pathReport != "" && report != nil {
		if rerr := WriteReport(pathReport, report); rerr != nil {
			log.Fatal(rerr)
		}
	}
	if err != nil {
		log.Fatal(err)
	}

	// Verbose
	if verboseLevel > 0 {
		timeEnd := time.Now()
		fmt.Printf("%.1fmin - Done %d tRNA(s).\n", timeEnd.Sub(timeStart).Minutes(), report.Included())
	}
}
