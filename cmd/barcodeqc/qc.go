package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/atlasbio/barcodeqc/bcset"
	"github.com/atlasbio/barcodeqc/pipeline"
	"github.com/vertgenlab/gonomics/exception"
)

func qcUsage(qcFlags *flag.FlagSet) {
	fmt.Print(
		"qc - Subsample a Read2 FASTQ, extract linker-flanked barcodes, and build QC tables and report\n\n" +
			"Usage:\n" +
			"  barcodeqc qc [options] -n sample -f r2.fq.gz -b bc96\n\n" +
			"Options:\n")
	qcFlags.PrintDefaults()
}

func runQc(args []string) {
	var err error
	qcFlags := flag.NewFlagSet("qc", flag.ExitOnError)

	sampleName := qcFlags.String("n", "", "Sample name for the experiment. Output goes to <name>_outputs/.")
	fastqPath := qcFlags.String("f", "", "Path to Read2 FASTQ file. May be gzipped.")
	bcSetKey := qcFlags.String("b", "", "Barcode set key selecting whitelists and default tissue positions.")
	sampleReads := qcFlags.Int("r", 10000000, "Subsample the input to this many reads.")
	randomSeed := qcFlags.Int("s", 42, "Seed for randomization during subsampling.")
	tissuePositions := qcFlags.String("t", "", "Tissue position file overriding the barcode set default.")
	dataDir := qcFlags.String("data", "data", "Directory holding bundled barcode and position files.")
	cores := qcFlags.Int("cores", 1, "Threads for cutadapt.")
	countRawReads := qcFlags.Bool("countRawReads", false, "Count total reads in the input FASTQ for report metadata. Scans the whole file.")
	verbose := qcFlags.Bool("v", false, "Print terminal graphs of barcode fraction distributions.")

	err = qcFlags.Parse(args)
	exception.PanicOnErr(err)
	qcFlags.Usage = func() { qcUsage(qcFlags) }

	if *sampleName == "" || *fastqPath == "" || *bcSetKey == "" {
		qcFlags.Usage()
		errExit("\nERROR: must have inputs for -n, -f, and -b")
	}

	registry := bcset.New(*dataDir)
	set, found := registry.Get(*bcSetKey)
	if !found {
		errExit(fmt.Sprintf("ERROR: unknown barcode set %q, valid sets are: %s",
			*bcSetKey, strings.Join(registry.Keys(), "|")))
	}

	cfg := pipeline.NewConfig(*sampleName, *fastqPath, set, *sampleReads, *randomSeed, *tissuePositions)
	cfg.Cores = *cores
	cfg.CountRawReads = *countRawReads
	cfg.Verbose = *verbose

	summary, err := pipeline.Run(cfg)
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %s", err))
	}
	for i := range summary {
		log.Printf("%s: %s (%s)", summary[i].Check, summary[i].Status, summary[i].Detail)
	}
	log.Printf("overall: %s", summary.Worst())
}
