package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atlasbio/barcodeqc/report"
	"github.com/vertgenlab/gonomics/exception"
)

func reportUsage(reportFlags *flag.FlagSet) {
	fmt.Print(
		"report - Regenerate the html report from the tables and figures of an existing run\n\n" +
			"Usage:\n" +
			"  barcodeqc report -n sample -d sample_outputs\n\n" +
			"Options:\n")
	reportFlags.PrintDefaults()
}

func runReport(args []string) {
	var err error
	reportFlags := flag.NewFlagSet("report", flag.ExitOnError)

	sampleName := reportFlags.String("n", "", "Sample name for the report title and output file.")
	sampleDir := reportFlags.String("d", "", "Directory containing existing run files (png/csv).")

	err = reportFlags.Parse(args)
	exception.PanicOnErr(err)
	reportFlags.Usage = func() { reportUsage(reportFlags) }

	if *sampleName == "" || *sampleDir == "" {
		reportFlags.Usage()
		errExit("\nERROR: must have inputs for -n and -d")
	}
	if _, err = os.Stat(*sampleDir); err != nil {
		errExit(fmt.Sprintf("ERROR: sample directory not found: %s", *sampleDir))
	}

	figures, err := filepath.Glob(filepath.Join(*sampleDir, "*.png"))
	exception.PanicOnErr(err)

	var summary, onoff *report.Table
	if t, readErr := readTableIfPresent(filepath.Join(*sampleDir, "qc_table.csv")); readErr == nil && t != nil {
		summary = t
	}
	if t, readErr := readTableIfPresent(filepath.Join(*sampleDir, "onoff_tissue_table.csv")); readErr == nil && t != nil {
		onoff = t
	}

	outPath, err := report.Generate(*sampleDir, *sampleName, figures, summary, onoff, "")
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %s", err))
	}
	log.Printf("report generated: %s", outPath)
}

func readTableIfPresent(path string) (*report.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	t, err := report.ReadCsvTable(path)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
