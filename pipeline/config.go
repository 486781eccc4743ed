// Package pipeline orchestrates one QC run: subsampling, linker extraction,
// table building, plotting, and report generation for a single sample.
package pipeline

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atlasbio/barcodeqc/bcset"
)

// outputDirSuffix is appended to the sample name to form the run directory.
const outputDirSuffix = "_outputs"

// OutputDirForSample returns the run directory for a sample, reusing the
// suffix when the sample name already carries it.
func OutputDirForSample(sampleName string) string {
	if strings.HasSuffix(sampleName, outputDirSuffix) {
		return sampleName
	}
	return sampleName + outputDirSuffix
}

// Config holds everything one pipeline invocation needs. Build it with
// NewConfig and check it with Validate before running.
type Config struct {
	SampleName         string
	FastqPath          string
	Set                bcset.Set
	SampleReads        int
	RandomSeed         int
	TissuePositionFile string
	OutputDir          string
	Cores              int
	CountRawReads      bool
	Verbose            bool
}

// NewConfig resolves the run directory and the tissue position file. An
// empty tissuePositionFile selects the barcode set's bundled default.
func NewConfig(sampleName, fastqPath string, set bcset.Set, sampleReads, randomSeed int, tissuePositionFile string) Config {
	if tissuePositionFile == "" {
		tissuePositionFile = set.Positions
	}
	return Config{
		SampleName:         sampleName,
		FastqPath:          fastqPath,
		Set:                set,
		SampleReads:        sampleReads,
		RandomSeed:         randomSeed,
		TissuePositionFile: tissuePositionFile,
		OutputDir:          OutputDirForSample(sampleName),
		Cores:              1,
	}
}

// Validate checks required inputs eagerly, before any external tool runs:
// the FASTQ and tissue position files must exist and seqtk and cutadapt
// must be on PATH.
func (c Config) Validate() error {
	if _, err := os.Stat(c.FastqPath); err != nil {
		return fmt.Errorf("fastq file path does not exist: %s", c.FastqPath)
	}
	if _, err := os.Stat(c.TissuePositionFile); err != nil {
		return fmt.Errorf("could not find tissue position file: %s", c.TissuePositionFile)
	}
	for _, tool := range []string{"seqtk", "cutadapt"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("required executable %q not found on PATH", tool)
		}
	}
	return nil
}
