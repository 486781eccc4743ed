package pipeline

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Subsample runs seqtk sample piped into gzip, writing the downsampled
// FASTQ into the run directory. A non-zero exit from either tool is fatal
// to the pipeline; no retry is attempted.
func Subsample(fastqPath string, sampleReads, randomSeed int, outputDir string) (string, error) {
	dsPath := filepath.Join(outputDir, fmt.Sprintf("ds_%d.fastq.gz", sampleReads))

	seqtk := exec.Command("seqtk", "sample", "-s", strconv.Itoa(randomSeed), fastqPath, strconv.Itoa(sampleReads))
	gzip := exec.Command("gzip")

	pipe, err := seqtk.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("subsample: %w", err)
	}
	gzip.Stdin = pipe

	out, err := os.Create(dsPath)
	if err != nil {
		return "", fmt.Errorf("subsample: %w", err)
	}
	gzip.Stdout = out
	seqtk.Stderr = os.Stderr
	gzip.Stderr = os.Stderr

	log.Printf("running subsample to %d reads", sampleReads)
	if err = seqtk.Start(); err != nil {
		out.Close()
		return "", fmt.Errorf("subsample: starting seqtk: %w", err)
	}
	if err = gzip.Start(); err != nil {
		out.Close()
		return "", fmt.Errorf("subsample: starting gzip: %w", err)
	}
	if err = seqtk.Wait(); err != nil {
		out.Close()
		return "", fmt.Errorf("subsample: seqtk failed: %w", err)
	}
	if err = gzip.Wait(); err != nil {
		out.Close()
		return "", fmt.Errorf("subsample: gzip failed: %w", err)
	}
	if err = out.Close(); err != nil {
		return "", fmt.Errorf("subsample: %w", err)
	}
	log.Println("completed subsampling")
	return dsPath, nil
}
