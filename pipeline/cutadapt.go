package pipeline

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/fastq"
)

// Fixed linker patterns: 8 wildcard positions followed by the 30-base
// conserved ligation linker. Side A sits next to linker 1 and side B next
// to linker 2.
const (
	Linker1 = "NNNNNNNNGTGGCCGATGTTTCGCATCGGCGTACGACT"
	Linker2 = "NNNNNNNNATCCACGTGCTTGAGAGGCCAGAGCATTCG"
)

// LinkerFiles names the wildcard and log output of one cutadapt run.
type LinkerFiles struct {
	Wildcard string
	Log      string
}

// RunCutadapt extracts both linkers' flanking 8-mers from the downsampled
// FASTQ, one cutadapt invocation per linker. Matching allows up to edit
// distance 5 with no indels. The wildcard file holds one row per matching
// read; cutadapt's stdout report becomes the log we later parse for read
// counts.
func RunCutadapt(dsPath, outputDir string, cores int) (l1, l2 LinkerFiles, err error) {
	l1 = LinkerFiles{
		Wildcard: filepath.Join(outputDir, "cutadapt_wc_L1.txt"),
		Log:      filepath.Join(outputDir, "cutadapt_L1.log"),
	}
	l2 = LinkerFiles{
		Wildcard: filepath.Join(outputDir, "cutadapt_wc_L2.txt"),
		Log:      filepath.Join(outputDir, "cutadapt_L2.log"),
	}
	if err = runOneCutadapt(dsPath, "linker1="+Linker1, l1, cores); err != nil {
		return l1, l2, err
	}
	err = runOneCutadapt(dsPath, "linker2="+Linker2, l2, cores)
	return l1, l2, err
}

func runOneCutadapt(dsPath, adapter string, out LinkerFiles, cores int) error {
	logFile, err := os.Create(out.Log)
	if err != nil {
		return fmt.Errorf("cutadapt: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command("cutadapt",
		"-g", adapter,
		"-o", os.DevNull,
		"--action=lowercase",
		"--cores", strconv.Itoa(cores),
		"--no-indels",
		"-e", "5",
		"--wildcard-file", out.Wildcard,
		dsPath,
	)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	log.Printf("starting cutadapt for %s", strings.SplitN(adapter, "=", 2)[0])
	if err = cmd.Run(); err != nil {
		return fmt.Errorf("cutadapt failed for %s: %w", adapter, err)
	}
	log.Printf("completed cutadapt for %s", strings.SplitN(adapter, "=", 2)[0])
	return nil
}

var totalReadsPattern = regexp.MustCompile(`Total reads processed:\s*([\d,]+)`)
var adapterReadsPattern = regexp.MustCompile(`Reads with adapters:\s*([\d,]+)`)

// ParseReadLog pulls the total and with-adapter read counts from a cutadapt
// log. The counts appear comma-grouped after fixed labels.
func ParseReadLog(path string) (totalReads, adapterReads int, err error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("reading cutadapt log: %w", err)
	}
	tot := totalReadsPattern.FindSubmatch(text)
	adapt := adapterReadsPattern.FindSubmatch(text)
	if tot == nil || adapt == nil {
		return 0, 0, fmt.Errorf("expected read counts not found in %s", path)
	}
	totalReads, err = strconv.Atoi(strings.ReplaceAll(string(tot[1]), ",", ""))
	if err != nil {
		return 0, 0, err
	}
	adapterReads, err = strconv.Atoi(strings.ReplaceAll(string(adapt[1]), ",", ""))
	return totalReads, adapterReads, err
}

// CountReads counts the records in a FASTQ file, plain or gzipped. Scans
// the whole file, so this is opt-in for large inputs.
func CountReads(path string) int {
	var n int
	for range fastq.GoReadToChan(path) {
		n++
	}
	return n
}
