package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseReadLog(t *testing.T) {
	content := "This is cutadapt 4.4 with Python 3.10\n" +
		"=== Summary ===\n\n" +
		"Total reads processed:      10,000,000\n" +
		"Reads with adapters:         7,523,112 (75.2%)\n"
	path := filepath.Join(t.TempDir(), "cutadapt.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	total, adapter, err := ParseReadLog(path)
	if err != nil {
		t.Fatal("problem with log parse", err)
	}
	if total != 10000000 || adapter != 7523112 {
		t.Error("problem with comma-grouped counts", total, adapter)
	}
}

func TestParseReadLogMissingCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutadapt.log")
	if err := os.WriteFile(path, []byte("nothing useful here\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ParseReadLog(path); err == nil {
		t.Error("problem with missing count detection")
	}
}

func TestOutputDirForSample(t *testing.T) {
	if OutputDirForSample("sampleA") != "sampleA_outputs" {
		t.Error("problem with suffix append", OutputDirForSample("sampleA"))
	}
	// an already-suffixed name is reused unchanged
	if OutputDirForSample("sampleA_outputs") != "sampleA_outputs" {
		t.Error("problem with suffix reuse", OutputDirForSample("sampleA_outputs"))
	}
}
