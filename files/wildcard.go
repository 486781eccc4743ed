package files

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vertgenlab/gonomics/fileio"
)

// Record is one read that matched a linker pattern in a cutadapt wildcard
// file: the extracted 8-mer and the read name used for joining both sides.
type Record struct {
	EightMer string
	ReadName string
}

// cutadapt does not document the column order of --wildcard-file output, so
// the 8-mer column is discovered by pattern matching a sample row. Row 5 is
// deep enough to skip header noise; the choice is confirmed against later
// rows before it is trusted.
const sampleRowIdx = 5
const confirmRowCount = 3

var merPattern = regexp.MustCompile(`^[ACGTN]{8,}$`)

// ReadWildcardFile parses a space-delimited cutadapt wildcard file into
// Records. Exactly one column of the sample row must look like an 8-mer;
// the immediately following column is taken as the read name.
func ReadWildcardFile(path string) ([]Record, error) {
	var rows [][]string
	var line string
	var done bool
	in := fileio.EasyOpen(path)
	defer in.Close()
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		if line == "" {
			continue
		}
		rows = append(rows, strings.Fields(line))
	}

	if len(rows) == 0 {
		return nil, &WildcardFileError{File: path, Reason: "file is empty"}
	}

	merCol, err := findMerColumn(path, rows)
	if err != nil {
		return nil, err
	}

	recs := make([]Record, 0, len(rows))
	for i := range rows {
		if merCol+1 >= len(rows[i]) {
			return nil, &WildcardFileError{
				File:   path,
				Reason: fmt.Sprintf("row %d has no read name column after the 8-mer column %d", i, merCol),
			}
		}
		recs = append(recs, Record{EightMer: rows[i][merCol], ReadName: rows[i][merCol+1]})
	}
	return recs, nil
}

// findMerColumn scans the sample row for fields matching the 8-mer pattern
// and requires exactly one hit. The candidate column is then checked against
// a few more rows so a single odd row cannot mislead the layout detection.
func findMerColumn(path string, rows [][]string) (int, error) {
	idx := sampleRowIdx
	if idx >= len(rows) {
		idx = len(rows) - 1
	}

	var candidates []int
	for col, field := range rows[idx] {
		if merPattern.MatchString(field) {
			candidates = append(candidates, col)
		}
	}
	switch {
	case len(candidates) == 0:
		return 0, &WildcardFileError{
			File:   path,
			Reason: fmt.Sprintf("no 8-mer column matches found in sample row: %v", rows[idx]),
		}
	case len(candidates) > 1:
		return 0, &WildcardFileError{
			File:   path,
			Reason: fmt.Sprintf("ambiguous 8-mer columns %v in sample row: %v", candidates, rows[idx]),
		}
	}

	merCol := candidates[0]
	for i := idx + 1; i < len(rows) && i <= idx+confirmRowCount; i++ {
		if merCol >= len(rows[i]) || !merPattern.MatchString(rows[i][merCol]) {
			return 0, &WildcardFileError{
				File:   path,
				Reason: fmt.Sprintf("column %d matched the sample row but not row %d: %v", merCol, i, rows[i]),
			}
		}
	}
	return merCol, nil
}
