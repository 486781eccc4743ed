package files

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/fileio"
)

// WhitelistEntry maps one expected 8-mer barcode to its spatial coordinates.
type WhitelistEntry struct {
	Sequence string
	Row      int
	Col      int
}

// Whitelist is the set of expected barcodes for one linker side.
// Sequences are assumed unique; on duplicates the first occurrence wins.
type Whitelist struct {
	Entries []WhitelistEntry
	index   map[string]WhitelistEntry
}

// NewWhitelist builds a whitelist from entries. On duplicate sequences the
// first occurrence wins, matching ReadBarcodeFile.
func NewWhitelist(entries []WhitelistEntry) *Whitelist {
	wl := &Whitelist{Entries: entries, index: make(map[string]WhitelistEntry)}
	for _, e := range entries {
		if _, found := wl.index[e.Sequence]; !found {
			wl.index[e.Sequence] = e
		}
	}
	return wl
}

// Lookup returns the entry for seq if the whitelist contains it.
func (w *Whitelist) Lookup(seq string) (WhitelistEntry, bool) {
	e, ok := w.index[seq]
	return e, ok
}

func (w *Whitelist) Len() int {
	return len(w.Entries)
}

var eightMerPattern = regexp.MustCompile(`^[ATCGN]{8}$`)
var sixteenMerPattern = regexp.MustCompile(`^[ATCGN]{16}$`)

// ReadBarcodeFile loads and validates a barcode whitelist. The file is csv
// with a header naming at least sequence, row, and col columns. All
// sequences must be 8-mers over A/T/C/G/N and row/col must be non-negative
// integers (integer-valued floats are accepted).
func ReadBarcodeFile(path string) (*Whitelist, error) {
	header, rows, err := readCsv(path, true)
	if err != nil {
		return nil, err
	}
	if len(header) < 3 {
		return nil, &BarcodeFileError{
			Column: "header",
			Reason: fmt.Sprintf("must have at least 3 columns; found %d", len(header)),
		}
	}

	seqCol, rowCol, colCol := headerIndex(header, "sequence"), headerIndex(header, "row"), headerIndex(header, "col")
	if seqCol < 0 || rowCol < 0 || colCol < 0 {
		return nil, &BarcodeFileError{
			Column: "header",
			Reason: fmt.Sprintf("must name sequence, row, and col columns; found %v", header),
		}
	}

	var badSeqs []string
	for i := range rows {
		if len(rows[i]) < len(header) {
			return nil, &BarcodeFileError{
				Column: "row",
				Reason: fmt.Sprintf("line %d has %d fields, expected %d", i+2, len(rows[i]), len(header)),
			}
		}
		if !eightMerPattern.MatchString(rows[i][seqCol]) {
			badSeqs = append(badSeqs, rows[i][seqCol])
		}
	}
	if len(badSeqs) > 0 {
		return nil, &BarcodeFileError{
			Column:   "sequence",
			Reason:   "contains invalid barcodes (expected 8-mer of A/T/C/G/N)",
			Examples: limit(badSeqs),
		}
	}

	rowVals, err := parseIntColumn("row", rows, rowCol)
	if err != nil {
		return nil, err
	}
	colVals, err := parseIntColumn("col", rows, colCol)
	if err != nil {
		return nil, err
	}

	wl := &Whitelist{index: make(map[string]WhitelistEntry)}
	for i := range rows {
		e := WhitelistEntry{Sequence: rows[i][seqCol], Row: rowVals[i], Col: colVals[i]}
		wl.Entries = append(wl.Entries, e)
		if _, found := wl.index[e.Sequence]; !found {
			wl.index[e.Sequence] = e
		}
	}
	return wl, nil
}

// parseIntColumn validates that every value in the named column is a
// non-negative integer. Values may arrive float-formatted (e.g. "3.0") as
// long as they carry no fractional part.
func parseIntColumn(name string, rows [][]string, col int) ([]int, error) {
	var nonNumeric, fractional, negative []string
	vals := make([]int, len(rows))
	for i := range rows {
		f, err := strconv.ParseFloat(strings.TrimSpace(rows[i][col]), 64)
		switch {
		case err != nil:
			nonNumeric = append(nonNumeric, rows[i][col])
		case f != math.Trunc(f):
			fractional = append(fractional, rows[i][col])
		case f < 0:
			negative = append(negative, rows[i][col])
		default:
			vals[i] = int(f)
		}
	}
	switch {
	case len(nonNumeric) > 0:
		return nil, &BarcodeFileError{Column: name, Reason: "contains non-numeric values", Examples: limit(nonNumeric)}
	case len(fractional) > 0:
		return nil, &BarcodeFileError{Column: name, Reason: "must contain integer values", Examples: limit(fractional)}
	case len(negative) > 0:
		return nil, &BarcodeFileError{Column: name, Reason: "contains negative values", Examples: limit(negative)}
	}
	return vals, nil
}

func headerIndex(header []string, name string) int {
	for i := range header {
		if strings.TrimSpace(header[i]) == name {
			return i
		}
	}
	return -1
}

// readCsv reads a comma or tab delimited table. gzipped input is handled
// transparently by fileio.
func readCsv(path string, hasHeader bool) (header []string, rows [][]string, err error) {
	var line, sep string
	var done bool
	in := fileio.EasyOpen(path)
	defer in.Close()
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		if line == "" {
			continue
		}
		if sep == "" {
			sep = ","
			if strings.Contains(line, "\t") {
				sep = "\t"
			}
		}
		fields := strings.Split(line, sep)
		if hasHeader && header == nil {
			header = fields
			continue
		}
		rows = append(rows, fields)
	}
	return header, rows, nil
}
