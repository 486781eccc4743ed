package files

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is one physical pixel from a tissue position export: the combined
// 16-mer barcode, its on/off tissue call, and array coordinates.
type Position struct {
	Barcode string
	OnOff   int
	Row     int
	Col     int
}

// Positions maps combined barcodes to pixels. Barcodes are unique.
type Positions struct {
	Entries []Position
	index   map[string]Position
}

// NewPositions builds a position table from entries. On duplicate barcodes
// the first occurrence wins, matching ReadPositionsFile.
func NewPositions(entries []Position) *Positions {
	pos := &Positions{Entries: entries, index: make(map[string]Position)}
	for _, e := range entries {
		if _, found := pos.index[e.Barcode]; !found {
			pos.index[e.Barcode] = e
		}
	}
	return pos
}

// Lookup returns the pixel for a combined 16-mer barcode, if mapped.
func (p *Positions) Lookup(barcode string) (Position, bool) {
	e, ok := p.index[barcode]
	return e, ok
}

func (p *Positions) Len() int {
	return len(p.Entries)
}

// ReadPositionsFile loads and validates a tissue position file: headerless
// csv whose first four columns are barcode, on_off, row, col. A trailing
// "-1" sample-index suffix on barcodes is stripped before the 16-mer check.
func ReadPositionsFile(path string) (*Positions, error) {
	_, rows, err := readCsv(path, false)
	if err != nil {
		return nil, err
	}

	var badBarcodes, badOnOff []string
	barcodes := make([]string, len(rows))
	onOff := make([]int, len(rows))
	for i := range rows {
		if len(rows[i]) < 4 {
			return nil, &BarcodeFileError{
				Column: "row",
				Reason: fmt.Sprintf("positions file must have at least 4 columns; line %d has %d", i+1, len(rows[i])),
			}
		}
		barcodes[i] = strings.TrimSuffix(rows[i][0], "-1")
		if !sixteenMerPattern.MatchString(barcodes[i]) {
			badBarcodes = append(badBarcodes, rows[i][0])
		}
		v, convErr := strconv.Atoi(strings.TrimSpace(rows[i][1]))
		if convErr != nil || (v != 0 && v != 1) {
			badOnOff = append(badOnOff, rows[i][1])
		} else {
			onOff[i] = v
		}
	}
	if len(badBarcodes) > 0 {
		return nil, &BarcodeFileError{
			Column:   "barcode",
			Reason:   "contains invalid barcodes (expected 16-mer of A/T/C/G/N)",
			Examples: limit(badBarcodes),
		}
	}
	if len(badOnOff) > 0 {
		return nil, &BarcodeFileError{
			Column:   "on_off",
			Reason:   "must contain only 0 or 1",
			Examples: limit(badOnOff),
		}
	}

	rowVals, err := parseIntColumn("row", rows, 2)
	if err != nil {
		return nil, err
	}
	colVals, err := parseIntColumn("col", rows, 3)
	if err != nil {
		return nil, err
	}

	pos := &Positions{index: make(map[string]Position)}
	for i := range rows {
		e := Position{Barcode: barcodes[i], OnOff: onOff[i], Row: rowVals[i], Col: colVals[i]}
		pos.Entries = append(pos.Entries, e)
		if _, found := pos.index[e.Barcode]; !found {
			pos.index[e.Barcode] = e
		}
	}
	return pos, nil
}
