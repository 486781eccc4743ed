// Package qc implements the barcode counting, lane outlier, spatial
// reconstruction, and status classification logic of the pipeline.
package qc

import (
	"fmt"
	"strconv"

	"github.com/atlasbio/barcodeqc/files"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// Channel selects which whitelist coordinate a linker side encodes.
type Channel int

const (
	RowChannel Channel = iota
	ColChannel
)

func (c Channel) String() string {
	if c == RowChannel {
		return "row"
	}
	return "col"
}

// CountRow is one distinct observed 8-mer for one linker side. Channel, Row,
// and Col are only meaningful when ExpectMer is true.
type CountRow struct {
	Sequence      string
	Count         int
	FracCount     float64
	CumulativeSum float64
	Channel       int
	Row           int
	Col           int
	ExpectMer     bool
}

// CountTable aggregates the observed 8-mers of one linker side, sorted by
// descending read fraction.
type CountTable struct {
	Rows []CountRow
	// NumToNinety is the number of most-frequent barcodes whose cumulative
	// read fraction stays at or below 0.9.
	NumToNinety int
	// PctFor50 and PctFor96 report the cumulative fraction covered by the
	// top 50 and top 96 barcodes, or "NaN" for smaller tables.
	PctFor50 string
	PctFor96 string
}

// BuildCountTable counts distinct 8-mers, computes read fractions and the
// cumulative distribution, and joins the whitelist coordinate selected by
// channel. Barcodes absent from the whitelist get ExpectMer == false.
func BuildCountTable(recs []files.Record, wl *files.Whitelist, channel Channel) CountTable {
	counts := make(map[string]int)
	var total int
	for i := range recs {
		counts[recs[i].EightMer]++
		total++
	}

	var t CountTable
	t.Rows = make([]CountRow, 0, len(counts))
	for seq, n := range counts {
		r := CountRow{Sequence: seq, Count: n, FracCount: float64(n) / float64(total)}
		if e, found := wl.Lookup(seq); found {
			r.ExpectMer = true
			r.Row = e.Row
			r.Col = e.Col
			if channel == RowChannel {
				r.Channel = e.Row
			} else {
				r.Channel = e.Col
			}
		}
		t.Rows = append(t.Rows, r)
	}

	// descending by fraction, sequence breaks ties for deterministic output
	slices.SortFunc(t.Rows, func(a, b CountRow) int {
		switch {
		case a.FracCount > b.FracCount:
			return -1
		case a.FracCount < b.FracCount:
			return 1
		case a.Sequence < b.Sequence:
			return -1
		case a.Sequence > b.Sequence:
			return 1
		default:
			return 0
		}
	})

	fracs := make([]float64, len(t.Rows))
	for i := range t.Rows {
		fracs[i] = t.Rows[i].FracCount
	}
	cum := make([]float64, len(fracs))
	floats.CumSum(cum, fracs)
	for i := range t.Rows {
		t.Rows[i].CumulativeSum = cum[i]
		if cum[i] <= 0.9 {
			t.NumToNinety++
		}
	}

	t.PctFor50 = t.topPct(50)
	t.PctFor96 = t.topPct(96)
	return t
}

// topPct formats the cumulative read fraction of the n most frequent
// barcodes. Tables smaller than n report "NaN" rather than a misleading
// partial coverage figure.
func (t CountTable) topPct(n int) string {
	if len(t.Rows) < n {
		return "NaN"
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += t.Rows[i].FracCount
	}
	return fmt.Sprintf("%.1f%%", sum*100)
}

// ExpectedFrac returns the total read fraction carried by whitelisted
// barcodes.
func (t CountTable) ExpectedFrac() float64 {
	var sum float64
	for i := range t.Rows {
		if t.Rows[i].ExpectMer {
			sum += t.Rows[i].FracCount
		}
	}
	return sum
}

// ExpectedCount returns the number of distinct whitelisted barcodes
// observed.
func (t CountTable) ExpectedCount() int {
	var n int
	for i := range t.Rows {
		if t.Rows[i].ExpectMer {
			n++
		}
	}
	return n
}

// WriteCsv writes the count table with one row per observed 8-mer. Channel
// and coordinates are NaN for barcodes outside the whitelist, matching the
// missing-value convention of downstream tooling.
func (t CountTable) WriteCsv(path string) {
	out := fileio.EasyCreate(path)
	fmt.Fprintln(out, "sequence,count,frac_count,cumulative_sum,channel,expectMer,row,col")
	for i := range t.Rows {
		r := t.Rows[i]
		channel, row, col := "NaN", "NaN", "NaN"
		if r.ExpectMer {
			channel = strconv.Itoa(r.Channel)
			row = strconv.Itoa(r.Row)
			col = strconv.Itoa(r.Col)
		}
		fmt.Fprintf(out, "%s,%d,%s,%s,%s,%t,%s,%s\n",
			r.Sequence, r.Count, formatFloat(r.FracCount), formatFloat(r.CumulativeSum),
			channel, r.ExpectMer, row, col)
	}
	err := out.Close()
	exception.PanicOnErr(err)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
