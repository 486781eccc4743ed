package qc

import (
	"math"
	"testing"

	"github.com/atlasbio/barcodeqc/files"
)

func testWhitelist() *files.Whitelist {
	return files.NewWhitelist([]files.WhitelistEntry{
		{Sequence: "ACGTACGT", Row: 0, Col: 10},
		{Sequence: "TTTTAAAA", Row: 1, Col: 11},
		{Sequence: "GGGGCCCC", Row: 2, Col: 12},
	})
}

func repeatRecords(mers map[string]int) []files.Record {
	var recs []files.Record
	for mer, n := range mers {
		for j := 0; j < n; j++ {
			recs = append(recs, files.Record{EightMer: mer, ReadName: "read"})
		}
	}
	return recs
}

func TestBuildCountTable(t *testing.T) {
	recs := repeatRecords(map[string]int{
		"ACGTACGT": 6,
		"TTTTAAAA": 3,
		"NNNNNNNN": 1,
	})
	ct := BuildCountTable(recs, testWhitelist(), RowChannel)

	if len(ct.Rows) != 3 {
		t.Fatal("problem with distinct 8-mer count", len(ct.Rows))
	}
	// sorted descending by fraction
	if ct.Rows[0].Sequence != "ACGTACGT" || ct.Rows[0].Count != 6 {
		t.Error("problem with sort order", ct.Rows[0])
	}

	var sum float64
	for i := range ct.Rows {
		sum += ct.Rows[i].FracCount
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Error("problem with frac_count sum", sum)
	}

	// cumulative sum is non-decreasing and reaches 1.0 on the last row
	for i := 1; i < len(ct.Rows); i++ {
		if ct.Rows[i].CumulativeSum < ct.Rows[i-1].CumulativeSum {
			t.Error("problem with cumulative sum monotonicity", ct.Rows)
		}
	}
	if math.Abs(ct.Rows[len(ct.Rows)-1].CumulativeSum-1.0) > 1e-12 {
		t.Error("problem with final cumulative sum", ct.Rows[len(ct.Rows)-1].CumulativeSum)
	}

	// 0.6 <= 0.9, 0.9 <= 0.9, 1.0 > 0.9
	if ct.NumToNinety != 2 {
		t.Error("problem with num to ninety", ct.NumToNinety)
	}
	// one more row than NumToNinety pushes past 0.9 or exhausts the table
	if ct.NumToNinety < len(ct.Rows) && ct.Rows[ct.NumToNinety].CumulativeSum <= 0.9 {
		t.Error("problem with num to ninety prefix property")
	}

	if !ct.Rows[0].ExpectMer || ct.Rows[0].Channel != 0 {
		t.Error("problem with channel join", ct.Rows[0])
	}
	if ct.Rows[2].ExpectMer {
		t.Error("problem with expectMer for unlisted barcode", ct.Rows[2])
	}
	if ct.ExpectedCount() != 2 {
		t.Error("problem with expected count", ct.ExpectedCount())
	}
	if math.Abs(ct.ExpectedFrac()-0.9) > 1e-12 {
		t.Error("problem with expected fraction", ct.ExpectedFrac())
	}
}

func TestBuildCountTableColChannel(t *testing.T) {
	recs := repeatRecords(map[string]int{"TTTTAAAA": 2})
	ct := BuildCountTable(recs, testWhitelist(), ColChannel)
	if ct.Rows[0].Channel != 11 {
		t.Error("problem with col channel selection", ct.Rows[0].Channel)
	}
}

func TestTopPctSmallTable(t *testing.T) {
	recs := repeatRecords(map[string]int{"ACGTACGT": 2, "TTTTAAAA": 1})
	ct := BuildCountTable(recs, testWhitelist(), RowChannel)
	if ct.PctFor50 != "NaN" || ct.PctFor96 != "NaN" {
		t.Error("problem with top pct on small table", ct.PctFor50, ct.PctFor96)
	}
}
