package qc

import (
	"testing"

	"github.com/atlasbio/barcodeqc/files"
)

func TestBuildSpatialTable(t *testing.T) {
	// r1 and r2 share a combined barcode; r3's combination is unmapped
	l1 := []files.Record{
		{EightMer: "ACGTACGT", ReadName: "r1"},
		{EightMer: "ACGTACGT", ReadName: "r2"},
		{EightMer: "TTTTTTTT", ReadName: "r3"},
		{EightMer: "GGGGCCCC", ReadName: "r4"},
	}
	l2 := []files.Record{
		{EightMer: "AAAACCCC", ReadName: "r1"},
		{EightMer: "AAAACCCC", ReadName: "r2"},
		{EightMer: "AAAACCCC", ReadName: "r3"},
		{EightMer: "GGGGTTTT", ReadName: "r4"},
	}
	pos := files.NewPositions([]files.Position{
		{Barcode: "AAAACCCCACGTACGT", OnOff: 1, Row: 0, Col: 0},
		{Barcode: "GGGGTTTTGGGGCCCC", OnOff: 0, Row: 1, Col: 2},
	})

	spatial := BuildSpatialTable(l1, l2, pos)
	if len(spatial.Rows) != 2 {
		t.Fatal("problem with spatial row count", spatial.Rows)
	}
	// side-B 8-mer comes first in the combined barcode
	if spatial.Rows[0].Sequence != "AAAACCCCACGTACGT" || spatial.Rows[0].Count != 2 {
		t.Error("problem with combined barcode counting", spatial.Rows[0])
	}
	if spatial.Rows[0].OnOff != 1 || spatial.Rows[0].Row != 0 || spatial.Rows[0].Col != 0 {
		t.Error("problem with position join", spatial.Rows[0])
	}
	if spatial.Rows[1].Sequence != "GGGGTTTTGGGGCCCC" || spatial.Rows[1].Count != 1 || spatial.Rows[1].OnOff != 0 {
		t.Error("problem with second pixel", spatial.Rows[1])
	}
	for i := range spatial.Rows {
		if spatial.Rows[i].Sequence == "AAAACCCCTTTTTTTT" {
			t.Error("problem with unmapped barcode exclusion")
		}
	}
}

func TestBuildSpatialTableDropsSingleSidedReads(t *testing.T) {
	l1 := []files.Record{{EightMer: "ACGTACGT", ReadName: "r1"}}
	l2 := []files.Record{{EightMer: "AAAACCCC", ReadName: "r9"}}
	pos := files.NewPositions([]files.Position{
		{Barcode: "AAAACCCCACGTACGT", OnOff: 1, Row: 0, Col: 0},
	})
	spatial := BuildSpatialTable(l1, l2, pos)
	if len(spatial.Rows) != 0 {
		t.Error("problem with single-sided read exclusion", spatial.Rows)
	}
}
