package qc

import (
	"strings"
	"testing"

	"github.com/atlasbio/barcodeqc/files"
)

// laneTable builds a count table where each whitelisted barcode i sits on
// channel i with the given read count.
func laneTable(counts []int) CountTable {
	mers := []string{"AAAAAAAA", "CCCCCCCC", "GGGGGGGG", "TTTTTTTT", "AACCGGTT", "TTGGCCAA", "ACACACAC", "GTGTGTGT"}
	var entries []files.WhitelistEntry
	recs := make(map[string]int)
	for i, n := range counts {
		entries = append(entries, files.WhitelistEntry{Sequence: mers[i], Row: i, Col: i})
		recs[mers[i]] = n
	}
	return BuildCountTable(repeatRecords(recs), files.NewWhitelist(entries), RowChannel)
}

func TestBuildLaneQC(t *testing.T) {
	// mean frac = 1/4; lane 0 at 10/16 > 2x mean, lane 3 at 1/16 < 0.5x mean
	lane := BuildLaneQC(laneTable([]int{10, 3, 2, 1}))

	if lane.TotalMers != 4 {
		t.Fatal("problem with lane count", lane.TotalMers)
	}
	for i := range lane.Rows {
		hi := lane.Rows[i].FracCount > 2*lane.Mean
		lo := lane.Rows[i].FracCount < 0.5*lane.Mean
		if lane.Rows[i].HiWarn != hi || lane.Rows[i].LoWarn != lo {
			t.Error("problem with warn thresholds", lane.Rows[i])
		}
		if lane.Rows[i].HiWarn && lane.Rows[i].LoWarn {
			t.Error("problem with mutually exclusive flags", lane.Rows[i])
		}
	}
	if lane.TotalHiWarn != 1 || lane.TotalLoWarn != 1 {
		t.Error("problem with warn totals", lane.TotalHiWarn, lane.TotalLoWarn)
	}

	// rows are sorted by channel
	for i := 1; i < len(lane.Rows); i++ {
		if lane.Rows[i].Channel < lane.Rows[i-1].Channel {
			t.Error("problem with channel sort", lane.Rows)
		}
	}
	if len(lane.Flagged()) != 2 {
		t.Error("problem with flagged subset", lane.Flagged())
	}
}

func TestBuildLaneQCUniform(t *testing.T) {
	lane := BuildLaneQC(laneTable([]int{5, 5, 5, 5}))
	if lane.TotalHiWarn != 0 || lane.TotalLoWarn != 0 {
		t.Error("problem with uniform lanes", lane.TotalHiWarn, lane.TotalLoWarn)
	}
}

func TestFormatHiLoMetricsEmpty(t *testing.T) {
	var lane LaneQC
	out := FormatHiLoMetrics("L1", lane)
	if !strings.Contains(out, "N/A") {
		t.Error("problem with empty lane percentage", out)
	}
}

func TestFormatHiLoMetrics(t *testing.T) {
	lane := BuildLaneQC(laneTable([]int{10, 3, 2, 1}))
	out := FormatHiLoMetrics("L1", lane)
	if !strings.Contains(out, "Total hiWarn: 1") || !strings.Contains(out, "Pct hiWarn: 0.250") {
		t.Error("problem with hi/lo metric formatting", out)
	}
}
