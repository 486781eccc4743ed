package qc

import (
	"fmt"
	"strconv"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// Thresholds for lane outlier flags relative to the mean read fraction of
// whitelisted barcodes: more than double flags high, less than half flags
// low. These are fixed domain constants.
const hiCut = 2.0
const loCut = 0.5

// LaneRow is one whitelisted barcode with its outlier flags.
type LaneRow struct {
	CountRow
	HiWarn bool
	LoWarn bool
}

// LaneQC is the whitelisted subset of a CountTable sorted by channel, with
// hi/lo outlier flags computed against the subset mean.
type LaneQC struct {
	Rows        []LaneRow
	Mean        float64
	TotalHiWarn int
	TotalLoWarn int
	TotalMers   int
}

// BuildLaneQC restricts a count table to expected barcodes, sorts by
// channel, and flags lanes whose read fraction is more than double or less
// than half the subset mean.
func BuildLaneQC(t CountTable) LaneQC {
	var l LaneQC
	for i := range t.Rows {
		if t.Rows[i].ExpectMer {
			l.Rows = append(l.Rows, LaneRow{CountRow: t.Rows[i]})
		}
	}
	slices.SortFunc(l.Rows, func(a, b LaneRow) int {
		switch {
		case a.Channel < b.Channel:
			return -1
		case a.Channel > b.Channel:
			return 1
		case a.Sequence < b.Sequence:
			return -1
		case a.Sequence > b.Sequence:
			return 1
		default:
			return 0
		}
	})

	l.TotalMers = len(l.Rows)
	if l.TotalMers == 0 {
		return l
	}

	fracs := make([]float64, len(l.Rows))
	for i := range l.Rows {
		fracs[i] = l.Rows[i].FracCount
	}
	l.Mean = stat.Mean(fracs, nil)

	for i := range l.Rows {
		if l.Rows[i].FracCount > hiCut*l.Mean {
			l.Rows[i].HiWarn = true
			l.TotalHiWarn++
		}
		if l.Rows[i].FracCount < loCut*l.Mean {
			l.Rows[i].LoWarn = true
			l.TotalLoWarn++
		}
	}
	return l
}

// Flagged returns the rows carrying either warning flag.
func (l LaneQC) Flagged() []LaneRow {
	var ans []LaneRow
	for i := range l.Rows {
		if l.Rows[i].HiWarn || l.Rows[i].LoWarn {
			ans = append(ans, l.Rows[i])
		}
	}
	return ans
}

// WriteFlaggedCsv writes the hi/lo flagged subset. Callers should only
// write the file when Flagged() is non-empty.
func (l LaneQC) WriteFlaggedCsv(path string) {
	out := fileio.EasyCreate(path)
	fmt.Fprintln(out, "sequence,count,frac_count,channel,row,col,hiWarn,loWarn")
	for _, r := range l.Flagged() {
		fmt.Fprintf(out, "%s,%d,%s,%d,%d,%d,%t,%t\n",
			r.Sequence, r.Count, formatFloat(r.FracCount), r.Channel, r.Row, r.Col, r.HiWarn, r.LoWarn)
	}
	err := out.Close()
	exception.PanicOnErr(err)
}

// FormatHiLoMetrics renders the hi/lo summary block for the log. Percentages
// are "N/A" when the lane table is empty.
func FormatHiLoMetrics(label string, l LaneQC) string {
	out := fmt.Sprintf("\n######### Info for %s\nTotal hiWarn: %d\tTotal loWarn: %d",
		label, l.TotalHiWarn, l.TotalLoWarn)
	if l.TotalMers > 0 {
		out += fmt.Sprintf("\nPct hiWarn: %.3f\tPct loWarn: %.3f",
			float64(l.TotalHiWarn)/float64(l.TotalMers), float64(l.TotalLoWarn)/float64(l.TotalMers))
	} else {
		out += "\nPct hiWarn: N/A\tPct loWarn: N/A"
	}
	return out
}

// FormatWildcardMetrics renders the per-linker summary block for the log.
func FormatWildcardMetrics(name string, totalReads, adapterReads, uniqueCount, numToNinety, expectedCount, whitelistCount int, expectedFrac float64, pctFor50, pctFor96 string) string {
	return "\n######### Info for " + name + "\n" +
		"Total Reads: " + strconv.Itoa(totalReads) + "  Reads with Adapter: " + strconv.Itoa(adapterReads) + "\n" +
		fmt.Sprintf("The number of unique strings in the 8mer column is %d.\n", uniqueCount) +
		fmt.Sprintf("Ninety percent (90%%) of the reads come from total of %d 8mers.\n", numToNinety) +
		fmt.Sprintf("Total of %d out of %d expected 8-mers accounted for %.1f%% of the reads\n",
			expectedCount, whitelistCount, expectedFrac*100) +
		fmt.Sprintf("Top 50 8mers represent %s fraction of reads\n", pctFor50) +
		fmt.Sprintf("Top 96 8mers represent %s fraction of reads", pctFor96)
}
