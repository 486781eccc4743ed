package qc

import (
	"fmt"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
)

// Status is a categorical QC verdict. Severity increases with the value, so
// the worst verdict across checks is the maximum.
type Status int

const (
	Pass Status = iota
	Caution
	ActionRequired
	ContactSupport
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "PASS"
	case Caution:
		return "CAUTION"
	case ActionRequired:
		return "ACTION REQUIRED"
	default:
		return "CONTACT SUPPORT"
	}
}

// Worst returns the most severe of the given statuses.
func Worst(ss ...Status) Status {
	var ans Status
	for _, s := range ss {
		if s > ans {
			ans = s
		}
	}
	return ans
}

// linkerPassThreshold is the minimum fraction of reads retaining the linker
// for a PASS verdict.
const linkerPassThreshold = 0.7

// LinkerStatus classifies linker conservation from the extraction log
// counts. A read total of zero is CAUTION with a zero rate.
func LinkerStatus(totalReads, adapterReads int) (Status, float64) {
	if totalReads <= 0 {
		return Caution, 0.0
	}
	rate := float64(adapterReads) / float64(totalReads)
	if rate >= linkerPassThreshold {
		return Pass, rate
	}
	return Caution, rate
}

// barcodeCheckTopN bounds the contamination check to the most frequent
// barcodes; rare stragglers below the top 100 are expected sequencing noise.
const barcodeCheckTopN = 100

// BarcodeStatus checks the most frequent barcodes for whitelist
// contamination and reports how many of them are unexpected.
func BarcodeStatus(t CountTable) (Status, int) {
	n := barcodeCheckTopN
	if len(t.Rows) < n {
		n = len(t.Rows)
	}
	var unexpected int
	for i := 0; i < n; i++ {
		if !t.Rows[i].ExpectMer {
			unexpected++
		}
	}
	if unexpected == 0 {
		return Pass, 0
	}
	return Caution, unexpected
}

// FlagKind selects which lane warning a status check inspects.
type FlagKind int

const (
	HiFlag FlagKind = iota
	LoFlag
)

func (k FlagKind) String() string {
	if k == HiFlag {
		return "hiWarn"
	}
	return "loWarn"
}

// LaneStatus classifies flagged lanes by adjacency. Isolated anomalies are
// correctable by smoothing (ACTION REQUIRED). Adjacent high lanes indicate
// an uncorrectable artifact (CONTACT SUPPORT). Adjacent low lanes touching
// either array edge are tolerated as expected tissue boundary effects and
// stay at ACTION REQUIRED; internal adjacent low runs escalate.
func LaneStatus(l LaneQC, kind FlagKind) Status {
	seen := make(map[int]bool)
	var flagged []int
	minChan, maxChan := -1, -1
	for i := range l.Rows {
		ch := l.Rows[i].Channel
		if minChan == -1 || ch < minChan {
			minChan = ch
		}
		if ch > maxChan {
			maxChan = ch
		}
		hit := (kind == HiFlag && l.Rows[i].HiWarn) || (kind == LoFlag && l.Rows[i].LoWarn)
		if hit && !seen[ch] {
			seen[ch] = true
			flagged = append(flagged, ch)
		}
	}
	if len(flagged) == 0 {
		return Pass
	}
	slices.Sort(flagged)

	// group flagged channels into contiguous runs; a run of two or more is
	// adjacency, and a run is internal when it touches neither array edge
	var adjacent, internalAdjacent bool
	runStart := 0
	for i := 1; i <= len(flagged); i++ {
		if i < len(flagged) && flagged[i]-flagged[i-1] == 1 {
			continue
		}
		if i-runStart >= 2 {
			adjacent = true
			if flagged[runStart] != minChan && flagged[i-1] != maxChan {
				internalAdjacent = true
			}
		}
		runStart = i
	}
	if !adjacent {
		return ActionRequired
	}
	if kind == HiFlag {
		return ContactSupport
	}
	if internalAdjacent {
		return ContactSupport
	}
	return ActionRequired
}

// SummaryRow is one screen of the QC summary table.
type SummaryRow struct {
	Check  string
	Status Status
	Detail string
}

// Summary is the status table consumed by the report layer.
type Summary []SummaryRow

// Worst returns the most severe status across all screens.
func (s Summary) Worst() Status {
	ss := make([]Status, len(s))
	for i := range s {
		ss[i] = s[i].Status
	}
	return Worst(ss...)
}

// WriteCsv writes the summary table.
func (s Summary) WriteCsv(path string) {
	out := fileio.EasyCreate(path)
	fmt.Fprintln(out, "check,status,detail")
	for i := range s {
		fmt.Fprintf(out, "%s,%s,%s\n", s[i].Check, s[i].Status, s[i].Detail)
	}
	err := out.Close()
	exception.PanicOnErr(err)
}
