package qc

import (
	"fmt"

	"github.com/atlasbio/barcodeqc/files"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
)

// SpatialRow is one physical pixel observed in sequencing: the combined
// 16-mer barcode, its read count, and the tissue position attributes.
type SpatialRow struct {
	Sequence string
	Count    int
	OnOff    int
	Row      int
	Col      int
}

// SpatialTable holds the pixels present in both the sequencing data and the
// tissue position file. Pixels are defined exclusively by the position file;
// combined barcodes it does not map are dropped.
type SpatialTable struct {
	Rows []SpatialRow
}

// BuildSpatialTable joins the two linker sides on read name, concatenates
// each surviving read's 8-mers into a combined barcode, counts reads per
// combined barcode, and keeps only barcodes mapped by the position file.
// The physical read layout places the side-B barcode (linker 2) upstream of
// side A, so combined barcodes are B-then-A. Reads matching only one linker
// are dropped: a pixel needs both halves.
func BuildSpatialTable(l1, l2 []files.Record, pos *files.Positions) SpatialTable {
	merL1 := make(map[string]string, len(l1))
	for i := range l1 {
		merL1[l1[i].ReadName] = l1[i].EightMer
	}

	counts := make(map[string]int)
	for i := range l2 {
		if mer1, found := merL1[l2[i].ReadName]; found {
			counts[l2[i].EightMer+mer1]++
		}
	}

	var t SpatialTable
	for seq, n := range counts {
		if p, found := pos.Lookup(seq); found {
			t.Rows = append(t.Rows, SpatialRow{
				Sequence: seq,
				Count:    n,
				OnOff:    p.OnOff,
				Row:      p.Row,
				Col:      p.Col,
			})
		}
	}

	slices.SortFunc(t.Rows, func(a, b SpatialRow) int {
		switch {
		case a.Count > b.Count:
			return -1
		case a.Count < b.Count:
			return 1
		case a.Sequence < b.Sequence:
			return -1
		case a.Sequence > b.Sequence:
			return 1
		default:
			return 0
		}
	})
	return t
}

// WriteCsv writes the spatial table.
func (t SpatialTable) WriteCsv(path string) {
	out := fileio.EasyCreate(path)
	fmt.Fprintln(out, "sequence,count,row,col,on_off")
	for i := range t.Rows {
		r := t.Rows[i]
		fmt.Fprintf(out, "%s,%d,%d,%d,%d\n", r.Sequence, r.Count, r.Row, r.Col, r.OnOff)
	}
	err := out.Close()
	exception.PanicOnErr(err)
}
