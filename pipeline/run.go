package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/atlasbio/barcodeqc/files"
	"github.com/atlasbio/barcodeqc/plots"
	"github.com/atlasbio/barcodeqc/qc"
	"github.com/atlasbio/barcodeqc/report"
	"github.com/guptarohit/asciigraph"
)

// linkerSide wires together everything that differs between the two
// extraction passes: linker 1 flanks the side-A (row) barcode and linker 2
// the side-B (col) barcode.
type linkerSide struct {
	Label     string
	Whitelist *files.Whitelist
	Channel   qc.Channel
	Files     LinkerFiles
}

// Run executes the full QC pipeline for one sample and returns the summary
// status table. Any error aborts the run; no partial-result recovery is
// attempted.
func Run(cfg Config) (qc.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, err
	}

	// whitelists and tissue positions are validated before any external
	// tool runs
	wlA, err := files.ReadBarcodeFile(cfg.Set.BarcodeA)
	if err != nil {
		return nil, err
	}
	wlB, err := files.ReadBarcodeFile(cfg.Set.BarcodeB)
	if err != nil {
		return nil, err
	}
	positions, err := files.ReadPositionsFile(cfg.TissuePositionFile)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d side-A and %d side-B barcodes, %d tissue positions",
		wlA.Len(), wlB.Len(), positions.Len())

	var rawReads int
	if cfg.CountRawReads {
		rawReads = CountReads(cfg.FastqPath)
		log.Printf("input fastq holds %d reads", rawReads)
	}

	dsPath, err := Subsample(cfg.FastqPath, cfg.SampleReads, cfg.RandomSeed, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	l1Files, l2Files, err := RunCutadapt(dsPath, cfg.OutputDir, cfg.Cores)
	if err != nil {
		return nil, err
	}

	// a parse failure on either side is fatal: the spatial table needs both
	recsL1, err := files.ReadWildcardFile(l1Files.Wildcard)
	if err != nil {
		return nil, err
	}
	recsL2, err := files.ReadWildcardFile(l2Files.Wildcard)
	if err != nil {
		return nil, err
	}

	spatial := qc.BuildSpatialTable(recsL1, recsL2, positions)
	spatial.WriteCsv(filepath.Join(cfg.OutputDir, "spatialTable.csv"))

	sides := []struct {
		linkerSide
		Recs []files.Record
	}{
		{linkerSide{"L1", wlA, qc.RowChannel, l1Files}, recsL1},
		{linkerSide{"L2", wlB, qc.ColChannel, l2Files}, recsL2},
	}

	var summary qc.Summary
	var figures []string
	var laneHi, laneLo, contam []qc.Status
	maxToNinety := -1
	var lastTotal, lastAdapter int
	for _, side := range sides {
		log.Printf("processing 8mer counts for %s", side.Label)
		ct := qc.BuildCountTable(side.Recs, side.Whitelist, side.Channel)
		ct.WriteCsv(filepath.Join(cfg.OutputDir, side.Label+"_counts.csv"))
		if ct.NumToNinety > maxToNinety {
			maxToNinety = ct.NumToNinety
		}

		totalReads, adapterReads, err := ParseReadLog(side.Files.Log)
		if err != nil {
			return nil, err
		}
		lastTotal, lastAdapter = totalReads, adapterReads
		log.Println(qc.FormatWildcardMetrics(side.Label, totalReads, adapterReads,
			len(ct.Rows), ct.NumToNinety, ct.ExpectedCount(), side.Whitelist.Len(),
			ct.ExpectedFrac(), ct.PctFor50, ct.PctFor96))

		if cfg.Verbose {
			printFracGraph(side.Label, ct)
		}

		log.Printf("identifying hi/lo barcodes for %s", side.Label)
		lane := qc.BuildLaneQC(ct)
		log.Println(qc.FormatHiLoMetrics(side.Label, lane))
		if len(lane.Flagged()) > 0 {
			lane.WriteFlaggedCsv(filepath.Join(cfg.OutputDir, side.Label+"_hiLoWarn.csv"))
		}

		barPath := filepath.Join(cfg.OutputDir, side.Label+"_barplot.png")
		if err = plots.LaneBarPlot(lane, side.Label+" lane fractions", barPath); err != nil {
			return nil, err
		}
		figures = append(figures, barPath)

		paretoPath := filepath.Join(cfg.OutputDir, side.Label+"_pareto.png")
		if err = plots.ParetoPlot(ct, maxToNinety+maxToNinety/2, side.Label+" barcode abundance", paretoPath); err != nil {
			return nil, err
		}
		figures = append(figures, paretoPath)

		linkerStatus, rate := qc.LinkerStatus(totalReads, adapterReads)
		summary = append(summary, qc.SummaryRow{
			Check:  side.Label + " linker conservation",
			Status: linkerStatus,
			Detail: fmt.Sprintf("%.1f%% of reads retained the linker", rate*100),
		})

		contamStatus, unexpected := qc.BarcodeStatus(ct)
		contam = append(contam, contamStatus)
		summary = append(summary, qc.SummaryRow{
			Check:  side.Label + " barcode contamination",
			Status: contamStatus,
			Detail: fmt.Sprintf("%d unexpected barcodes among the most frequent", unexpected),
		})

		laneHi = append(laneHi, qc.LaneStatus(lane, qc.HiFlag))
		laneLo = append(laneLo, qc.LaneStatus(lane, qc.LoFlag))
	}

	// lane anomaly screens aggregate the worst verdict across both sides
	summary = append(summary,
		qc.SummaryRow{Check: "lane hiWarn", Status: qc.Worst(laneHi...), Detail: "adjacency of high lanes"},
		qc.SummaryRow{Check: "lane loWarn", Status: qc.Worst(laneLo...), Detail: "adjacency of low lanes"},
	)

	log.Println("calculating on/off tissue stats")
	onoff := qc.ComputeOnOffMetrics(spatial)
	onoff.WriteCsv(filepath.Join(cfg.OutputDir, "onoff_tissue_table.csv"))

	densePath := filepath.Join(cfg.OutputDir, "dense_on_off.png")
	if err = plots.OnOffHistogram(spatial, "on/off tissue counts", densePath); err != nil {
		return nil, err
	}
	figures = append(figures, densePath)

	summary.WriteCsv(filepath.Join(cfg.OutputDir, "qc_table.csv"))

	log.Println("generating html report")
	note := fmt.Sprintf("<b>Reads with linker:</b> %d of %d", lastAdapter, lastTotal)
	if cfg.CountRawReads {
		note += fmt.Sprintf("<br><b>Raw reads in input:</b> %d", rawReads)
	}
	_, err = report.Generate(cfg.OutputDir, cfg.SampleName, figures,
		summaryTable(summary), onoffTable(onoff), note)
	if err != nil {
		return nil, err
	}
	log.Println("html report finished")

	return summary, nil
}

// printFracGraph draws the descending barcode fraction curve in the
// terminal for quick inspection of skew without opening the report.
func printFracGraph(label string, ct qc.CountTable) {
	n := len(ct.Rows)
	if n > 100 {
		n = 100
	}
	if n == 0 {
		return
	}
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = ct.Rows[i].FracCount
	}
	fmt.Printf("%s barcode fractions (top %d):\n%s\n", label, n,
		asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(80)))
}

func summaryTable(s qc.Summary) *report.Table {
	t := &report.Table{Header: []string{"check", "status", "detail"}}
	for i := range s {
		t.Rows = append(t.Rows, []string{s[i].Check, s[i].Status.String(), s[i].Detail})
	}
	return t
}

func onoffTable(m qc.OnOffMetrics) *report.Table {
	t := &report.Table{Header: []string{"metric", "value"}}
	for _, kv := range m.Table() {
		t.Rows = append(t.Rows, []string{kv[0], kv[1]})
	}
	return t
}
