package qc

import (
	"fmt"

	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// OnOffMetrics aggregates the spatial table by tissue call.
type OnOffMetrics struct {
	TotalPix        int
	TotalOn         int
	TotalOff        int
	CountsOn        int
	CountsOff       int
	RatioOffOn      float64
	CountsPerPixOn  float64
	CountsPerPixOff float64
	FracPerPixOffOn float64
}

// safeRatio is the single zero-denominator policy for all on/off ratios: a
// zero denominator yields 0 rather than an error or Inf.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// ComputeOnOffMetrics partitions the spatial table by on/off tissue call and
// computes pixel counts, summed read counts, per-pixel rates, and off/on
// ratios.
func ComputeOnOffMetrics(t SpatialTable) OnOffMetrics {
	var m OnOffMetrics
	m.TotalPix = len(t.Rows)
	for i := range t.Rows {
		if t.Rows[i].OnOff == 1 {
			m.TotalOn++
			m.CountsOn += t.Rows[i].Count
		} else {
			m.TotalOff++
			m.CountsOff += t.Rows[i].Count
		}
	}
	m.CountsPerPixOn = safeRatio(float64(m.CountsOn), float64(m.TotalOn))
	m.CountsPerPixOff = safeRatio(float64(m.CountsOff), float64(m.TotalOff))
	m.FracPerPixOffOn = safeRatio(m.CountsPerPixOff, m.CountsPerPixOn)
	m.RatioOffOn = safeRatio(float64(m.CountsOff), float64(m.CountsOn))
	return m
}

// Table renders the metrics as ordered name/value pairs.
func (m OnOffMetrics) Table() [][2]string {
	return [][2]string{
		{"total_pix", fmt.Sprintf("%d", m.TotalPix)},
		{"total_on", fmt.Sprintf("%d", m.TotalOn)},
		{"total_off", fmt.Sprintf("%d", m.TotalOff)},
		{"counts_on", fmt.Sprintf("%d", m.CountsOn)},
		{"counts_off", fmt.Sprintf("%d", m.CountsOff)},
		{"ratio_off_on", formatFloat(m.RatioOffOn)},
		{"counts_per_pix_on", formatFloat(m.CountsPerPixOn)},
		{"counts_per_pix_off", formatFloat(m.CountsPerPixOff)},
		{"frac_per_pix_off_on", formatFloat(m.FracPerPixOffOn)},
	}
}

// WriteCsv writes the metrics as metric,value pairs.
func (m OnOffMetrics) WriteCsv(path string) {
	out := fileio.EasyCreate(path)
	fmt.Fprintln(out, "metric,value")
	for _, kv := range m.Table() {
		fmt.Fprintf(out, "%s,%s\n", kv[0], kv[1])
	}
	err := out.Close()
	exception.PanicOnErr(err)
}
