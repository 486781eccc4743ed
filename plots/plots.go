// Package plots renders the diagnostic figures embedded in the QC report.
package plots

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atlasbio/barcodeqc/qc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var gray = color.RGBA{R: 128, G: 128, B: 128, A: 255}
var red = color.RGBA{R: 214, G: 39, B: 40, A: 255}
var blue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
var orange = color.RGBA{R: 255, G: 127, B: 14, A: 255}

// LaneBarPlot draws the per-lane read fraction of whitelisted barcodes with
// dashed cut lines at the mean and the 2x / 0.5x warning thresholds.
func LaneBarPlot(l qc.LaneQC, title, path string) error {
	vals := make(plotter.Values, len(l.Rows))
	labels := make([]string, len(l.Rows))
	for i := range l.Rows {
		vals[i] = l.Rows[i].FracCount
		labels[i] = fmt.Sprintf("%d", l.Rows[i].Channel)
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(8))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = blue

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "channel"
	p.Y.Label.Text = "frac_count"
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.Font.Size = 6

	xMax := float64(len(l.Rows))
	addCutLine(p, l.Mean, xMax, gray)
	addCutLine(p, 2*l.Mean, xMax, red)
	addCutLine(p, 0.5*l.Mean, xMax, red)

	return p.Save(30*vg.Centimeter, 8*vg.Centimeter, path)
}

// ParetoPlot draws the barcode frequency distribution and its cumulative
// sum for the most frequent upTo barcodes, with a reference line at 0.9.
func ParetoPlot(t qc.CountTable, upTo int, title, path string) error {
	if upTo > len(t.Rows) || upTo <= 0 {
		upTo = len(t.Rows)
	}
	frac := make(plotter.XYs, upTo)
	cum := make(plotter.XYs, upTo)
	for i := 0; i < upTo; i++ {
		frac[i].X, frac[i].Y = float64(i), t.Rows[i].FracCount
		cum[i].X, cum[i].Y = float64(i), t.Rows[i].CumulativeSum
	}

	fracLine, err := plotter.NewLine(frac)
	if err != nil {
		return err
	}
	fracLine.Color = blue
	cumLine, err := plotter.NewLine(cum)
	if err != nil {
		return err
	}
	cumLine.Color = orange

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "barcode rank"
	p.Y.Label.Text = "fraction of reads"
	p.Add(fracLine, cumLine)
	p.Legend.Add("fraction total 8mer", fracLine)
	p.Legend.Add("cumulative fraction", cumLine)
	p.Legend.Top = true

	addCutLine(p, 0.9, float64(upTo), gray)

	return p.Save(30*vg.Centimeter, 15*vg.Centimeter, path)
}

// OnOffHistogram draws overlaid histograms of log10 read counts for on- and
// off-tissue pixels.
func OnOffHistogram(t qc.SpatialTable, title, path string) error {
	var on, off plotter.Values
	for i := range t.Rows {
		v := math.Log10(float64(t.Rows[i].Count))
		if t.Rows[i].OnOff == 1 {
			on = append(on, v)
		} else {
			off = append(off, v)
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "log10 total counts"
	p.Y.Label.Text = "density"

	// blue is on tissue, red is off tissue
	if err := addHistogram(p, on, blue); err != nil {
		return err
	}
	if err := addHistogram(p, off, red); err != nil {
		return err
	}

	return p.Save(20*vg.Centimeter, 12*vg.Centimeter, path)
}

func addHistogram(p *plot.Plot, vals plotter.Values, c color.Color) error {
	if len(vals) == 0 {
		return nil
	}
	h, err := plotter.NewHist(vals, 40)
	if err != nil {
		return err
	}
	h.Normalize(1)
	h.FillColor = withAlpha(c, 128)
	h.LineStyle.Color = c
	p.Add(h)
	return nil
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

// addCutLine draws a dashed horizontal reference line across the plot.
func addCutLine(p *plot.Plot, y, xMax float64, c color.Color) {
	line, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: y}, {X: xMax - 0.5, Y: y}})
	if err != nil {
		return
	}
	line.LineStyle = draw.LineStyle{
		Color:  c,
		Width:  vg.Points(0.5),
		Dashes: []vg.Length{vg.Points(4), vg.Points(3)},
	}
	p.Add(line)
}
