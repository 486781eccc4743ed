// Package report assembles the self-contained HTML QC report: all figures
// are base64-embedded so the file can be shared without its run directory.
package report

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/vertgenlab/gonomics/fileio"
)

// Table is a generic header+rows table for report rendering. The qc and
// report subcommands both feed CSV-shaped data through this type.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCsvTable loads a CSV written by the pipeline back into a Table.
func ReadCsvTable(path string) (Table, error) {
	var t Table
	var line string
	var done bool
	in := fileio.EasyOpen(path)
	defer in.Close()
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if t.Header == nil {
			t.Header = fields
			continue
		}
		t.Rows = append(t.Rows, fields)
	}
	return t, nil
}

type figure struct {
	Name    string
	DataURI template.URL
}

type section struct {
	Title   string
	Figures []figure
}

type reportData struct {
	SampleName string
	Note       template.HTML
	Summary    *Table
	OnOff      *Table
	Sections   []section
}

// figureSection groups figures by file name the way the run emits them, so
// related panels render together.
func figureSection(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "pareto"):
		return "Barcode abundance"
	case strings.Contains(lower, "barplot"):
		return "Lane QC"
	case strings.Contains(lower, "dense_on_off"):
		return "On/off tissue"
	default:
		return "Other figures"
	}
}

var sectionOrder = []string{"Barcode abundance", "Lane QC", "On/off tissue", "Other figures"}

// Generate writes <sample>_bcQC_report.html into outputDir and returns its
// path. summary and onoff may be nil when regenerating from partial runs.
func Generate(outputDir, sampleName string, figurePaths []string, summary, onoff *Table, note string) (string, error) {
	grouped := make(map[string][]figure)
	for _, p := range figurePaths {
		uri, err := imageDataURI(p)
		if err != nil {
			return "", err
		}
		s := figureSection(filepath.Base(p))
		grouped[s] = append(grouped[s], figure{Name: filepath.Base(p), DataURI: template.URL(uri)})
	}

	data := reportData{
		SampleName: sampleName,
		Note:       template.HTML(note),
		Summary:    summary,
		OnOff:      onoff,
	}
	for _, title := range sectionOrder {
		if len(grouped[title]) > 0 {
			data.Sections = append(data.Sections, section{Title: title, Figures: grouped[title]})
		}
	}

	outPath := filepath.Join(outputDir, sampleName+"_bcQC_report.html")
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err = reportTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return outPath, nil
}

func imageDataURI(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("embedding figure %s: %w", path, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"statusClass": statusClass,
}).Parse(reportHTML))

// statusClass maps a verdict to its css class for the summary table.
func statusClass(s string) string {
	switch s {
	case "PASS":
		return "pass"
	case "CAUTION":
		return "caution"
	default:
		return "fail"
	}
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>barcodeqc {{ .SampleName }}</title>
<style>
  body { margin: 0; padding: 24px 16px; color: #1f2937; background: #ffffff;
         font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
  h1 { font-size: 28px; margin: 0 0 8px; }
  h2 { font-size: 20px; margin: 0 0 12px; }
  .container { max-width: 1200px; margin: 0 auto; }
  .pill { font-weight: 600; color: #ffffff; background: #0b63ff;
          padding: 6px 10px; border-radius: 999px; font-size: 12px; }
  .panel { padding: 16px; margin: 16px 0; border: 1px solid #e5e7eb;
           border-radius: 12px; box-shadow: 0 1px 2px rgba(0,0,0,0.05); }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #e5e7eb; }
  td.pass { color: #15803d; font-weight: 600; }
  td.caution { color: #b45309; font-weight: 600; }
  td.fail { color: #b91c1c; font-weight: 600; }
  img { max-width: 100%; }
</style>
</head>
<body>
<div class="container">
  <h1>Barcode QC Report <span class="pill">{{ .SampleName }}</span></h1>
  {{ if .Note }}<div class="panel">{{ .Note }}</div>{{ end }}
  {{ if .Summary }}
  <div class="panel">
    <h2>Summary</h2>
    <table>
      <tr>{{ range .Summary.Header }}<th>{{ . }}</th>{{ end }}</tr>
      {{ range .Summary.Rows }}
      <tr>{{ range $i, $v := . }}{{ if eq $i 1 }}<td class="{{ statusClass $v }}">{{ $v }}</td>{{ else }}<td>{{ $v }}</td>{{ end }}{{ end }}</tr>
      {{ end }}
    </table>
  </div>
  {{ end }}
  {{ if .OnOff }}
  <div class="panel">
    <h2>On/off tissue metrics</h2>
    <table>
      <tr>{{ range .OnOff.Header }}<th>{{ . }}</th>{{ end }}</tr>
      {{ range .OnOff.Rows }}
      <tr>{{ range . }}<td>{{ . }}</td>{{ end }}</tr>
      {{ end }}
    </table>
  </div>
  {{ end }}
  {{ range .Sections }}
  <div class="panel">
    <h2>{{ .Title }}</h2>
    {{ range .Figures }}
    <h3>{{ .Name }}</h3>
    <img src="{{ .DataURI }}" alt="{{ .Name }}">
    {{ end }}
  </div>
  {{ end }}
</div>
</body>
</html>
`
