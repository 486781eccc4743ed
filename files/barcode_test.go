package files

import (
	"errors"
	"strings"
	"testing"
)

func TestReadBarcodeFile(t *testing.T) {
	content := "sequence,row,col\n" +
		"ACGTACGT,0,0\n" +
		"TTTTAAAA,1,0\n" +
		"GGGGCCCC,2.0,1\n"
	path := writeTempFile(t, "barcodes.csv", content)

	wl, err := ReadBarcodeFile(path)
	if err != nil {
		t.Fatal("problem with barcode file parse", err)
	}
	if wl.Len() != 3 {
		t.Error("problem with entry count", wl.Len())
	}
	e, found := wl.Lookup("GGGGCCCC")
	if !found || e.Row != 2 || e.Col != 1 {
		t.Error("problem with integer-valued float coordinates", e, found)
	}
	if _, found = wl.Lookup("AAAAAAAA"); found {
		t.Error("problem with lookup of absent barcode")
	}
}

func TestReadBarcodeFileTabDelimited(t *testing.T) {
	content := "sequence\trow\tcol\nACGTACGT\t0\t0\nTTTTAAAA\t1\t0\n"
	path := writeTempFile(t, "barcodes.tsv", content)
	wl, err := ReadBarcodeFile(path)
	if err != nil {
		t.Fatal("problem with tsv barcode file parse", err)
	}
	if wl.Len() != 2 {
		t.Error("problem with tsv entry count", wl.Len())
	}
}

func TestReadBarcodeFileShortSequence(t *testing.T) {
	path := writeTempFile(t, "barcodes.csv", "sequence,row,col\nATCGATC,0,0\n")
	_, err := ReadBarcodeFile(path)
	var bcErr *BarcodeFileError
	if !errors.As(err, &bcErr) {
		t.Fatal("problem with 7-char sequence detection", err)
	}
	if bcErr.Column != "sequence" || !strings.Contains(bcErr.Error(), "ATCGATC") {
		t.Error("problem with error content", bcErr)
	}
}

func TestReadBarcodeFileNegativeRow(t *testing.T) {
	path := writeTempFile(t, "barcodes.csv", "sequence,row,col\nACGTACGT,-1,0\n")
	_, err := ReadBarcodeFile(path)
	var bcErr *BarcodeFileError
	if !errors.As(err, &bcErr) {
		t.Fatal("problem with negative row detection", err)
	}
	if bcErr.Column != "row" {
		t.Error("problem with error column", bcErr.Column)
	}
}

func TestReadBarcodeFileFractionalRow(t *testing.T) {
	path := writeTempFile(t, "barcodes.csv", "sequence,row,col\nACGTACGT,1.5,0\n")
	_, err := ReadBarcodeFile(path)
	var bcErr *BarcodeFileError
	if !errors.As(err, &bcErr) {
		t.Fatal("problem with fractional row detection", err)
	}
	if bcErr.Column != "row" {
		t.Error("problem with error column", bcErr.Column)
	}
}

func TestReadBarcodeFileExampleLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("sequence,row,col\n")
	bad := []string{"AAA", "CCC", "GGG", "TTT", "AAC", "CCA", "GGA"}
	for i := range bad {
		sb.WriteString(bad[i] + ",0,0\n")
	}
	path := writeTempFile(t, "barcodes.csv", sb.String())
	_, err := ReadBarcodeFile(path)
	var bcErr *BarcodeFileError
	if !errors.As(err, &bcErr) {
		t.Fatal("problem with invalid sequence detection", err)
	}
	if len(bcErr.Examples) != 5 {
		t.Error("problem with example limit", bcErr.Examples)
	}
}
