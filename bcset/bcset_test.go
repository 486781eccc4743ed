package bcset

import (
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	r := New("data")

	s, found := r.Get("bc96")
	if !found {
		t.Fatal("problem with known key lookup")
	}
	if s.BarcodeA != filepath.Join("data", "barcode_files", "barcode_A", "merList96.tsv") {
		t.Error("problem with barcode A path", s.BarcodeA)
	}
	if s.Positions != filepath.Join("data", "position_files", "x96_all_tissue_positions_list.csv") {
		t.Error("problem with positions path", s.Positions)
	}

	if _, found = r.Get("bc999"); found {
		t.Error("problem with unknown key lookup")
	}
}

func TestKeys(t *testing.T) {
	keys := New("data").Keys()
	if len(keys) != 6 {
		t.Error("problem with key count", keys)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			t.Error("problem with key sort order", keys)
		}
	}
}
