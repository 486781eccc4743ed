// Package bcset resolves barcode-set keys to the whitelist and tissue
// position files bundled with an installation. The registry is built once at
// startup from an explicit data directory and passed through the pipeline,
// so tests can point it at fixture files.
package bcset

import (
	"path/filepath"

	"golang.org/x/exp/slices"
)

// Set names the files backing one barcode-set configuration: a whitelist per
// linker side and the default tissue position file.
type Set struct {
	Key       string
	BarcodeA  string
	BarcodeB  string
	Positions string
}

// Registry maps barcode-set keys to their file sets.
type Registry struct {
	sets map[string]Set
}

// fileNames lists the bundled file names per key: barcode A list, barcode B
// list, default tissue positions.
var fileNames = map[string][3]string{
	"bc50":         {"merList50.tsv", "merList50.tsv", "x50_all_tissue_positions_list.csv"},
	"bc96":         {"merList96.tsv", "merList96.tsv", "x96_all_tissue_positions_list.csv"},
	"fg96":         {"merListfg96.tsv", "merListfg96.tsv", "xfg96_11DEC_alltissue_positions_list.csv"},
	"bc220":        {"merList220_25-APR.tsv", "merList220_25-APR.tsv", "xbc220_25APR_alltissue_positions_list.csv"},
	"bc220_05-OCT": {"merList220_05-OCT.tsv", "merList220_05-OCT.tsv", "xbc220_05OCT_alltissue_positions_list.csv"},
	"bc220_20-MAY": {"merList220_20-MAY.tsv", "merList220_20-MAY.tsv", "xbc220-20MAY_alltissue_positions_list.csv"},
}

// New builds the registry rooted at dataDir. The directory is expected to
// hold barcode_files/barcode_A, barcode_files/barcode_B, and position_files
// subdirectories.
func New(dataDir string) Registry {
	r := Registry{sets: make(map[string]Set)}
	for key, names := range fileNames {
		r.sets[key] = Set{
			Key:       key,
			BarcodeA:  filepath.Join(dataDir, "barcode_files", "barcode_A", names[0]),
			BarcodeB:  filepath.Join(dataDir, "barcode_files", "barcode_B", names[1]),
			Positions: filepath.Join(dataDir, "position_files", names[2]),
		}
	}
	return r
}

// Get returns the set for key, reporting whether the key is known.
func (r Registry) Get(key string) (Set, bool) {
	s, found := r.sets[key]
	return s, found
}

// Keys returns all known barcode-set keys in sorted order.
func (r Registry) Keys() []string {
	var keys []string
	for k := range r.sets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
