package files

import (
	"fmt"
	"strings"
)

// BarcodeFileError reports a barcode whitelist or tissue position file that
// failed validation. Column names the offending column and Examples holds up
// to five of the bad values found.
type BarcodeFileError struct {
	Column   string
	Reason   string
	Examples []string
}

func (e *BarcodeFileError) Error() string {
	if len(e.Examples) == 0 {
		return fmt.Sprintf("%s column %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("%s column %s. Examples: [%s]. Please ensure you are using the correct input file",
		e.Column, e.Reason, strings.Join(e.Examples, " "))
}

// WildcardFileError reports a wildcard extraction file whose 8-mer column
// could not be identified unambiguously.
type WildcardFileError struct {
	File   string
	Reason string
}

func (e *WildcardFileError) Error() string {
	return fmt.Sprintf("wildcard file %s: %s", e.File, e.Reason)
}

// limit pares an example list down to at most five values.
func limit(vals []string) []string {
	if len(vals) > 5 {
		return vals[:5]
	}
	return vals
}
