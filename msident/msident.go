// Package msident holds peptide identification rows in memory.
package msident

import "errors"

// Identification is one peptide identification: the uncharged
// monoisotopic mass, the charge state, the id of the scan the peptide
// eluted in, and an opaque peptide id for result correlation.
type Identification struct {
	PepID  string
	Mass   float64
	Charge float64
	ScanID string
}

var (
	// ErrInvalidIdentIndex means an invalid identification index is supplied
	ErrInvalidIdentIndex = errors.New("msident: invalid identification index")
)

// Table holds identification rows, accessed by row index
type Table struct {
	idents []Identification
}

// NewTable builds a table from identification rows. Row fields are not
// validated here: a degenerate mass or charge fails that row during
// processing, it does not invalidate the table.
func NewTable(idents []Identification) *Table {
	t := &Table{idents: make([]Identification, len(idents))}
	copy(t.idents, idents)
	return t
}

// NumIdents returns the total number of identifications in the table
func (t *Table) NumIdents() int {
	return len(t.idents)
}

// Ident returns identification i. The index runs from 0 to NumIdents()-1
func (t *Table) Ident(i int) (Identification, error) {
	var ident Identification
	if i < 0 || i >= len(t.idents) {
		return ident, ErrInvalidIdentIndex
	}
	return t.idents[i], nil
}
