// Package pdfsource adapts the PDF decoding library to the narrow page
// interfaces the extraction pipeline consumes.
package pdfsource

import (
	"fmt"

	pdfplumber "github.com/pyhub-apps/pdfplumber-golang"

	"github.com/drtools/dr-invoice-tracker/internal/extract"
)

// Opener opens documents through pdfplumber.
type Opener struct{}

func NewOpener() Opener { return Opener{} }

func (Opener) Open(path string) (extract.Document, error) {
	doc, err := pdfplumber.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", path, err)
	}
	return &document{doc: doc}, nil
}

type document struct {
	doc pdfplumber.Document
}

func (d *document) Pages() []extract.Page {
	src := d.doc.GetPages()
	pages := make([]extract.Page, 0, len(src))
	for _, p := range src {
		pages = append(pages, &page{p: p})
	}
	return pages
}

func (d *document) Close() error {
	return d.doc.Close()
}

type page struct {
	p pdfplumber.Page
}

func (pg *page) Tables() [][][]string {
	tables := pg.p.ExtractTables()
	out := make([][][]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Rows)
	}
	return out
}

func (pg *page) Text() string {
	return pg.p.ExtractText()
}
