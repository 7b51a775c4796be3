package extract

import (
	"context"

	"github.com/drtools/dr-invoice-tracker/constants"
)

// DrHeader holds the scalar fields extracted once per document.
// Absent fields stay empty, never nil.
type DrHeader struct {
	DRNo         string
	Branch       string
	BuyerOrderNo string
	VehicleNo    string
	CrateDetails string
}

// LineItem is one ordered part on the delivery request.
type LineItem struct {
	OrderNo  string
	PartNo   string
	PartName string
	BoxType  string
	Qty      string
	UnitSize string
	Kanban   string
}

// DrRecord aggregates one header with its ordered line items.
// The item slice may be empty; spreadsheet export synthesizes a blank
// placeholder row in that case.
type DrRecord struct {
	Header DrHeader
	Items  []LineItem
}

// Empty reports whether nothing at all was extracted. Callers must treat
// an all-empty record as a failed extraction at the business level.
func (r DrRecord) Empty() bool {
	return r.Header == (DrHeader{}) && len(r.Items) == 0
}

// Result summarizes how a record was obtained.
type Result struct {
	Method constants.ExtractionMethod
	Pages  int
}

// Page is one decoded document page, as exposed by the PDF collaborator.
// Tables returns the page's tables as ordered rows of cell strings, with
// "" standing in for an absent cell.
type Page interface {
	Tables() [][][]string
	Text() string
}

// Document is an open document handle.
type Document interface {
	Pages() []Page
	Close() error
}

// Opener decodes a document from a path.
type Opener interface {
	Open(path string) (Document, error)
}

// Recognizer is the OCR fallback: rasterize the document and recognize
// text. Only invoked when the cheaper stages came up short.
type Recognizer interface {
	RecognizeDocument(ctx context.Context, path string) (string, error)
}
