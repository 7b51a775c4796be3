package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/drtools/dr-invoice-tracker/constants"
	"github.com/drtools/dr-invoice-tracker/internal/common"
)

// minTextLen is the stripped-text length under which the plain text layer
// is considered unusable and OCR is attempted.
const minTextLen = 100

// minOCRLen is the stripped-text length under which even the OCR output
// counts as no usable content.
const minOCRLen = 50

// Pipeline runs the staged extraction: tables, then plain text, then OCR.
// Each stage is attempted at most once per document and only after the
// cheaper one came up short. The pipeline holds no per-document state.
type Pipeline struct {
	Opener Opener
	OCR    Recognizer
	Log    *slog.Logger
}

func NewPipeline(opener Opener, ocr Recognizer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Opener: opener, OCR: ocr, Log: log}
}

// Run extracts a DrRecord from the document at path.
//
// Decode/tooling failures are logged and degrade to the next stage; they
// never propagate as raw faults. When not even OCR yields usable text the
// returned record is all-empty and err wraps common.ErrNoUsableContent so
// the caller can offer manual entry.
func (p *Pipeline) Run(ctx context.Context, path string) (DrRecord, Result, error) {
	header, items, pages := p.tryTables(path)
	if len(items) > 0 {
		if header.BuyerOrderNo == "" {
			header.BuyerOrderNo = items[0].OrderNo
		}
		p.Log.Info("pipeline.tables.ok", "path", path, "items", len(items), "pages", pages)
		return DrRecord{Header: header, Items: items},
			Result{Method: constants.MethodTable, Pages: pages}, nil
	}

	p.Log.Info("pipeline.tables.empty", "path", path)
	text, pages := p.textFromDocument(path)
	method := constants.MethodText

	if len(strings.TrimSpace(text)) < minTextLen {
		p.Log.Info("pipeline.text.short", "path", path, "len", len(strings.TrimSpace(text)))
		text = p.runOCR(ctx, path)
		method = constants.MethodOCR
	}

	if len(strings.TrimSpace(text)) < minOCRLen {
		p.Log.Warn("pipeline.no_usable_content", "path", path)
		return DrRecord{}, Result{Method: constants.MethodNone, Pages: pages},
			common.NewAppError("EXTRACT_EMPTY", "no readable text in document", common.ErrNoUsableContent)
	}

	record := ParseFromText(text)
	p.Log.Info("pipeline.text.ok",
		"path", path,
		"method", method,
		"items", len(record.Items),
		"dr_no", record.Header.DRNo,
	)
	return record, Result{Method: method, Pages: pages}, nil
}

// tryTables attempts structured table extraction across all pages. Header
// fields are pulled from the leading rows of each page's first table;
// the first match per field wins across pages.
func (p *Pipeline) tryTables(path string) (DrHeader, []LineItem, int) {
	var header DrHeader
	var items []LineItem

	doc, err := p.Opener.Open(path)
	if err != nil {
		p.Log.Error("pipeline.open.failed", "path", path, "err", err)
		return header, items, 0
	}
	defer func() { _ = doc.Close() }()

	docPages := doc.Pages()
	for _, page := range docPages {
		tables := page.Tables()
		if len(tables) == 0 {
			continue
		}
		main := tables[0]
		if len(main) == 0 {
			continue
		}

		n := headerScanRows
		if n > len(main) {
			n = len(main)
		}
		for _, row := range main[:n] {
			scanHeaderFields(&header, joinCells(row))
		}

		if idx := LocateHeaderRow(main); idx != HeaderRowNotFound {
			items = append(items, ParseTableRows(main, idx)...)
		}
	}
	return header, items, len(docPages)
}

// textFromDocument concatenates the plain text of every page. Decode
// errors yield empty text, pushing the pipeline toward OCR.
func (p *Pipeline) textFromDocument(path string) (string, int) {
	doc, err := p.Opener.Open(path)
	if err != nil {
		p.Log.Error("pipeline.open.failed", "path", path, "err", err)
		return "", 0
	}
	defer func() { _ = doc.Close() }()

	var b strings.Builder
	docPages := doc.Pages()
	for _, page := range docPages {
		b.WriteString("\n")
		b.WriteString(page.Text())
	}
	return b.String(), len(docPages)
}

func (p *Pipeline) runOCR(ctx context.Context, path string) string {
	if p.OCR == nil {
		p.Log.Warn("pipeline.ocr.unavailable", "path", path)
		return ""
	}
	text, err := p.OCR.RecognizeDocument(ctx, path)
	if err != nil {
		p.Log.Error("pipeline.ocr.failed", "path", path, "err", err)
		return ""
	}
	return text
}
