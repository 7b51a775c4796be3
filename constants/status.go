package constants

// ExtractionMethod records which pipeline stage produced the usable content.
type ExtractionMethod string

// Stable values (reported in logs and results).
const (
	MethodTable ExtractionMethod = "table"    // structured table rows
	MethodText  ExtractionMethod = "pdf-text" // plain text layer
	MethodOCR   ExtractionMethod = "pdf-ocr"  // rasterized + recognized
	MethodNone  ExtractionMethod = "none"     // degraded, nothing usable
)

// TaxType selects the GST split on the generated voucher.
type TaxType string

const (
	TaxCGSTSGST TaxType = "CGST_SGST" // intrastate split
	TaxIGST     TaxType = "IGST"      // interstate single line
)

// InvoiceStatusGenerated is the terminal status on an invoice summary.
const InvoiceStatusGenerated = "Generated"
