package project

import (
	"fmt"

	"github.com/drtools/dr-invoice-tracker/constants"
	"github.com/drtools/dr-invoice-tracker/internal/extract"
	"github.com/drtools/dr-invoice-tracker/internal/session"
)

// InvoiceSummary is the flat pass-through view shown to the operator
// after generation. It mirrors the header and first line item and carries
// no computed tax.
func InvoiceSummary(record extract.DrRecord, prompt session.PromptData) map[string]string {
	return map[string]string{
		"invoice_number": fmt.Sprintf("INV-%s", prompt.DRNo),
		"dr_number":      prompt.DRNo,
		"date":           prompt.TodayDate,
		"buyers_order":   prompt.BuyersOrderNumber,
		"party_code":     prompt.BillDetails.PartyName,
		"vehicle":        prompt.VehicleNumber,
		"part_no":        prompt.PartDetails.PartNo,
		"part_name":      prompt.PartDetails.PartName,
		"quantity":       prompt.Quantity,
		"unit_size":      prompt.PartDetails.UnitSize,
		"box_type":       prompt.PartDetails.BoxType,
		"crate_details":  prompt.CrateDetails.DRReference,
		"status":         constants.InvoiceStatusGenerated,
	}
}
