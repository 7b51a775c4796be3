package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/drtools/dr-invoice-tracker/internal/extract"
	"github.com/drtools/dr-invoice-tracker/internal/session"
)

// recordColumns is the fixed column order of the extraction sheet.
var recordColumns = []string{
	"DR No", "Order No", "Part No", "Part Name", "Qty", "Unit Size",
	"Box Type", "Branch", "Buyer Order No", "Vehicle No", "Kanban",
	"Crate Details",
}

// invoiceColumns is the fixed column order of the invoice sheet.
var invoiceColumns = []string{
	"DR No", "Date", "Buyers Order Number", "Quantity", "Vehicle Number",
	"Party Name", "Part No", "Part Name", "Order No", "Box Type",
	"Unit Size", "No of Pieces", "No of Packages", "Total Nos",
	"Total Kgs", "Crate Details",
}

// RecordRows flattens a record into spreadsheet rows: exactly one row per
// retained line item, or one blank placeholder row when there are none.
// Never zero rows.
func RecordRows(record extract.DrRecord) [][]string {
	h := record.Header
	if len(record.Items) == 0 {
		return [][]string{{
			h.DRNo, h.BuyerOrderNo, "", "", "", "", "",
			h.Branch, h.BuyerOrderNo, h.VehicleNo, "", h.CrateDetails,
		}}
	}
	rows := make([][]string, 0, len(record.Items))
	for _, it := range record.Items {
		rows = append(rows, []string{
			h.DRNo, it.OrderNo, it.PartNo, it.PartName, it.Qty, it.UnitSize,
			it.BoxType, h.Branch, h.BuyerOrderNo, h.VehicleNo, it.Kanban,
			h.CrateDetails,
		})
	}
	return rows
}

// RecordXLSX returns an XLSX workbook (as bytes) with one sheet of
// extracted DR rows.
func (p *Projector) RecordXLSX(record extract.DrRecord) ([]byte, error) {
	return p.writeSheet("DR Data", recordColumns, RecordRows(record))
}

// WriteRecordXLSX persists the extraction workbook as
// DR_<drno>_Data.xlsx under dir.
func (p *Projector) WriteRecordXLSX(record extract.DrRecord, dir string) (string, error) {
	buf, err := p.RecordXLSX(record)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("DR_%s_Data.xlsx", record.Header.DRNo))
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("write record xlsx: %w", err)
	}
	return path, nil
}

// InvoiceRow flattens a frozen prompt into the single invoice sheet row.
func InvoiceRow(record extract.DrRecord, prompt session.PromptData) []string {
	crate := fmt.Sprintf("%s; %s", prompt.CrateDetails.ForCrate, prompt.CrateDetails.Lid)
	return []string{
		prompt.DRNo,
		prompt.TodayDate,
		prompt.BuyersOrderNumber,
		prompt.Quantity,
		prompt.VehicleNumber,
		prompt.BillDetails.PartyName,
		prompt.PartDetails.PartNo,
		prompt.PartDetails.PartName,
		prompt.PartDetails.OrderNo,
		prompt.PartDetails.BoxType,
		prompt.PartDetails.UnitSize,
		prompt.Kanban.NoOfPieces,
		prompt.Kanban.NoOfPackages,
		prompt.Kanban.TotalNos,
		prompt.Kanban.TotalKgs,
		crate,
	}
}

// InvoiceXLSX returns the single-row "DR Invoice" workbook driven by the
// frozen prompt.
func (p *Projector) InvoiceXLSX(record extract.DrRecord, prompt session.PromptData) ([]byte, error) {
	return p.writeSheet("DR Invoice", invoiceColumns, [][]string{InvoiceRow(record, prompt)})
}

// WriteInvoiceXLSX persists the invoice workbook as
// DR_<drno>_Invoice.xlsx under dir.
func (p *Projector) WriteInvoiceXLSX(record extract.DrRecord, prompt session.PromptData, dir string) (string, error) {
	buf, err := p.InvoiceXLSX(record, prompt)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("DR_%s_Invoice.xlsx", prompt.DRNo))
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("write invoice xlsx: %w", err)
	}
	return path, nil
}

func (p *Projector) writeSheet(sheet string, headers []string, rows [][]string) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet so only ours remains
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "C", 18)
	_ = f.SetColWidth(sheet, "D", "D", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	p.log.Info("export.xlsx.ok",
		"sheet", sheet,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
