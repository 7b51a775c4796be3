package project_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drtools/dr-invoice-tracker/internal/extract"
	"github.com/drtools/dr-invoice-tracker/internal/project"
	"github.com/drtools/dr-invoice-tracker/internal/session"
)

var _ = Describe("InvoiceSummary", func() {
	It("mirrors the frozen prompt with a derived invoice number", func() {
		record := extract.DrRecord{
			Header: extract.DrHeader{DRNo: "1234567890", Branch: "Madurai Operations"},
			Items:  []extract.LineItem{{OrderNo: "4501234567", PartNo: "PN-1", Qty: "10"}},
		}
		prompt := session.BuildPrompt(record, session.PromptDefaults{
			Mappings: session.DefaultBranchMappings,
		}, fixedNow())

		summary := project.InvoiceSummary(record, prompt)
		Expect(summary["invoice_number"]).To(Equal("INV-1234567890"))
		Expect(summary["dr_number"]).To(Equal("1234567890"))
		Expect(summary["date"]).To(Equal("14-03-2025"))
		Expect(summary["party_code"]).To(Equal("TAFEMDU"))
		Expect(summary["quantity"]).To(Equal("10"))
		Expect(summary["status"]).To(Equal("Generated"))
	})
})
