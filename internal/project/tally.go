// Package project maps a reviewed DR record into its output views: the
// spreadsheet rows, the Tally voucher XML, and the invoice summary.
package project

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/drtools/dr-invoice-tracker/constants"
	"github.com/drtools/dr-invoice-tracker/internal/extract"
	"github.com/drtools/dr-invoice-tracker/internal/session"
)

// Tag names below are the accounting system's import format; they must
// stay byte-exact.

type Envelope struct {
	XMLName  xml.Name       `xml:"ENVELOPE"`
	XmlnsUDF string         `xml:"xmlns:UDF,attr"`
	Header   EnvelopeHeader `xml:"HEADER"`
	Body     EnvelopeBody   `xml:"BODY"`
}

type EnvelopeHeader struct {
	TallyRequest  string `xml:"TALLYREQUEST"`
	TallyResponse string `xml:"TALLYRESPONSE"`
}

type EnvelopeBody struct {
	List TallyList `xml:"TALLYLIST"`
}

type TallyList struct {
	Name    string  `xml:"NAME,attr"`
	Company Company `xml:"TALLYCOMPANY"`
	Voucher Voucher `xml:"VOUCHER"`
}

type Company struct {
	Name string `xml:"NAME"`
}

type Voucher struct {
	VoucherNumber   string `xml:"VOUCHERNUMBER"`
	ReferenceNumber string `xml:"REFERENCENUMBER"`
	VoucherType     string `xml:"VOUCHERTYPE"`
	VoucherTypeName string `xml:"VOUCHERTYPENAME"`
	Date            string `xml:"DATE"`
	OrderReference  string `xml:"ORDERREFERENCE"`

	Party      PartyDetails      `xml:"PARTYDETAILS"`
	Items      LineItemsList     `xml:"LINEITEMSLIST"`
	Taxes      TaxDetails        `xml:"TAXDETAILS"`
	Totals     Totals            `xml:"TOTALS"`
	Additional AdditionalDetails `xml:"ADDITIONALDETAILS"`
	Narration  Narration         `xml:"NARRATION"`
}

type PartyDetails struct {
	PartyName        string `xml:"PARTYNAME"`
	BuyerOrderNumber string `xml:"BUYERORDERNUMBER"`
}

type LineItemsList struct {
	Items []VoucherLineItem `xml:"LINEITEM"`
}

type VoucherLineItem struct {
	ItemName    string `xml:"ITEMNAME"`
	ItemNo      string `xml:"ITEMNO"`
	HSNCode     string `xml:"HSNCODE"`
	Quantity    string `xml:"QUANTITY"`
	Unit        string `xml:"UNIT"`
	Rate        string `xml:"RATE"`
	Amount      string `xml:"AMOUNT"`
	TaxRate     string `xml:"TAXRATE"`
	TaxType     string `xml:"TAXTYPE"`
	TaxAmount   string `xml:"TAXAMOUNT"`
	GrossAmount string `xml:"GROSSAMOUNT"`
}

type TaxDetails struct {
	Taxes []TaxLine `xml:"TAX"`
}

type TaxLine struct {
	TaxName   string `xml:"TAXNAME"`
	TaxRate   string `xml:"TAXRATE"`
	TaxAmount string `xml:"TAXAMOUNT"`
}

type Totals struct {
	TaxableAmount string `xml:"TAXABLEAMOUNT"`
	TaxAmount     string `xml:"TAXAMOUNT"`
	RoundOff      string `xml:"ROUNDOFF"`
	TotalAmount   string `xml:"TOTALAMOUNT"`
}

type AdditionalDetails struct {
	VehicleNumber string `xml:"VEHICLENUMBER"`
	CrateDetails  string `xml:"CRATEDETAILS"`
	NoOfPieces    string `xml:"NOOFPIECES"`
	NoOfPackages  string `xml:"NOOFPACKAGES"`
	TotalKgs      string `xml:"TOTALKGS"`
}

type Narration struct {
	Text string `xml:"TEXT"`
}

// Projector emits the output views for one reviewed record. The item
// master and branch policy are fixed at construction; the projector
// itself is stateless across records.
type Projector struct {
	master      ItemMaster
	companyName string
	log         *slog.Logger
}

func NewProjector(master ItemMaster, companyName string, log *slog.Logger) *Projector {
	if log == nil {
		log = slog.Default()
	}
	if master == nil {
		master = SeedItemMaster()
	}
	return &Projector{master: master, companyName: companyName, log: log}
}

// DetermineTaxType selects the GST split for a branch. The "Madurai"
// match is a case-sensitive substring.
func DetermineTaxType(branch string) (constants.TaxType, string) {
	if strings.Contains(branch, "Madurai") {
		return constants.TaxCGSTSGST, "TN"
	}
	return constants.TaxIGST, "KA"
}

// TallyXML builds the voucher envelope for a reviewed record. One
// LINEITEM is emitted per retained line item; a record with no items
// falls back to a single line built from the prompt's part details.
// Intermediate amounts stay unrounded; values are rounded to two
// decimals at output only.
func (p *Projector) TallyXML(record extract.DrRecord, prompt session.PromptData) *Envelope {
	taxType, _ := DetermineTaxType(record.Header.Branch)

	items := record.Items
	if len(items) == 0 {
		items = []extract.LineItem{{
			OrderNo:  prompt.PartDetails.OrderNo,
			PartNo:   prompt.PartDetails.PartNo,
			PartName: prompt.PartDetails.PartName,
			BoxType:  prompt.PartDetails.BoxType,
			Qty:      prompt.Quantity,
			UnitSize: prompt.PartDetails.UnitSize,
		}}
	}

	var lineItems []VoucherLineItem
	var taxableTotal, gstTotal float64
	var gstRate float64
	for _, it := range items {
		entry := p.master.Lookup(it.PartNo, it.PartName)

		qty := parseQuantity(it.Qty, prompt.Quantity)
		taxable := qty * entry.UnitRate
		gstAmount := taxable * entry.GSTRate / 100

		taxableTotal += taxable
		gstTotal += gstAmount
		gstRate = entry.GSTRate

		lineItems = append(lineItems, VoucherLineItem{
			ItemName:    entry.Name,
			ItemNo:      it.PartNo,
			HSNCode:     entry.HSNCode,
			Quantity:    strconv.Itoa(int(qty)),
			Unit:        "NOS",
			Rate:        formatRate(entry.UnitRate),
			Amount:      money(taxable),
			TaxRate:     formatRate(entry.GSTRate),
			TaxType:     string(taxType),
			TaxAmount:   money(gstAmount),
			GrossAmount: money(taxable + gstAmount),
		})
	}

	var taxLines []TaxLine
	if taxType == constants.TaxCGSTSGST {
		half := gstTotal / 2
		taxLines = []TaxLine{
			{TaxName: "CGST", TaxRate: formatRate(gstRate / 2), TaxAmount: money(half)},
			{TaxName: "SGST", TaxRate: formatRate(gstRate / 2), TaxAmount: money(half)},
		}
	} else {
		taxLines = []TaxLine{
			{TaxName: "IGST", TaxRate: formatRate(gstRate), TaxAmount: money(gstTotal)},
		}
	}

	drNo := record.Header.DRNo
	firstName := items[0].PartName
	orderRef := items[0].OrderNo

	return &Envelope{
		XmlnsUDF: "TallyUDF",
		Header: EnvelopeHeader{
			TallyRequest:  "Export",
			TallyResponse: "MasterList",
		},
		Body: EnvelopeBody{
			List: TallyList{
				Name:    "Voucher",
				Company: Company{Name: p.companyName},
				Voucher: Voucher{
					VoucherNumber:   fmt.Sprintf("INV_%s", drNo),
					ReferenceNumber: fmt.Sprintf("DR_%s", drNo),
					VoucherType:     "Sales",
					VoucherTypeName: "Sales",
					Date:            prompt.TodayDate,
					OrderReference:  orderRef,
					Party: PartyDetails{
						PartyName:        prompt.BillDetails.PartyName,
						BuyerOrderNumber: record.Header.BuyerOrderNo,
					},
					Items: LineItemsList{Items: lineItems},
					Taxes: TaxDetails{Taxes: taxLines},
					Totals: Totals{
						TaxableAmount: money(taxableTotal),
						TaxAmount:     money(gstTotal),
						RoundOff:      "0.00",
						TotalAmount:   money(taxableTotal + gstTotal),
					},
					Additional: AdditionalDetails{
						VehicleNumber: prompt.VehicleNumber,
						CrateDetails:  fmt.Sprintf("DR_%s", drNo),
						NoOfPieces:    prompt.Kanban.NoOfPieces,
						NoOfPackages:  prompt.Kanban.NoOfPackages,
						TotalKgs:      orZero(prompt.Kanban.TotalKgs),
					},
					Narration: Narration{
						Text: fmt.Sprintf("DR %s - %s", drNo, firstName),
					},
				},
			},
		},
	}
}

// RenderXML serializes the envelope pretty-printed with every blank line
// removed, matching the downstream importer's expectations.
func RenderXML(env *Envelope) (string, error) {
	out, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal voucher: %w", err)
	}
	s := xml.Header + string(out)
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, ln := range lines {
		if strings.TrimSpace(ln) != "" {
			kept = append(kept, ln)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// WriteXML persists the rendered envelope as INV_<drno>.xml under dir.
func (p *Projector) WriteXML(env *Envelope, dir, drNo string) (string, error) {
	s, err := RenderXML(env)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("INV_%s.xml", drNo))
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return "", fmt.Errorf("write voucher xml: %w", err)
	}
	p.log.Info("project.xml.ok", "path", path, "bytes", len(s))
	return path, nil
}

// parseQuantity parses an item quantity, preferring the item's own value
// over the prompt's, defaulting to 1.
func parseQuantity(itemQty, promptQty string) float64 {
	for _, s := range []string{itemQty, promptQty} {
		if s == "" {
			continue
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 1
}

// money rounds to two decimals at output time.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatRate prints a rate without trailing zeros (5, 2.5, 2003.3).
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
