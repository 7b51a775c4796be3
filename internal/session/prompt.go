// Package session holds the state of one upload-review-generate cycle:
// the extracted record plus the operator-editable prompt. Nothing here
// survives the session.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/drtools/dr-invoice-tracker/internal/extract"
)

// BranchMapping resolves a branch name substring to its party code.
type BranchMapping struct {
	Match string // case-insensitive substring of the extracted branch
	Code  string
	Name  string
}

// DefaultBranchMappings mirror the accounting system's party masters.
var DefaultBranchMappings = []BranchMapping{
	{Match: "Madurai", Code: "TAFEMDU", Name: "TAFE Madurai"},
	{Match: "Doddaballapur", Code: "TAFEDBR", Name: "TAFE Bangalore"},
	{Match: "Bangalore", Code: "TAFEDBR", Name: "TAFE Bangalore"},
}

// Crate packaging template applied to every prompt.
const (
	crateCode     = "14403"
	crateNos      = "1"
	crateLidCode  = "13054"
	crateLidNos   = "1"
	defaultTotals = "20"
)

// PromptData is the operator-editable projection that drives invoice
// generation. It is created from a DrRecord plus defaults, mutated by the
// review step, then frozen before projection.
type PromptData struct {
	DRNo              string        `json:"dr_no"`
	TodayDate         string        `json:"today_date"`
	BuyersOrderNumber string        `json:"buyers_order_number"`
	Quantity          string        `json:"quantity"`
	VehicleNumber     string        `json:"vehicle_number"`
	Kanban            KanbanDetails `json:"kanban"`
	BillDetails       BillDetails   `json:"bill_details"`
	CrateDetails      CrateDetails  `json:"crate_details"`
	PartDetails       PartDetails   `json:"part_details"`
}

type KanbanDetails struct {
	NoOfPieces   string `json:"no_of_pieces"`
	NoOfPackages string `json:"no_of_packages"`
	TotalNos     string `json:"total_nos"`
	TotalKgs     string `json:"total_kgs"`
}

type BillDetails struct {
	PartyName string `json:"party_name"`
}

type CrateDetails struct {
	ForCrate    string `json:"for_crate"`
	Lid         string `json:"lid"`
	DRReference string `json:"dr_reference"`
}

type PartDetails struct {
	PartNo   string `json:"part_no"`
	PartName string `json:"part_name"`
	OrderNo  string `json:"order_no"`
	BoxType  string `json:"box_type"`
	UnitSize string `json:"unit_size"`
}

// PromptDefaults are the non-extracted values seeded into a fresh prompt.
type PromptDefaults struct {
	VehicleNo string
	PartyCode string
	Mappings  []BranchMapping
}

// ResolvePartyCode picks the party code whose branch substring matches,
// falling back to the configured default.
func (d PromptDefaults) ResolvePartyCode(branch string) string {
	lower := strings.ToLower(branch)
	for _, m := range d.Mappings {
		if strings.Contains(lower, strings.ToLower(m.Match)) {
			return m.Code
		}
	}
	return d.PartyCode
}

// BuildPrompt creates the operator-editable prompt from an extracted
// record. The first line item, when present, seeds the part details.
func BuildPrompt(record extract.DrRecord, defaults PromptDefaults, now time.Time) PromptData {
	var first extract.LineItem
	if len(record.Items) > 0 {
		first = record.Items[0]
	}

	qty := first.Qty
	drNo := record.Header.DRNo

	return PromptData{
		DRNo:              drNo,
		TodayDate:         now.Format("02-01-2006"),
		BuyersOrderNumber: record.Header.BuyerOrderNo,
		Quantity:          qty,
		VehicleNumber:     defaults.VehicleNo,
		Kanban: KanbanDetails{
			NoOfPieces:   qty,
			NoOfPackages: "1",
			TotalNos:     defaultTotals,
			TotalKgs:     "",
		},
		BillDetails: BillDetails{
			PartyName: defaults.ResolvePartyCode(record.Header.Branch),
		},
		CrateDetails: CrateDetails{
			ForCrate:    fmt.Sprintf("%s - %s NOS", crateCode, crateNos),
			Lid:         fmt.Sprintf("%s - %s NOS", crateLidCode, crateLidNos),
			DRReference: fmt.Sprintf("DR %s", drNo),
		},
		PartDetails: PartDetails{
			PartNo:   first.PartNo,
			PartName: first.PartName,
			OrderNo:  first.OrderNo,
			BoxType:  first.BoxType,
			UnitSize: first.UnitSize,
		},
	}
}
