package extract

import "strings"

// HeaderRowNotFound is the sentinel returned when no line-item header row
// exists in a table.
const HeaderRowNotFound = -1

// headerScanRows is how many leading table rows are checked for the
// scalar header fields before line-item data starts.
const headerScanRows = 7

// tableSkipMarkers disqualify a joined row from being a line item.
var tableSkipMarkers = []string{"note:", "delivery", "......"}

// joinCells concatenates the non-empty cells of a row with single spaces.
func joinCells(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// LocateHeaderRow scans from the top for the first row whose concatenated,
// upper-cased cell text contains both "ORDER NO" and "PART NO". It returns
// the row index, or HeaderRowNotFound.
func LocateHeaderRow(table [][]string) int {
	for i, row := range table {
		text := strings.ToUpper(joinCells(row))
		if strings.Contains(text, "ORDER NO") && strings.Contains(text, "PART NO") {
			return i
		}
	}
	return HeaderRowNotFound
}

// ParseTableRows is the table strategy: read fixed column positions from
// every row after the located header row. An item is emitted only when
// both order number and part number are non-empty; short rows are skipped,
// not fatal.
func ParseTableRows(table [][]string, headerRowIdx int) []LineItem {
	var items []LineItem
	if headerRowIdx < 0 || headerRowIdx+1 >= len(table) {
		return items
	}
	for _, row := range table[headerRowIdx+1:] {
		if len(row) == 0 {
			continue
		}
		rowStr := strings.TrimSpace(joinCells(row))
		if rowStr == "" || len(rowStr) < 10 {
			continue
		}
		if containsAny(strings.ToLower(rowStr), tableSkipMarkers) {
			continue
		}
		// Columns 0..4 are fixed positions; a shorter row would have been
		// an index error upstream and is skipped the same way.
		if len(row) < 5 {
			continue
		}
		orderNo := strings.TrimSpace(row[0])
		partNo := strings.TrimSpace(row[1])
		partName := collapseNewlines(strings.TrimSpace(row[2]))
		boxType := strings.TrimSpace(row[3])
		qty := strings.TrimSpace(row[4])
		unitSize := ""
		if len(row) > 9 {
			unitSize = strings.TrimSpace(row[9])
		}
		if orderNo == "" || partNo == "" {
			continue
		}
		items = append(items, LineItem{
			OrderNo:  orderNo,
			PartNo:   partNo,
			PartName: partName,
			BoxType:  boxType,
			Qty:      qty,
			UnitSize: unitSize,
			Kanban:   qty, // the documents overload qty as the kanban count
		})
	}
	return items
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func collapseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", "")
}
