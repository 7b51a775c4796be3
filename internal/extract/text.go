package extract

import (
	"regexp"
	"strings"
)

var (
	reTableStart = regexp.MustCompile(`(?i)Order\s*No|Part\s*No`)
	reDotRun     = regexp.MustCompile(`^\.+$`)
	reOrderNo    = regexp.MustCompile(`\b(\d{10})\b`)
	rePartNo     = regexp.MustCompile(`\b([A-Z0-9]{4,20}M\d{1,3})\b`)
	reBoxType    = regexp.MustCompile(`(?i)(PP BOX|CHEP BOX|BOX|BIN|[A-Z]+\s+BOX)`)
	reNumber     = regexp.MustCompile(`\b(\d+)\b`)
	// Last-resort combined pattern; unit size and kanban are never
	// recoverable from it.
	reGeneric = regexp.MustCompile(`(?i)(\d{10})\s+([A-Z0-9\-]{5,20})\s+([A-Z0-9.\- /&()]+?)\s+(PP BOX|CHEP BOX|BOX|BIN)\s+(\d+)`)
)

// textSkipWords disqualify a free-text line from being a line item.
var textSkipWords = []string{
	"note:", "delivery", "request", "bin", "unit",
	"supplier", "shipping", "departure",
}

// ParseLabeledLines is the free-text strategy: scan line-delimited text
// starting after the first line that mentions "Order No" or "Part No".
// A line qualifies only when it carries both a 10-digit order run and a
// part-number token.
//
// The numeric-position heuristic (3rd number = qty, second-to-last = unit
// size, last = kanban, only when at least 5 numbers are present) is
// layout-dependent and deliberately kept as-is; a different column count
// on the page shifts these positions. Known accuracy risk.
func ParseLabeledLines(text string) []LineItem {
	var items []LineItem

	lines := strings.Split(text, "\n")
	tableStartIdx := -1
	for i, ln := range lines {
		if reTableStart.MatchString(ln) {
			tableStartIdx = i
			break
		}
	}
	if tableStartIdx < 0 {
		return items
	}

	for _, ln := range lines[tableStartIdx+1:] {
		ln = strings.TrimSpace(ln)
		if ln == "" || len(ln) < 5 {
			continue
		}
		if containsAny(strings.ToLower(ln), textSkipWords) {
			continue
		}
		if reDotRun.MatchString(ln) {
			continue
		}

		orderMatch := reOrderNo.FindStringSubmatch(ln)
		partMatch := rePartNo.FindStringSubmatch(ln)
		if orderMatch == nil || partMatch == nil {
			continue
		}
		orderNo := orderMatch[1]
		partNo := partMatch[1]

		partName := ""
		rePartName := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(partNo) +
			`\s+([A-Z0-9.\s\-/&()]+?)\s+(PP BOX|CHEP BOX|BOX|BIN|[A-Z]+\s+BOX)`)
		if m := rePartName.FindStringSubmatch(ln); m != nil {
			partName = collapseNewlines(strings.TrimSpace(m[1]))
		}

		boxType := ""
		if m := reBoxType.FindStringSubmatch(ln); m != nil {
			boxType = strings.TrimSpace(m[1])
		}

		numbers := reNumber.FindAllString(ln, -1)
		qty, unitSize, kanban := "", "", ""
		if len(numbers) >= 5 {
			qty = numbers[2]
			unitSize = numbers[len(numbers)-2]
			kanban = numbers[len(numbers)-1]
		}

		items = append(items, LineItem{
			OrderNo:  orderNo,
			PartNo:   partNo,
			PartName: partName,
			BoxType:  boxType,
			Qty:      qty,
			UnitSize: unitSize,
			Kanban:   kanban,
		})
	}
	return items
}

// ParseGenericPattern is the last-resort strategy: one combined pattern
// over the whole text. Only used when the labeled-line strategy found
// nothing.
func ParseGenericPattern(text string) []LineItem {
	var items []LineItem
	for _, m := range reGeneric.FindAllStringSubmatch(text, -1) {
		items = append(items, LineItem{
			OrderNo:  strings.TrimSpace(m[1]),
			PartNo:   strings.TrimSpace(m[2]),
			PartName: collapseNewlines(strings.TrimSpace(m[3])),
			BoxType:  strings.TrimSpace(m[4]),
			Qty:      strings.TrimSpace(m[5]),
		})
	}
	return items
}

// ParseFromText turns plain page text into a record: header fields from
// the whole text, line items from the labeled-line strategy with the
// generic pattern as fallback. First non-empty strategy output wins.
func ParseFromText(text string) DrRecord {
	text = strings.ReplaceAll(text, "\r", "\n")

	header := ExtractHeaderFields(text)

	items := ParseLabeledLines(text)
	if len(items) == 0 {
		items = ParseGenericPattern(text)
	}

	if header.BuyerOrderNo == "" && len(items) > 0 {
		header.BuyerOrderNo = items[0].OrderNo
	}
	return DrRecord{Header: header, Items: items}
}
