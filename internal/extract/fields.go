package extract

import (
	"regexp"
	"strings"
)

var (
	reDRNo = regexp.MustCompile(`(?i)Delivery\s*Request\s*No\.?\s*[:\-]?\s*(\d{5,12})`)
	// Branch text runs through one of the site suffixes plus any trailing
	// alphanumeric/hyphen/space tail, e.g. "Madurai Operations - Unit 2".
	reBranch = regexp.MustCompile(`(?i)Request\s*[:\-]?\s*([A-Za-z\-\s]+(?:Operations|Plant|Pl)[A-Za-z0-9\s\-]*)`)
)

// scanHeaderFields applies the labeled header patterns to one candidate
// line. The first match for a field wins; later lines never overwrite it.
// A missing label just leaves the field empty.
func scanHeaderFields(h *DrHeader, line string) {
	if h.DRNo == "" {
		if m := reDRNo.FindStringSubmatch(line); m != nil {
			h.DRNo = strings.TrimSpace(m[1])
		}
	}
	if h.Branch == "" {
		if m := reBranch.FindStringSubmatch(line); m != nil {
			h.Branch = strings.TrimSpace(m[1])
		}
	}
}

// ExtractHeaderFields scans a block of raw text (row-joined cell text or
// full-page text) for the scalar header fields.
func ExtractHeaderFields(text string) DrHeader {
	var h DrHeader
	scanHeaderFields(&h, text)
	return h
}
