package normalize

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DashboardTitle is the page title used when no claim id is known.
const DashboardTitle = "Medical Claim Review Dashboard"

// FormatCurrency renders an amount as US dollars with two decimals and
// thousands grouping. NaN and infinities render as zero.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	cents := math.Round(v * 100)
	if cents == 0 {
		return "$0.00"
	}
	// Past 2^53 cents the value has no fractional part left to round.
	if !math.IsInf(cents, 0) {
		v = cents / 100
	}
	p := message.NewPrinter(language.AmericanEnglish)
	if v < 0 {
		return "-$" + p.Sprintf("%.2f", -v)
	}
	return "$" + p.Sprintf("%.2f", v)
}

// FormatDate renders a date string as "Jan 02, 2006". Empty input renders
// the placeholder; unparseable input is returned verbatim.
func FormatDate(s string) string {
	if s == "" {
		return Placeholder
	}
	t := ParseDate(s)
	if t == nil {
		return s
	}
	return t.Format("Jan 02, 2006")
}

// SegmentLabel converts a segment type key such as "itemized_bill" into
// "Itemized Bill". Empty parts are dropped; the rest of each word keeps its case.
func SegmentLabel(segmentType string) string {
	parts := strings.Split(segmentType, "_")
	caser := cases.Title(language.English, cases.NoLower)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, caser.String(p))
	}
	return strings.Join(words, " ")
}

// PageTitle returns the document title for a claim view.
func PageTitle(claimID string) string {
	if claimID == "" || claimID == Placeholder {
		return DashboardTitle
	}
	return "Claim " + claimID + " — " + DashboardTitle
}
