package normalize

import (
	"math"
	"slices"

	"github.com/gyeh/claimview/internal/model"
)

// MaxPage bounds range enumeration so a corrupt end value cannot expand
// into an unbounded page list.
const MaxPage = 10000

// ExpandRanges turns inclusive page ranges into an ascending, duplicate-free
// page list. A non-numeric or sub-1 start becomes 1; a non-numeric end or an
// end before start becomes start. Range order does not affect the result.
func ExpandRanges(ranges []model.PageRange) []int {
	pages := []int{}
	for _, r := range ranges {
		start := math.Max(1, math.Ceil(Number(r.Start, 1)))
		end := math.Max(start, math.Floor(Number(r.End, start)))
		if start > MaxPage {
			continue
		}
		end = math.Min(end, MaxPage)
		for p := int(start); p <= int(end); p++ {
			pages = append(pages, p)
		}
	}
	slices.Sort(pages)
	return slices.Compact(pages)
}
