package normalize

import (
	"math"
	"strconv"

	"github.com/gyeh/claimview/internal/model"
)

// BillID returns the bill's identity key as text. Numeric ids are rendered
// without a trailing ".0".
func BillID(b model.BillHeader) string {
	return key(b.BillID)
}

// ItemKey returns the stable key of an item within a bill: the item id when
// present, otherwise its positional index.
func ItemKey(billID string, index int, item model.BillItem) string {
	if id := key(item.ItemID); id != Placeholder {
		return billID + "-" + id
	}
	return billID + "-" + strconv.Itoa(index)
}

// BillPage returns the page a bill's jump affordance targets. ok is false
// when page_number is missing, non-numeric or below 1.
func BillPage(b model.BillHeader) (int, bool) {
	f, ok := finite(b.PageNumber)
	if !ok || f < 1 {
		return 0, false
	}
	return int(math.Floor(f)), true
}

// IsNME reports whether an item is flagged non-medical. Only a literal
// boolean true counts.
func IsNME(item model.BillItem) bool {
	v, ok := item.IsNME.(bool)
	return ok && v
}

// CountNMEItems counts NME-flagged items across all bills.
func CountNMEItems(entries []model.BillEntry) int {
	n := 0
	for _, e := range entries {
		for _, it := range e.Items {
			if IsNME(it) {
				n++
			}
		}
	}
	return n
}

// Stats returns the bill/NME banner counts for a view model.
func Stats(vm *model.ClaimViewModel) model.QuickStats {
	if vm == nil {
		return model.QuickStats{}
	}
	return model.QuickStats{
		BillCount:    len(vm.Bills),
		NMEItemCount: CountNMEItems(vm.Bills),
	}
}

// BillViews builds display rows for every bill, in input order.
func BillViews(entries []model.BillEntry) []model.BillView {
	out := make([]model.BillView, 0, len(entries))
	for _, e := range entries {
		id := BillID(e.Bill)
		v := model.BillView{
			BillID:        id,
			InvoiceNumber: Text(e.Bill.InvoiceNumber, Placeholder),
			BillDate:      FormatDate(Text(e.Bill.BillDate, "")),
			NetAmount:     FormatCurrency(Number(e.Bill.NetAmount, 0)),
			Facility:      Placeholder,
			Items:         make([]model.BillItemView, 0, len(e.Items)),
		}
		if e.Bill.FacilityDetails != nil {
			v.Facility = Text(e.Bill.FacilityDetails.Name, Placeholder)
		}
		if p, ok := BillPage(e.Bill); ok {
			v.Page = &p
		}
		for i, it := range e.Items {
			v.Items = append(v.Items, model.BillItemView{
				Key:             ItemKey(id, i, it),
				Name:            Text(it.ItemName, Placeholder),
				Category:        Text(it.Category, Placeholder),
				Amount:          FormatCurrency(Number(it.FinalAmount, 0)),
				IsNME:           IsNME(it),
				DeductionReason: Text(it.DeductionReason, Placeholder),
			})
		}
		out = append(out, v)
	}
	return out
}

// SegmentViews attaches human labels to expanded segments.
func SegmentViews(segs []model.SegmentPages) []model.SegmentView {
	out := make([]model.SegmentView, 0, len(segs))
	for _, s := range segs {
		out = append(out, model.SegmentView{
			SegmentType: s.SegmentType,
			Label:       SegmentLabel(s.SegmentType),
			Pages:       s.Pages,
		})
	}
	return out
}

// DistinctPages counts the pages referenced by any segment.
func DistinctPages(segs []model.SegmentPages) int {
	seen := make(map[int]struct{})
	for _, s := range segs {
		for _, p := range s.Pages {
			seen[p] = struct{}{}
		}
	}
	return len(seen)
}

func key(v any) string {
	if f, ok := finite(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return Text(v, Placeholder)
}
