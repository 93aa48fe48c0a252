package normalize

import "github.com/gyeh/claimview/internal/model"

// Amount source names recorded in model.AmountSources.
const (
	SourceAuditUpdatedClaimed = "audit.updated_claimed_amount"
	SourceHospitalization     = "patient_summary.hospitalization_details.claimed_amount"
	SourceAuditTrueTotal      = "audit.true_total_of_bills"
	SourceBillNetSum          = "bills.net_amount_sum"
	SourceAuditDiscrepancy    = "audit.discrepancy_amount"
	SourceComputed            = "actual_bills_total-claimed_amount"
	SourceDefault             = "default"
)

// resolution carries the already-resolved amounts so later tiers can build
// on earlier ones.
type resolution struct {
	doc              *model.ClaimDocument
	claimedAmount    float64
	actualBillsTotal float64
}

// tier is one fallback step: extract reports ok=false to fall through.
type tier struct {
	source  string
	extract func(*resolution) (float64, bool)
}

// Fallback chains, highest priority first. A tier wins when its value is a
// finite number; a literal 0 is authoritative.
var (
	claimedAmountTiers = []tier{
		{SourceAuditUpdatedClaimed, func(r *resolution) (float64, bool) {
			return finite(auditField(r.doc, func(a *model.AuditAnalysis) any { return a.UpdatedClaimedAmount }))
		}},
		{SourceHospitalization, func(r *resolution) (float64, bool) {
			return finite(hospitalizationField(r.doc, "claimed_amount"))
		}},
		{SourceDefault, func(*resolution) (float64, bool) { return 0, true }},
	}

	actualBillsTotalTiers = []tier{
		{SourceAuditTrueTotal, func(r *resolution) (float64, bool) {
			return finite(auditField(r.doc, func(a *model.AuditAnalysis) any { return a.TrueTotalOfBills }))
		}},
		{SourceBillNetSum, func(r *resolution) (float64, bool) {
			return SumNetAmounts(bills(r.doc)), true
		}},
	}

	discrepancyAmountTiers = []tier{
		{SourceAuditDiscrepancy, func(r *resolution) (float64, bool) {
			return finite(auditField(r.doc, func(a *model.AuditAnalysis) any { return a.DiscrepancyAmount }))
		}},
		{SourceComputed, func(r *resolution) (float64, bool) {
			return r.actualBillsTotal - r.claimedAmount, true
		}},
	}
)

// resolve evaluates tiers in order and returns the first defined value and
// the name of the tier that produced it.
func resolve(tiers []tier, r *resolution) (float64, string) {
	for _, t := range tiers {
		if v, ok := t.extract(r); ok {
			return v, t.source
		}
	}
	return 0, SourceDefault
}

// SumNetAmounts sums bill net amounts, counting each malformed value as 0.
func SumNetAmounts(entries []model.BillEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += Number(e.Bill.NetAmount, 0)
	}
	return sum
}
