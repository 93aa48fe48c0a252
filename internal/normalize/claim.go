package normalize

import (
	"sort"

	"github.com/gyeh/claimview/internal/model"
)

// Claim derives the canonical view model from a raw claim document. It is
// total: any document shape, including nil, yields a fully populated model.
func Claim(doc *model.ClaimDocument) *model.ClaimViewModel {
	return &model.ClaimViewModel{
		ClaimSummary: claimSummary(doc),
		PatientInfo:  patientInfo(doc),
		Bills:        passthroughBills(doc),
		AuditIssues:  auditIssues(doc),
		Segments:     SegmentPages(doc),
	}
}

func claimSummary(doc *model.ClaimDocument) model.ClaimSummary {
	r := &resolution{doc: doc}

	var sources model.AmountSources
	r.claimedAmount, sources.ClaimedAmount = resolve(claimedAmountTiers, r)
	r.actualBillsTotal, sources.ActualBillsTotal = resolve(actualBillsTotalTiers, r)
	discrepancy, discrepancySource := resolve(discrepancyAmountTiers, r)
	sources.DiscrepancyAmount = discrepancySource

	s := model.ClaimSummary{
		ClaimID:           Placeholder,
		ClaimType:         Placeholder,
		Status:            Placeholder,
		ClaimedAmount:     r.claimedAmount,
		ActualBillsTotal:  r.actualBillsTotal,
		DiscrepancyAmount: discrepancy,
		DiscrepancyReason: Text(auditField(doc, func(a *model.AuditAnalysis) any { return a.DiscrepancyReason }), Placeholder),
		AmountSources:     sources,
	}
	if doc != nil {
		s.ClaimID = Text(doc.ClaimID, Placeholder)
		s.ClaimType = Text(doc.ClaimType, Placeholder)
		s.Status = Text(doc.Status, Placeholder)
	}
	return s
}

func patientInfo(doc *model.ClaimDocument) model.PatientInfo {
	field := func(get func(*model.PatientDetails) any) string {
		return Text(patientField(doc, get), Placeholder)
	}
	return model.PatientInfo{
		Name:         field(func(p *model.PatientDetails) any { return p.PatientName }),
		DOB:          field(func(p *model.PatientDetails) any { return p.PatientDOB }),
		PolicyNumber: field(func(p *model.PatientDetails) any { return p.PatientPolicyNo }),
		Phone:        field(func(p *model.PatientDetails) any { return p.PatientMobile }),
		Email:        field(func(p *model.PatientDetails) any { return p.PatientEmail }),
	}
}

// passthroughBills returns the document's own bill slice so bill and item
// identity survive into the view model. Only a nil list is replaced.
func passthroughBills(doc *model.ClaimDocument) []model.BillEntry {
	if b := bills(doc); b != nil {
		return b
	}
	return []model.BillEntry{}
}

func auditIssues(doc *model.ClaimDocument) model.AuditIssues {
	details := LegibilityDetails(doc)
	violations := PolicyViolations(doc)

	var summary any
	if l := legibility(doc); l != nil {
		summary = l.Summary
	}

	return model.AuditIssues{
		MedicalLegibilityCount: Number(
			auditField(doc, func(a *model.AuditAnalysis) any { return a.MedicalLegibilityIssues }),
			float64(len(details)),
		),
		PolicyViolationCount: Number(
			auditField(doc, func(a *model.AuditAnalysis) any { return a.PolicyViolationsCount }),
			float64(len(violations)),
		),
		LegibilitySummary: Text(summary, Placeholder),
		PolicyRemarks:     Text(auditField(doc, func(a *model.AuditAnalysis) any { return a.PolicyRemarks }), Placeholder),
		LegibilityDetails: details,
		PolicyViolations:  violations,
	}
}

// LegibilityDetails maps flagged legibility items to their view form.
func LegibilityDetails(doc *model.ClaimDocument) []model.LegibilityIssueView {
	items := flaggedItems(doc)
	out := make([]model.LegibilityIssueView, 0, len(items))
	for _, it := range items {
		out = append(out, model.LegibilityIssueView{
			ItemName:       Text(it.ItemName, Placeholder),
			BillID:         Text(it.BillID, Placeholder),
			Reason:         Text(it.FlagReason, Placeholder),
			Recommendation: Text(it.Recommendation, Placeholder),
		})
	}
	return out
}

// PolicyViolations maps policy violations to their view form.
func PolicyViolations(doc *model.ClaimDocument) []model.PolicyViolationView {
	raw := policyViolations(doc)
	out := make([]model.PolicyViolationView, 0, len(raw))
	for _, v := range raw {
		out = append(out, model.PolicyViolationView{
			RuleName:       Text(v.RuleName, Placeholder),
			ItemName:       Text(v.ItemName, Placeholder),
			BillID:         Text(v.BillID, Placeholder),
			Details:        Text(v.ViolationDetails, Placeholder),
			AmountImpacted: Number(v.AmountImpacted, 0),
			Recommendation: Text(v.Recommendation, Placeholder),
		})
	}
	return out
}

// SegmentPages expands every segment's page ranges. Segments are ordered by
// segment type name.
func SegmentPages(doc *model.ClaimDocument) []model.SegmentPages {
	segs := segmentMap(doc)
	names := make([]string, 0, len(segs))
	for name := range segs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.SegmentPages, 0, len(names))
	for _, name := range names {
		out = append(out, model.SegmentPages{
			SegmentType: name,
			Pages:       ExpandRanges(segs[name].PageRanges),
		})
	}
	return out
}
