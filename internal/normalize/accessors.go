package normalize

import "github.com/gyeh/claimview/internal/model"

// Total accessors over the optional document tree. Each returns nil (or an
// empty value) when any node on the path is absent.

func auditField(doc *model.ClaimDocument, get func(*model.AuditAnalysis) any) any {
	if doc == nil || doc.AuditAnalysis == nil {
		return nil
	}
	return get(doc.AuditAnalysis)
}

func legibility(doc *model.ClaimDocument) *model.MedicalLegibility {
	if doc == nil || doc.AuditAnalysis == nil {
		return nil
	}
	return doc.AuditAnalysis.MedicalLegibility
}

func flaggedItems(doc *model.ClaimDocument) []model.LegibilityFlag {
	if l := legibility(doc); l != nil {
		return l.FlaggedItems
	}
	return nil
}

func policyViolations(doc *model.ClaimDocument) []model.PolicyViolation {
	if doc == nil || doc.AuditAnalysis == nil {
		return nil
	}
	return doc.AuditAnalysis.PolicyViolations
}

func patientField(doc *model.ClaimDocument, get func(*model.PatientDetails) any) any {
	if doc == nil || doc.EditedData.PatientSummary == nil || doc.EditedData.PatientSummary.PatientDetails == nil {
		return nil
	}
	return get(doc.EditedData.PatientSummary.PatientDetails)
}

func hospitalizationField(doc *model.ClaimDocument, key string) any {
	if doc == nil || doc.EditedData.PatientSummary == nil {
		return nil
	}
	return doc.EditedData.PatientSummary.HospitalizationDetails[key]
}

func bills(doc *model.ClaimDocument) []model.BillEntry {
	if doc == nil {
		return nil
	}
	return doc.EditedData.NMEAnalysis.Bills
}

func segmentMap(doc *model.ClaimDocument) map[string]model.Segment {
	if doc == nil || doc.Segments == nil {
		return nil
	}
	return doc.Segments.AggregatedSegments
}
