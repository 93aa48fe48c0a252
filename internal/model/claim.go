package model

// ClaimDocument mirrors the claim-review JSON produced by the upstream
// extraction pipeline. Any node may be missing. Scalar leaves are decoded
// untyped (any) because upstream routinely sends the wrong JSON kind; they
// are only read through the coercion helpers in package normalize.
type ClaimDocument struct {
	SessionID        any            `json:"session_id,omitempty"`
	ClaimID          any            `json:"claim_id,omitempty"`
	Status           any            `json:"status,omitempty"`
	ClaimType        any            `json:"claim_type,omitempty"`
	CreatedAt        any            `json:"created_at,omitempty"`
	EditedData       EditedData     `json:"edited_data"`
	AuditAnalysis    *AuditAnalysis `json:"audit_analysis,omitempty"`
	Segments         *SegmentsNode  `json:"segments,omitempty"`
	ReviewNotes      any            `json:"review_notes,omitempty"`
	ValidationScores map[string]any `json:"validation_scores,omitempty"`
}

// EditedData holds the reviewer-editable part of the document.
type EditedData struct {
	NMEAnalysis    NMEAnalysis     `json:"nme_analysis"`
	PatientSummary *PatientSummary `json:"patient_summary,omitempty"`
}

// NMEAnalysis carries the bill list. Bills are passed through to the view
// model untouched.
type NMEAnalysis struct {
	Bills []BillEntry `json:"bills"`
}

// BillEntry is one invoice within a claim together with its line items.
type BillEntry struct {
	Bill  BillHeader `json:"bill"`
	Items []BillItem `json:"items"`
}

// BillHeader holds invoice-level fields. BillID is the stable key.
type BillHeader struct {
	BillID          any              `json:"bill_id"`
	BillType        any              `json:"bill_type,omitempty"`
	BillDate        any              `json:"bill_date,omitempty"`
	InvoiceNumber   any              `json:"invoice_number,omitempty"`
	NetAmount       any              `json:"net_amount,omitempty"`
	TotalDiscount   any              `json:"total_discount,omitempty"`
	FacilityDetails *FacilityDetails `json:"facility_details,omitempty"`
	PageNumber      any              `json:"page_number,omitempty"`
}

// FacilityDetails identifies the billing facility.
type FacilityDetails struct {
	Name any `json:"name,omitempty"`
}

// BillItem is a single line item. ItemID is optional; positional index is
// the fallback identity.
type BillItem struct {
	SerialNo        any `json:"s.no.,omitempty"`
	ItemID          any `json:"item_id,omitempty"`
	ItemName        any `json:"item_name,omitempty"`
	Category        any `json:"category,omitempty"`
	FinalAmount     any `json:"final_amount,omitempty"`
	IsNME           any `json:"is_nme,omitempty"`
	NMEItemName     any `json:"nme_item_name,omitempty"`
	NMEBillAmount   any `json:"nme_bill_amount,omitempty"`
	DeductionReason any `json:"deduction_reason,omitempty"`
}

// PatientSummary groups patient and hospitalization subtrees. The two
// free-form detail maps keep whatever keys upstream sends.
type PatientSummary struct {
	PatientDetails         *PatientDetails `json:"patient_details,omitempty"`
	HospitalizationDetails map[string]any  `json:"hospitalization_details,omitempty"`
	ClinicalDetails        map[string]any  `json:"clinical_details,omitempty"`
}

// PatientDetails holds patient identity fields.
type PatientDetails struct {
	PatientName     any `json:"patient_name,omitempty"`
	PatientMobile   any `json:"patient_mobile,omitempty"`
	PatientEmail    any `json:"patient_email,omitempty"`
	PatientDOB      any `json:"patient_dob,omitempty"`
	PatientPolicyNo any `json:"patient_policy_no,omitempty"`
}

// AuditAnalysis carries the upstream reconciliation figures.
type AuditAnalysis struct {
	OriginalClaimedAmount   any                `json:"original_claimed_amount,omitempty"`
	OriginalTotalOfBills    any                `json:"original_total_of_bills,omitempty"`
	UpdatedClaimedAmount    any                `json:"updated_claimed_amount,omitempty"`
	TrueTotalOfBills        any                `json:"true_total_of_bills,omitempty"`
	DiscrepancyAmount       any                `json:"discrepancy_amount,omitempty"`
	Status                  any                `json:"status,omitempty"`
	DiscrepancyReason       any                `json:"discrepancy_reason,omitempty"`
	MedicalLegibilityIssues any                `json:"medical_legibility_issues,omitempty"`
	PolicyViolationsCount   any                `json:"policy_violations_count,omitempty"`
	PolicyRemarks           any                `json:"policy_remarks,omitempty"`
	MedicalLegibility       *MedicalLegibility `json:"medical_legibility,omitempty"`
	PolicyViolations        []PolicyViolation  `json:"policy_violations,omitempty"`
}

// MedicalLegibility is the legibility sub-report.
type MedicalLegibility struct {
	PrescriptionBillMatch        any              `json:"prescription_bill_match,omitempty"`
	DiagnosisTreatmentConsistent any              `json:"diagnosis_treatment_consistent,omitempty"`
	FlaggedItems                 []LegibilityFlag `json:"flagged_items,omitempty"`
	Summary                      any              `json:"summary,omitempty"`
}

// LegibilityFlag is one flagged item in the legibility sub-report.
type LegibilityFlag struct {
	ItemName       any `json:"item_name,omitempty"`
	BillID         any `json:"bill_id,omitempty"`
	FlagReason     any `json:"flag_reason,omitempty"`
	Recommendation any `json:"recommendation,omitempty"`
}

// PolicyViolation is one policy rule hit.
type PolicyViolation struct {
	RuleName         any `json:"rule_name,omitempty"`
	ItemName         any `json:"item_name,omitempty"`
	BillID           any `json:"bill_id,omitempty"`
	ItemSerialNo     any `json:"item_s_no,omitempty"`
	ViolationDetails any `json:"violation_details,omitempty"`
	AmountImpacted   any `json:"amount_impacted,omitempty"`
	Recommendation   any `json:"recommendation,omitempty"`
}

// SegmentsNode wraps the aggregated segment map.
type SegmentsNode struct {
	AggregatedSegments map[string]Segment `json:"aggregated_segments,omitempty"`
}

// Segment lists the inclusive page ranges of one detected document type.
type Segment struct {
	PageRanges []PageRange `json:"page_ranges"`
}

// PageRange is an inclusive [Start, End] span of 1-based page numbers.
type PageRange struct {
	Start any `json:"start"`
	End   any `json:"end"`
}
