package model

// ClaimViewModel is the canonical, always-populated projection of a
// ClaimDocument. It is built once per document and never mutated.
type ClaimViewModel struct {
	ClaimSummary ClaimSummary   `json:"claimSummary"`
	PatientInfo  PatientInfo    `json:"patientInfo"`
	Bills        []BillEntry    `json:"bills"`
	AuditIssues  AuditIssues    `json:"auditIssues"`
	Segments     []SegmentPages `json:"segments"`
}

// ClaimSummary holds the headline claim figures.
type ClaimSummary struct {
	ClaimID           string        `json:"claimId"`
	ClaimType         string        `json:"claimType"`
	Status            string        `json:"status"`
	ClaimedAmount     float64       `json:"claimedAmount"`
	ActualBillsTotal  float64       `json:"actualBillsTotal"`
	DiscrepancyAmount float64       `json:"discrepancyAmount"`
	DiscrepancyReason string        `json:"discrepancyReason"`
	AmountSources     AmountSources `json:"amountSources"`
}

// AmountSources records which fallback tier produced each headline amount.
type AmountSources struct {
	ClaimedAmount     string `json:"claimedAmount"`
	ActualBillsTotal  string `json:"actualBillsTotal"`
	DiscrepancyAmount string `json:"discrepancyAmount"`
}

// PatientInfo holds patient identity fields as display strings.
type PatientInfo struct {
	Name         string `json:"name"`
	DOB          string `json:"dob"`
	PolicyNumber string `json:"policyNumber"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// AuditIssues summarizes legibility flags and policy violations.
type AuditIssues struct {
	MedicalLegibilityCount float64               `json:"medicalLegibilityCount"`
	PolicyViolationCount   float64               `json:"policyViolationCount"`
	LegibilitySummary      string                `json:"legibilitySummary"`
	PolicyRemarks          string                `json:"policyRemarks"`
	LegibilityDetails      []LegibilityIssueView `json:"legibilityDetails"`
	PolicyViolations       []PolicyViolationView `json:"policyViolations"`
}

// LegibilityIssueView is the display form of a LegibilityFlag.
type LegibilityIssueView struct {
	ItemName       string `json:"itemName"`
	BillID         string `json:"billId"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}

// PolicyViolationView is the display form of a PolicyViolation.
type PolicyViolationView struct {
	RuleName       string  `json:"ruleName"`
	ItemName       string  `json:"itemName"`
	BillID         string  `json:"billId"`
	Details        string  `json:"details"`
	AmountImpacted float64 `json:"amountImpacted"`
	Recommendation string  `json:"recommendation"`
}

// SegmentPages is one segment type with its expanded, ascending pages.
type SegmentPages struct {
	SegmentType string `json:"segmentType"`
	Pages       []int  `json:"pages"`
}

// QuickStats is the bill/NME count banner.
type QuickStats struct {
	BillCount    int `json:"billCount"`
	NMEItemCount int `json:"nmeItemCount"`
}

// SegmentView is a SegmentPages with its human label.
type SegmentView struct {
	SegmentType string `json:"segmentType"`
	Label       string `json:"label"`
	Pages       []int  `json:"pages"`
}

// BillView is the display form of a BillEntry. Page is nil when the bill
// has no usable page number and therefore no jump affordance.
type BillView struct {
	BillID        string         `json:"billId"`
	InvoiceNumber string         `json:"invoiceNumber"`
	BillDate      string         `json:"billDate"`
	NetAmount     string         `json:"netAmount"`
	Facility      string         `json:"facility"`
	Page          *int           `json:"page"`
	Items         []BillItemView `json:"items"`
}

// BillItemView is the display form of a BillItem. Key is unique within the claim.
type BillItemView struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Amount          string `json:"amount"`
	IsNME           bool   `json:"isNme"`
	DeductionReason string `json:"deductionReason"`
}
