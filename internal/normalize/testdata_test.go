package normalize

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/gyeh/claimview/internal/model"
)

const baseClaimJSON = `{
  "session_id": "session-1",
  "claim_id": "claim-123",
  "status": "OPEN",
  "claim_type": "OPD",
  "created_at": "2026-02-16T15:38:50.985922+05:30",
  "edited_data": {
    "nme_analysis": {
      "bills": [
        {"bill": {"bill_id": "b1", "bill_type": "itemized_bill", "bill_date": "2025-02-01",
                  "invoice_number": "INV-001", "net_amount": 100, "page_number": 1}, "items": []},
        {"bill": {"bill_id": "b2", "bill_type": "itemized_bill", "bill_date": "2025-02-02",
                  "invoice_number": "INV-002", "net_amount": 50, "page_number": 2}, "items": []}
      ]
    },
    "patient_summary": {
      "hospitalization_details": {"claimed_amount": 80},
      "patient_details": {
        "patient_name": "John Doe",
        "patient_dob": "1990-01-01",
        "patient_policy_no": "POL-1",
        "patient_mobile": "123",
        "patient_email": "john@example.com"
      }
    }
  },
  "audit_analysis": {
    "true_total_of_bills": 150,
    "updated_claimed_amount": 80,
    "discrepancy_amount": 70,
    "discrepancy_reason": "Mismatch",
    "medical_legibility_issues": 1,
    "policy_violations_count": 0
  },
  "segments": {
    "aggregated_segments": {
      "itemized_bill": {"page_ranges": [{"start": 1, "end": 1}, {"start": 3, "end": 4}]}
    }
  }
}`

// decodeClaim parses a JSON fixture the same way the document source does.
func decodeClaim(t *testing.T, raw string) *model.ClaimDocument {
	t.Helper()
	var doc model.ClaimDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &doc
}
