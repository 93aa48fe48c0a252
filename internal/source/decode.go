package source

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/gyeh/claimview/internal/model"
)

// Decode parses a claim document. Missing fields are not an error; only
// invalid JSON or a structurally mistyped subtree is.
func Decode(data []byte) (*model.ClaimDocument, error) {
	var doc model.ClaimDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode claim document: %w", err)
	}
	return &doc, nil
}
