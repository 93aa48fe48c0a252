package normalize

import (
	"crypto/sha256"
	"encoding/hex"
)

// DocumentHash returns the hex-encoded SHA-256 of a raw claim document.
func DocumentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
