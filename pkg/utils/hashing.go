package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a stable hex key for the given parts, used to index cached
// completions by provider, model and prompt.
func HashKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
