package tokenclaims

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a stable hex digest of raw, used wherever a token has to
// serve as a lookup key or appear in logs without being stored verbatim.
func Fingerprint(raw string) string {
	sum := blake3.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
