package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// TransactionID derives a deterministic transaction id from the source tag,
// ISO date, per-file sequence and description. The same input always yields
// the same id; the sequence keeps ids unique within one parse run. Ids are
// not globally unique across batches and carry no time-based salt.
func TransactionID(sourceTag, date string, sequence int, description string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", sourceTag, date, sequence, description)))
	return hex.EncodeToString(sum[:])[:12]
}
