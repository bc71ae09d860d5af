package ledger

import (
	"strings"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// naturalKey identifies a transaction for cross-import dedup. Note and
// currency are deliberately not part of the key, matching how repeated
// statement exports overlap.
func naturalKey(t model.Transaction) string {
	return strings.Join([]string{t.Date, t.Amount.String(), t.Merchant, t.Account}, "|")
}

// Merge appends to existing every incoming transaction whose natural key
// (date, amount, merchant, account) is not already present. The key set
// grows as incoming is consumed, so duplicates within incoming collapse to
// their first occurrence. Order is preserved: existing first, then accepted
// incoming in original order.
func Merge(existing, incoming []model.Transaction) []model.Transaction {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]model.Transaction, 0, len(existing)+len(incoming))
	for _, t := range existing {
		seen[naturalKey(t)] = true
		merged = append(merged, t)
	}
	for _, t := range incoming {
		k := naturalKey(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		merged = append(merged, t)
	}
	return merged
}
