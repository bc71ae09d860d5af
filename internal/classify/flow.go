package classify

import (
	"regexp"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// Transfer and repayment detection is a fixed built-in policy, not user
// rule data. Repayments are internal movements between a user's own
// accounts; counting them as income or expense would double money that
// merely moved.
var (
	transferPattern  = regexp.MustCompile(`(?i)transfer|转账|internal`)
	repaymentPattern = regexp.MustCompile(`(?i)(online\s+)?payment\s*-\s*thank\s*you|credit\s*card\s*payment|还款`)
)

// FlowOf labels a single transaction. Transfer indicators win regardless
// of amount sign; otherwise the sign decides.
func FlowOf(tx model.Transaction) model.Flow {
	text := tx.MatchText()
	if transferPattern.MatchString(text) || repaymentPattern.MatchString(text) {
		return model.FlowTransfer
	}
	if tx.Amount.Sign() >= 0 {
		return model.FlowIncome
	}
	return model.FlowExpense
}

// ClassifyFlows labels every transaction in the batch.
func ClassifyFlows(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, tx := range txns {
		tx.Flow = FlowOf(tx)
		out[i] = tx
	}
	return out
}
