package model

import (
	"github.com/shopspring/decimal"
)

// Flow classifies a transaction for reporting. Transfers are internal
// movements and are excluded from income/expense totals.
type Flow string

const (
	FlowIncome   Flow = "income"
	FlowExpense  Flow = "expense"
	FlowTransfer Flow = "transfer"
)

// DateFormat is the ISO calendar-date layout used on Transaction.Date.
const DateFormat = "2006-01-02"

// Transaction is the canonical record produced by an import.
type Transaction struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`   // ISO YYYY-MM-DD
	Amount       decimal.Decimal   `json:"amount"` // negative = expense, positive = income
	Currency     string            `json:"currency"`
	Merchant     string            `json:"merchant,omitempty"`
	MerchantNorm string            `json:"merchantNorm,omitempty"`
	Category     string            `json:"category,omitempty"`
	Note         string            `json:"note,omitempty"`
	Account      string            `json:"account,omitempty"`
	Flow         Flow              `json:"flow,omitempty"`
	Raw          map[string]string `json:"raw,omitempty"` // original CSV row, kept for audit
}

// MatchText is the text rules and aliases are tested against.
func (t Transaction) MatchText() string {
	return t.Merchant + " " + t.Note
}
