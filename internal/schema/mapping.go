package schema

import "strings"

// Mapping declares which CSV column plays which role, plus parsing hints.
// Column fields hold header names; an empty string means the role is not
// mapped. Fixed fields supply constants when no column carries the value.
type Mapping struct {
	Date     string `yaml:"date" json:"date"`
	Amount   string `yaml:"amount" json:"amount"`
	Merchant string `yaml:"merchant,omitempty" json:"merchant,omitempty"`
	Note     string `yaml:"note,omitempty" json:"note,omitempty"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty"`
	Type     string `yaml:"type,omitempty" json:"type,omitempty"` // debit/credit indicator column
	Account  string `yaml:"account,omitempty" json:"account,omitempty"`

	DateFormat    string `yaml:"date_format,omitempty" json:"dateFormat,omitempty"` // day-first tokens, e.g. DD/MM/YYYY
	CurrencyFixed string `yaml:"currency_fixed,omitempty" json:"currencyFixed,omitempty"`
	AccountFixed  string `yaml:"account_fixed,omitempty" json:"accountFixed,omitempty"`
}

var layoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// Layout converts a DD/MM/YYYY-style token string into a Go time layout.
// Unrecognized characters pass through as literals.
func Layout(tokens string) string {
	return layoutReplacer.Replace(tokens)
}
