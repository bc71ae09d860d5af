package schema

import "strings"

// Template is a named header-set predicate paired with the mapping it
// produces. Templates are evaluated in declaration order; the first whose
// required headers are all present wins.
type Template struct {
	Name     string
	Requires []string
	Build    func(have func(string) bool) Mapping
}

// templates is the ordered list of built-in statement layouts.
var templates = []Template{
	{
		Name:     "credit-card-statement",
		Requires: []string{"TransactionDate", "Amount", "Details"},
		Build: func(have func(string) bool) Mapping {
			m := Mapping{
				Date:          "TransactionDate",
				Amount:        "Amount",
				Merchant:      "Details",
				DateFormat:    "DD/MM/YYYY",
				CurrencyFixed: "NZD",
				AccountFixed:  "credit card",
			}
			if have("Type") {
				m.Type = "Type"
			}
			if have("Card") {
				m.Account = "Card"
			}
			return m
		},
	},
	{
		Name:     "bank-transactions",
		Requires: []string{"Date", "Amount", "Details"},
		Build: func(have func(string) bool) Mapping {
			return Mapping{
				Date:          "Date",
				Amount:        "Amount",
				Merchant:      "Details",
				DateFormat:    "DD/MM/YYYY",
				CurrencyFixed: "NZD",
				AccountFixed:  "debit card",
			}
		},
	},
}

// Infer selects a mapping from the CSV's header names. Header casing is
// preserved but surrounding whitespace is trimmed before comparison.
// Returns false when no template matches.
func Infer(headers []string) (Mapping, bool) {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.TrimSpace(h)] = true
	}
	have := func(name string) bool { return set[name] }

	for _, t := range templates {
		ok := true
		for _, req := range t.Requires {
			if !have(req) {
				ok = false
				break
			}
		}
		if ok {
			return t.Build(have), true
		}
	}
	return Mapping{}, false
}

// Resolve decides the mapping for a parse run. A supplied mapping is used
// as-is unless its date or amount column is absent from the actual headers,
// in which case inference overrides it (stale mapping recovery). With no
// usable mapping at all, the generic "date"/"amount" fallback is returned;
// rows that don't parse under it are simply dropped downstream.
func Resolve(supplied *Mapping, headers []string) Mapping {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.TrimSpace(h)] = true
	}

	active := supplied
	if active == nil {
		if m, ok := Infer(headers); ok {
			return m
		}
	} else if len(headers) > 0 && (!set[active.Date] || !set[active.Amount]) {
		if m, ok := Infer(headers); ok {
			return m
		}
	}
	if active != nil {
		return *active
	}
	return Mapping{Date: "date", Amount: "amount"}
}
