package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// View selects which side of the ledger a rollup covers.
type View string

const (
	ViewAll     View = "all"
	ViewExpense View = "expense"
	ViewIncome  View = "income"
)

// Labels for records missing the grouped-on field.
const (
	labelUncategorized   = "未分类"
	labelUntaggedAccount = "未标记"
	labelUnknownMerchant = "未知商户"
	labelUnknownMonth    = "未知"
)

// Totals summarizes a transaction set with transfers excluded.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// NamedAmount is one row of a grouped rollup.
type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}

// MonthlyAgg is one month's income/expense/net.
type MonthlyAgg struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// flowOf falls back to the amount sign when enrichment never ran.
func flowOf(t model.Transaction) model.Flow {
	if t.Flow != "" {
		return t.Flow
	}
	if t.Amount.Sign() > 0 {
		return model.FlowIncome
	}
	return model.FlowExpense
}

// FilterMonth keeps transactions dated within month ("YYYY-MM"). An empty
// month keeps everything.
func FilterMonth(txns []model.Transaction, month string) []model.Transaction {
	if month == "" {
		return txns
	}
	var out []model.Transaction
	for _, t := range txns {
		if strings.HasPrefix(t.Date, month+"-") {
			out = append(out, t)
		}
	}
	return out
}

// FilterView keeps transactions matching the view. ViewAll keeps income
// and expense but drops transfers.
func FilterView(txns []model.Transaction, view View) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		f := flowOf(t)
		switch view {
		case ViewExpense:
			if f == model.FlowExpense {
				out = append(out, t)
			}
		case ViewIncome:
			if f == model.FlowIncome {
				out = append(out, t)
			}
		default:
			if f != model.FlowTransfer {
				out = append(out, t)
			}
		}
	}
	return out
}

// ComputeTotals sums income and expense over txns. Transfers contribute to
// neither side.
func ComputeTotals(txns []model.Transaction) Totals {
	var income, expense decimal.Decimal
	for _, t := range txns {
		switch flowOf(t) {
		case model.FlowIncome:
			income = income.Add(t.Amount)
		case model.FlowExpense:
			expense = expense.Add(t.Amount.Abs())
		}
	}
	return Totals{Income: income, Expense: expense, Net: income.Sub(expense)}
}

// ByCategory sums absolute amounts per category, largest first.
func ByCategory(txns []model.Transaction) []NamedAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		name := t.Category
		if name == "" {
			name = labelUncategorized
		}
		sums[name] = sums[name].Add(t.Amount.Abs())
	}
	return sorted(sums, true)
}

// ByAccount sums signed amounts per account tag.
func ByAccount(txns []model.Transaction) []NamedAmount {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		name := t.Account
		if name == "" {
			name = labelUntaggedAccount
		}
		sums[name] = sums[name].Add(t.Amount)
	}
	return sorted(sums, false)
}

// TopMerchants returns the ten largest merchants by volume for the view.
// The canonical merchant name wins over the raw one.
func TopMerchants(txns []model.Transaction, view View) []NamedAmount {
	isIncome := view == ViewIncome
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		name := t.MerchantNorm
		if name == "" {
			name = t.Merchant
		}
		if name == "" {
			name = labelUnknownMerchant
		}
		if isIncome && t.Amount.Sign() > 0 {
			sums[name] = sums[name].Add(t.Amount)
		} else if !isIncome && t.Amount.Sign() < 0 {
			sums[name] = sums[name].Add(t.Amount.Abs())
		}
	}
	out := sorted(sums, true)
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// Monthly rolls up income/expense/net per calendar month, transfers
// excluded, sorted by month.
func Monthly(txns []model.Transaction) []MonthlyAgg {
	byMonth := make(map[string]*MonthlyAgg)
	for _, t := range txns {
		f := flowOf(t)
		if f == model.FlowTransfer {
			continue
		}
		ym := labelUnknownMonth
		if len(t.Date) >= 7 {
			ym = t.Date[:7]
		}
		agg, ok := byMonth[ym]
		if !ok {
			agg = &MonthlyAgg{Month: ym}
			byMonth[ym] = agg
		}
		if f == model.FlowIncome {
			agg.Income = agg.Income.Add(t.Amount)
		} else {
			agg.Expense = agg.Expense.Add(t.Amount.Abs())
		}
		agg.Net = agg.Income.Sub(agg.Expense)
	}

	out := make([]MonthlyAgg, 0, len(byMonth))
	for _, agg := range byMonth {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func sorted(sums map[string]decimal.Decimal, desc bool) []NamedAmount {
	out := make([]NamedAmount, 0, len(sums))
	for name, amount := range sums {
		out = append(out, NamedAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		cmp := out[i].Amount.Cmp(out[j].Amount)
		if cmp == 0 {
			return out[i].Name < out[j].Name
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}
