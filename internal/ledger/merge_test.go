package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyup-dev/tallyup/internal/model"
)

func mk(id, date string, amount float64, merchant, account string) model.Transaction {
	return model.Transaction{
		ID:       id,
		Date:     date,
		Amount:   decimal.NewFromFloat(amount),
		Merchant: merchant,
		Account:  account,
	}
}

func TestMerge_Idempotent(t *testing.T) {
	batch := []model.Transaction{
		mk("a", "2024-03-01", -45, "PAK N SAVE", "credit card"),
		mk("b", "2024-03-02", 4200, "ACME", "debit card"),
	}

	// Re-importing an identical file produces no new rows.
	once := Merge(nil, batch)
	twice := Merge(once, batch)
	assert.Equal(t, once, twice)
}

func TestMerge_KeyAssociativity(t *testing.T) {
	a := []model.Transaction{mk("1", "2024-01-01", -1, "A", "x")}
	b := []model.Transaction{
		mk("2", "2024-01-02", -2, "B", "x"),
		mk("1b", "2024-01-01", -1, "A", "x"), // dup of a's row
	}
	c := []model.Transaction{mk("3", "2024-01-03", -3, "C", "x")}

	sequential := Merge(Merge(Merge(nil, a), b), c)

	var concat []model.Transaction
	concat = append(concat, a...)
	concat = append(concat, b...)
	concat = append(concat, c...)
	atOnce := Merge(nil, concat)

	keys := func(txns []model.Transaction) []string {
		var out []string
		for _, tx := range txns {
			out = append(out, naturalKey(tx))
		}
		return out
	}
	assert.Equal(t, keys(atOnce), keys(sequential))
}

func TestMerge_OrderPreserved(t *testing.T) {
	existing := []model.Transaction{
		mk("e1", "2024-01-01", -1, "A", ""),
		mk("e2", "2024-01-02", -2, "B", ""),
	}
	incoming := []model.Transaction{
		mk("i1", "2024-01-03", -3, "C", ""),
		mk("i2", "2024-01-01", -1, "A", ""), // duplicate, dropped
		mk("i3", "2024-01-04", -4, "D", ""),
	}

	merged := Merge(existing, incoming)
	require.Len(t, merged, 4)
	assert.Equal(t, []string{"e1", "e2", "i1", "i3"},
		[]string{merged[0].ID, merged[1].ID, merged[2].ID, merged[3].ID})
}

func TestMerge_DuplicatesWithinIncoming(t *testing.T) {
	incoming := []model.Transaction{
		mk("i1", "2024-01-01", -5, "COFFEE", ""),
		mk("i2", "2024-01-01", -5, "COFFEE", ""),
	}

	merged := Merge(nil, incoming)
	require.Len(t, merged, 1)
	assert.Equal(t, "i1", merged[0].ID, "first occurrence survives")
}

// Two genuinely distinct purchases sharing date, amount, merchant and
// account collapse to one row. The key ignores note and currency; this is
// a known approximation of the natural-key design, kept deliberately.
func TestMerge_SameDayIdenticalPurchasesCollapse(t *testing.T) {
	first := mk("i1", "2024-01-01", -4.5, "COFFEE SUPREME", "credit card")
	first.Note = "morning"
	second := mk("i2", "2024-01-01", -4.5, "COFFEE SUPREME", "credit card")
	second.Note = "afternoon"

	merged := Merge(nil, []model.Transaction{first, second})
	assert.Len(t, merged, 1)
}

func TestMerge_DifferentAccountsKept(t *testing.T) {
	merged := Merge(nil, []model.Transaction{
		mk("i1", "2024-01-01", -5, "COFFEE", "credit card"),
		mk("i2", "2024-01-01", -5, "COFFEE", "debit card"),
	})
	assert.Len(t, merged, 2)
}

func TestMerge_EmptyInputs(t *testing.T) {
	existing := []model.Transaction{mk("e1", "2024-01-01", -1, "A", "")}
	assert.Equal(t, existing, Merge(existing, nil))
	assert.Empty(t, Merge(nil, nil))
}
