package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyup-dev/tallyup/internal/model"
)

func tx(merchant, note string) model.Transaction {
	return model.Transaction{
		Merchant: merchant,
		Note:     note,
		Amount:   decimal.NewFromInt(-10),
	}
}

func TestCategorize_BuiltinRule(t *testing.T) {
	out := Categorize([]model.Transaction{tx("盒马鲜生", "")}, nil, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "日常", out[0].Category)
}

func TestCategorize_BuiltinMatchesNoteToo(t *testing.T) {
	out := Categorize([]model.Transaction{tx("", "滴滴出行 订单")}, nil, nil)
	assert.Equal(t, "出行", out[0].Category)
}

func TestCategorize_UserRule(t *testing.T) {
	cats := []model.Category{{ID: 1, Name: "超市", Type: model.CategoryExpense}}
	rules := []model.CategoryRule{
		{ID: 1, Pattern: "pak\\s*n\\s*save", Flags: "i", CategoryID: 1, Enabled: true, CreatedAt: 100},
	}

	out := Categorize([]model.Transaction{tx("PAK N SAVE AUCKLAND", "")}, rules, cats)
	assert.Equal(t, "超市", out[0].Category)
}

func TestCategorize_BuiltinsBeforeUserRules(t *testing.T) {
	cats := []model.Category{{ID: 1, Name: "其他", Type: model.CategoryAll}}
	rules := []model.CategoryRule{
		{ID: 1, Pattern: "美团", CategoryID: 1, Enabled: true, CreatedAt: 100},
	}

	out := Categorize([]model.Transaction{tx("美团外卖", "")}, rules, cats)
	assert.Equal(t, "餐饮", out[0].Category, "built-in wins over the user rule")
}

func TestCategorize_UserRulesInCreationOrder(t *testing.T) {
	cats := []model.Category{
		{ID: 1, Name: "first", Type: model.CategoryAll},
		{ID: 2, Name: "second", Type: model.CategoryAll},
	}
	rules := []model.CategoryRule{
		{ID: 2, Pattern: "coffee", CategoryID: 2, Enabled: true, CreatedAt: 200},
		{ID: 1, Pattern: "coffee", CategoryID: 1, Enabled: true, CreatedAt: 100},
	}

	out := Categorize([]model.Transaction{tx("COFFEE SUPREME", "")}, rules, cats)
	assert.Equal(t, "first", out[0].Category, "earliest created rule wins")
}

func TestCategorize_DisabledRuleIgnored(t *testing.T) {
	cats := []model.Category{{ID: 1, Name: "超市", Type: model.CategoryExpense}}
	rules := []model.CategoryRule{
		{ID: 1, Pattern: "countdown", CategoryID: 1, Enabled: false, CreatedAt: 100},
	}

	out := Categorize([]model.Transaction{tx("COUNTDOWN", "")}, rules, cats)
	assert.Empty(t, out[0].Category)
}

func TestCategorize_InvalidRegexSkipped(t *testing.T) {
	cats := []model.Category{
		{ID: 1, Name: "broken", Type: model.CategoryAll},
		{ID: 2, Name: "超市", Type: model.CategoryExpense},
	}
	rules := []model.CategoryRule{
		{ID: 1, Pattern: "([unclosed", CategoryID: 1, Enabled: true, CreatedAt: 100},
		{ID: 2, Pattern: "countdown", CategoryID: 2, Enabled: true, CreatedAt: 200},
	}

	out := Categorize([]model.Transaction{tx("COUNTDOWN MT EDEN", "")}, rules, cats)
	assert.Equal(t, "超市", out[0].Category, "valid rules still apply")
}

func TestCategorize_UnknownCategoryFallsBack(t *testing.T) {
	rules := []model.CategoryRule{
		{ID: 1, Pattern: "countdown", CategoryID: 99, Enabled: true, CreatedAt: 100},
	}

	out := Categorize([]model.Transaction{tx("COUNTDOWN", "")}, rules, nil)
	assert.Equal(t, UncategorizedLabel, out[0].Category)
}

func TestCategorize_Idempotent(t *testing.T) {
	cats := []model.Category{{ID: 1, Name: "超市", Type: model.CategoryExpense}}
	rules := []model.CategoryRule{
		{ID: 1, Pattern: "pak n save", CategoryID: 1, Enabled: true, CreatedAt: 100},
	}
	in := []model.Transaction{tx("PAK N SAVE", ""), tx("盒马", "")}

	once := Categorize(in, rules, cats)
	twice := Categorize(once, rules, cats)
	assert.Equal(t, once, twice)
}

func TestCategorize_PresetCategoryUntouched(t *testing.T) {
	in := tx("盒马", "")
	in.Category = "手动"

	out := Categorize([]model.Transaction{in}, nil, nil)
	assert.Equal(t, "手动", out[0].Category)
}

func TestCategorize_NoMatchLeavesUnset(t *testing.T) {
	out := Categorize([]model.Transaction{tx("SOMETHING ELSE", "")}, nil, nil)
	assert.Empty(t, out[0].Category)
}
