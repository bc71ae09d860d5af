package classify

import (
	"regexp"
	"sort"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// UncategorizedLabel is used when a rule points at a category that no
// longer exists. Reporting also groups rule-less transactions under it.
const UncategorizedLabel = "未分类"

// builtinRule is a fixed keyword heuristic applied before user rules.
type builtinRule struct {
	keyword  *regexp.Regexp
	category string
}

var builtinRules = []builtinRule{
	{regexp.MustCompile(`(?i)超市|便利店|沃尔玛|盒马|物美`), "日常"},
	{regexp.MustCompile(`(?i)美团|饿了么|外卖`), "餐饮"},
	{regexp.MustCompile(`(?i)地铁|打车|滴滴|高德|公交`), "出行"},
	{regexp.MustCompile(`(?i)京东|淘宝|天猫|拼多多`), "网购"},
	{regexp.MustCompile(`(?i)医院|药房|药店`), "医疗"},
	{regexp.MustCompile(`(?i)房贷|房租|物业`), "居住"},
	{regexp.MustCompile(`(?i)会员|腾讯视频|爱奇艺|网易云|Spotify|Netflix`), "订阅"},
}

// compiledRule is a user rule ready to run.
type compiledRule struct {
	re       *regexp.Regexp
	category string
}

// Categorize assigns a category to each transaction that does not already
// have one. Built-in keyword rules run first, then enabled user rules in
// creation order; first match wins. Rules with patterns that fail to
// compile are skipped for the run. Already-categorized transactions pass
// through unchanged, so the operation is idempotent.
func Categorize(txns []model.Transaction, rules []model.CategoryRule, categories []model.Category) []model.Transaction {
	compiled := compileRules(rules, categories)

	out := make([]model.Transaction, len(txns))
	for i, tx := range txns {
		out[i] = tx
		if tx.Category != "" {
			continue
		}
		text := tx.MatchText()
		if cat, ok := matchBuiltin(text); ok {
			out[i].Category = cat
			continue
		}
		for _, r := range compiled {
			if r.re.MatchString(text) {
				out[i].Category = r.category
				break
			}
		}
	}
	return out
}

func matchBuiltin(text string) (string, bool) {
	for _, r := range builtinRules {
		if r.keyword.MatchString(text) {
			return r.category, true
		}
	}
	return "", false
}

func compileRules(rules []model.CategoryRule, categories []model.Category) []compiledRule {
	nameByID := make(map[int]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
	}

	ordered := make([]model.CategoryRule, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt < ordered[j].CreatedAt
	})

	var compiled []compiledRule
	for _, r := range ordered {
		re, err := model.CompileUserPattern(r.Pattern, r.Flags)
		if err != nil {
			continue
		}
		name := nameByID[r.CategoryID]
		if name == "" {
			name = UncategorizedLabel
		}
		compiled = append(compiled, compiledRule{re: re, category: name})
	}
	return compiled
}
