package merchant

import (
	"regexp"
	"sort"

	"github.com/tallyup-dev/tallyup/internal/model"
)

type compiledAlias struct {
	re   *regexp.Regexp
	name string
}

// Normalize assigns a canonical merchant name to each transaction whose
// merchant+note text matches an enabled alias. Aliases run in creation
// order; first match wins. Aliases with uncompilable patterns are skipped
// for the run. No match leaves MerchantNorm unset and reporting falls back
// to the raw merchant text.
func Normalize(txns []model.Transaction, aliases []model.MerchantAlias) []model.Transaction {
	compiled := compileAliases(aliases)

	out := make([]model.Transaction, len(txns))
	for i, tx := range txns {
		out[i] = tx
		text := tx.MatchText()
		for _, a := range compiled {
			if a.re.MatchString(text) {
				out[i].MerchantNorm = a.name
				break
			}
		}
	}
	return out
}

func compileAliases(aliases []model.MerchantAlias) []compiledAlias {
	ordered := make([]model.MerchantAlias, 0, len(aliases))
	for _, a := range aliases {
		if a.Enabled {
			ordered = append(ordered, a)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt < ordered[j].CreatedAt
	})

	var compiled []compiledAlias
	for _, a := range ordered {
		re, err := model.CompileUserPattern(a.Pattern, a.Flags)
		if err != nil {
			continue
		}
		compiled = append(compiled, compiledAlias{re: re, name: a.CanonicalName})
	}
	return compiled
}
