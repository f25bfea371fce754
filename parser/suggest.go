package parser

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/pyfront/token"
)

// keywordSpellings lists every reserved word once, built at package
// initialisation so suggestKeyword never pays the map-iteration cost per
// call.
var keywordSpellings = func() []string {
	words := make([]string, 0, len(token.Keywords))
	for w := range token.Keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}()

// suggestKeyword returns the closest reserved word to got by fuzzy rank,
// or "" when nothing is close enough to be worth suggesting. Grounded on
// the teacher's use of fuzzy.RankFindFold for decorator-name suggestions.
func suggestKeyword(got string) string {
	return rankSuggestion(got, keywordSpellings)
}

// suggestForIdentifier ranks got against both the keyword table and every
// identifier already bound by an enclosing def/class/assignment in the
// current suite (SPEC_FULL §3), returning whichever candidate is closest.
func (p *Parser) suggestForIdentifier(got string) string {
	candidates := append(append([]string{}, keywordSpellings...), p.boundNames()...)
	return rankSuggestion(got, candidates)
}

// rankSuggestion returns the closest of candidates to got by fuzzy rank,
// or "" when nothing is close enough to be worth suggesting.
func rankSuggestion(got string, candidates []string) string {
	if got == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(got, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	best := ranks[0]
	if best.Distance > 2 {
		return ""
	}
	return best.Target
}
