package lexer

import "github.com/opal-lang/pyfront/token"

// opEntry is one row of the maximal-munch operator table (spec §4.2):
// text is tried longest-first so e.g. "**=" is matched before "**" before
// "*".
type opEntry struct {
	text string
	kind token.Kind
}

// operatorTable is ordered longest-first within each leading byte so a
// linear scan from the top always finds the longest match first.
var operatorTable = []opEntry{
	{"...", token.ELLIPSIS},

	{"**=", token.DOUBLESTAR_ASSIGN},
	{"//=", token.DOUBLESLASH_ASSIGN},
	{"<<=", token.LSHIFT_ASSIGN},
	{">>=", token.RSHIFT_ASSIGN},

	{"**", token.DOUBLESTAR},
	{"//", token.DOUBLESLASH},
	{"<<", token.LSHIFT},
	{">>", token.RSHIFT},
	{"<=", token.LE},
	{">=", token.GE},
	{"==", token.EQ},
	{"!=", token.NE},
	{"->", token.ARROW},

	{"+=", token.PLUS_ASSIGN},
	{"-=", token.MINUS_ASSIGN},
	{"*=", token.STAR_ASSIGN},
	{"/=", token.SLASH_ASSIGN},
	{"%=", token.PERCENT_ASSIGN},
	{"@=", token.AT_ASSIGN},
	{"&=", token.AMP_ASSIGN},
	{"|=", token.PIPE_ASSIGN},
	{"^=", token.CARET_ASSIGN},

	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.STAR},
	{"/", token.SLASH},
	{"%", token.PERCENT},
	{"@", token.AT},
	{"&", token.AMP},
	{"|", token.PIPE},
	{"^", token.CARET},
	{"~", token.TILDE},
	{"<", token.LT},
	{">", token.GT},
	{"=", token.ASSIGN},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"[", token.LSQUARE},
	{"]", token.RSQUARE},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{",", token.COMMA},
	{":", token.COLON},
	{".", token.DOT},
	{";", token.SEMICOLON},
}

// matchOperator finds the longest operatorTable entry that is a prefix of
// runes starting at pos. It returns the matched kind, the number of runes
// consumed, and whether anything matched.
func matchOperator(runes []rune, pos int) (token.Kind, int, bool) {
	var best opEntry
	bestLen := 0
	for _, e := range operatorTable {
		n := len(e.text)
		if n <= bestLen {
			continue
		}
		if pos+n > len(runes) {
			continue
		}
		match := true
		for i := 0; i < n; i++ {
			if runes[pos+i] != rune(e.text[i]) {
				match = false
				break
			}
		}
		if match {
			best = e
			bestLen = n
		}
	}
	if bestLen == 0 {
		return 0, 0, false
	}
	return best.kind, bestLen, true
}
