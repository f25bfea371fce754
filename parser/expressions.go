package parser

import (
	"github.com/opal-lang/pyfront/ast"
	"github.com/opal-lang/pyfront/token"
)

// atListEnd reports whether the current token cannot continue a
// comma-separated expression list — used to tell a genuine next item from a
// trailing comma.
func (p *Parser) atListEnd() bool {
	if p.atEOF() {
		return true
	}
	if _, aug := token.AugmentedOps[p.cur().Kind]; aug {
		return true
	}
	return p.atAny(token.NEWLINE, token.SEMICOLON, token.COLON, token.RPAREN,
		token.RSQUARE, token.RBRACE, token.ASSIGN)
}

func (p *Parser) atSmallStmtEnd() bool {
	return p.atEOF() || p.atAny(token.NEWLINE, token.SEMICOLON)
}

func (p *Parser) atYieldEmpty() bool {
	return p.atEOF() || p.atAny(token.NEWLINE, token.SEMICOLON, token.RPAREN,
		token.RSQUARE, token.RBRACE, token.COLON)
}

// parseCommaSeparated parses one-or-more items via parseItem, separated by
// commas, and reports whether the list ended on a trailing comma.
func (p *Parser) parseCommaSeparated(parseItem func() ast.Expr) (elts []ast.Expr, trailing bool) {
	elts = []ast.Expr{parseItem()}
	for p.at(token.COMMA) {
		p.advance()
		if p.atListEnd() {
			trailing = true
			break
		}
		elts = append(elts, parseItem())
	}
	return elts, trailing
}

// parseTestListStar parses spec's testlist_star_expr shape: a single test
// (or starred expression), or a comma-separated run collapsed into one
// Tuple. Used wherever the grammar names a testlist that binds to a single
// Expr slot (Return.Value, Assign segments, For.Iter, ...).
func (p *Parser) parseTestListStar() ast.Expr {
	elts, trailing := p.parseCommaSeparated(p.parseTestOrStar)
	if len(elts) == 1 && !trailing {
		return elts[0]
	}
	return &ast.Tuple{Elts: elts, Ctx: ast.Load}
}

// parseTargetListRaw parses a comma-separated run of targets that stay as
// independent elements rather than collapsing into a Tuple — Delete.Targets
// is a slice, not a singular Expr.
func (p *Parser) parseTargetListRaw() []ast.Expr {
	elts, _ := p.parseCommaSeparated(p.parseTestOrStar)
	return elts
}

// parseExprList parses the exprlist shape of a `for` target (statement or
// comprehension clause): items at bitwise-or level, so the `in` after the
// target is not read as a comparison, collapsed into a Tuple when there
// is more than one or a trailing comma.
func (p *Parser) parseExprList() ast.Expr {
	elts, trailing := p.parseCommaSeparated(func() ast.Expr {
		if p.at(token.STAR) {
			p.advance()
			return &ast.Starred{Value: p.parseBitOr(), Ctx: ast.Load}
		}
		return p.parseBitOr()
	})
	if len(elts) == 1 && !trailing {
		return elts[0]
	}
	return &ast.Tuple{Elts: elts, Ctx: ast.Load}
}

func (p *Parser) parseTestOrStar() ast.Expr {
	if p.at(token.STAR) {
		p.advance()
		v := p.parseOrTest()
		return &ast.Starred{Value: v, Ctx: ast.Load}
	}
	return p.parseTest()
}

// parseTestNoCond is spec's test_nocond: an or_test, or a lambda with no
// conditional body, used inside comprehension `if` clauses so `for` isn't
// swallowed by a ternary's `else`.
func (p *Parser) parseTestNoCond() ast.Expr {
	if p.at(token.LAMBDA) {
		return p.parseLambda(true)
	}
	return p.parseOrTest()
}

func (p *Parser) parseTest() ast.Expr {
	if p.at(token.LAMBDA) {
		return p.parseLambda(false)
	}
	e := p.parseOrTest()
	if p.at(token.IF) {
		p.advance()
		cond := p.parseOrTest()
		p.expect(token.ELSE, "'else'")
		orelse := p.parseTest()
		return &ast.IfExp{Test: cond, Body: e, OrElse: orelse}
	}
	return e
}

func (p *Parser) parseLambda(noCond bool) ast.Expr {
	p.advance() // 'lambda'
	args := p.parseArgsList(token.COLON, false)
	p.expect(token.COLON, "':'")
	var body ast.Expr
	if noCond {
		body = p.parseTestNoCond()
	} else {
		body = p.parseTest()
	}
	return &ast.Lambda{Args: args, Body: body}
}

func (p *Parser) parseOrTest() ast.Expr {
	left := p.parseAndTest()
	if !p.at(token.OR) {
		return left
	}
	values := []ast.Expr{left}
	for p.at(token.OR) {
		p.advance()
		values = append(values, p.parseAndTest())
	}
	return &ast.BoolOp{Op: ast.BoolOr, Values: values}
}

func (p *Parser) parseAndTest() ast.Expr {
	left := p.parseNotTest()
	if !p.at(token.AND) {
		return left
	}
	values := []ast.Expr{left}
	for p.at(token.AND) {
		p.advance()
		values = append(values, p.parseNotTest())
	}
	return &ast.BoolOp{Op: ast.BoolAnd, Values: values}
}

func (p *Parser) parseNotTest() ast.Expr {
	if p.at(token.NOT) {
		p.advance()
		operand := p.parseNotTest()
		return &ast.UnaryOp{Op: ast.Not, Operand: operand}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseBitOr()
	var ops []ast.CmpOperator
	var comparators []ast.Expr
	for {
		op, ok := p.tryCompOp()
		if !ok {
			break
		}
		comparators = append(comparators, p.parseBitOr())
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return left
	}
	return &ast.Compare{Left: left, Ops: ops, Comparators: comparators}
}

// tryCompOp consumes a comparison operator if one starts here, using the
// two-token lookahead spec §4.4 calls out for `is not` / `not in`.
func (p *Parser) tryCompOp() (ast.CmpOperator, bool) {
	switch p.cur().Kind {
	case token.LT:
		p.advance()
		return ast.CmpLt, true
	case token.GT:
		p.advance()
		return ast.CmpGt, true
	case token.LE:
		p.advance()
		return ast.CmpLtE, true
	case token.GE:
		p.advance()
		return ast.CmpGtE, true
	case token.EQ:
		p.advance()
		return ast.CmpEq, true
	case token.NE:
		p.advance()
		return ast.CmpNotEq, true
	case token.IN:
		p.advance()
		return ast.CmpIn, true
	case token.IS:
		if p.curAt(1).Kind == token.NOT {
			p.advance()
			p.advance()
			return ast.CmpIsNot, true
		}
		p.advance()
		return ast.CmpIs, true
	case token.NOT:
		if p.curAt(1).Kind == token.IN {
			p.advance()
			p.advance()
			return ast.CmpNotIn, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// parseBinaryChain folds a left-associative binary operator run over next.
func (p *Parser) parseBinaryChain(next func() ast.Expr, kinds ...token.Kind) ast.Expr {
	left := next()
	for p.atAny(kinds...) {
		opKind := p.advance().Kind
		right := next()
		left = &ast.BinOp{Left: left, Op: mapOperatorKind(opKind), Right: right}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expr {
	return p.parseBinaryChain(p.parseBitXor, token.PIPE)
}

func (p *Parser) parseBitXor() ast.Expr {
	return p.parseBinaryChain(p.parseBitAnd, token.CARET)
}

func (p *Parser) parseBitAnd() ast.Expr {
	return p.parseBinaryChain(p.parseShift, token.AMP)
}

func (p *Parser) parseShift() ast.Expr {
	return p.parseBinaryChain(p.parseArith, token.LSHIFT, token.RSHIFT)
}

func (p *Parser) parseArith() ast.Expr {
	return p.parseBinaryChain(p.parseTerm, token.PLUS, token.MINUS)
}

func (p *Parser) parseTerm() ast.Expr {
	return p.parseBinaryChain(p.parseFactor, token.STAR, token.AT, token.SLASH,
		token.PERCENT, token.DOUBLESLASH)
}

func (p *Parser) parseFactor() ast.Expr {
	if p.atAny(token.PLUS, token.MINUS, token.TILDE) {
		opKind := p.advance().Kind
		operand := p.parseFactor()
		return &ast.UnaryOp{Op: mapUnaryKind(opKind), Operand: operand}
	}
	return p.parsePower()
}

// parsePower is right-associative: the exponent re-enters at factor level
// so `2 ** -1` and `2 ** 3 ** 2` both bind the way spec §4.4 describes.
func (p *Parser) parsePower() ast.Expr {
	left := p.parseAtomTrailers()
	if p.at(token.DOUBLESTAR) {
		p.advance()
		right := p.parseFactor()
		return &ast.BinOp{Left: left, Op: ast.Pow, Right: right}
	}
	return left
}

func (p *Parser) parseAtomTrailers() ast.Expr {
	atom := p.parseAtom()
	for {
		switch {
		case p.at(token.LPAREN):
			atom = p.parseTrailerCall(atom)
		case p.at(token.LSQUARE):
			atom = p.parseTrailerSubscript(atom)
		case p.at(token.DOT):
			p.advance()
			name := p.expect(token.IDENTIFIER, "attribute name").Payload
			atom = &ast.Attribute{Value: atom, Attr: name, Ctx: ast.Load}
		default:
			return atom
		}
	}
}

func (p *Parser) parseAtom() ast.Expr {
	switch p.cur().Kind {
	case token.IDENTIFIER:
		name := p.advance().Payload
		return &ast.Name{Id: name, Ctx: ast.Load}
	case token.DEC_INTEGER, token.BIN_INTEGER, token.OCT_INTEGER, token.HEX_INTEGER, token.FLOAT, token.IMAGINARY:
		tok := p.advance()
		return &ast.Num{Kind: mapNumberKind(tok.Kind), Text: tok.Payload}
	case token.STRING:
		tok := p.advance()
		return &ast.Str{Value: tok.Payload}
	case token.BYTES:
		// spec's AST has no separate Bytes variant; a byte string's content
		// is ASCII-only (BytesNonASCII at lex time), so it fits a Go string
		// losslessly and is carried through the same Str node (DESIGN.md).
		tok := p.advance()
		return &ast.Str{Value: string(tok.Bytes)}
	case token.NONE:
		p.advance()
		return &ast.NameConstant{Value: ast.SingletonNone}
	case token.TRUE:
		p.advance()
		return &ast.NameConstant{Value: ast.SingletonTrue}
	case token.FALSE:
		p.advance()
		return &ast.NameConstant{Value: ast.SingletonFalse}
	case token.ELLIPSIS:
		p.advance()
		return &ast.Ellipsis{}
	case token.LPAREN:
		return p.parseParenForm()
	case token.LSQUARE:
		return p.parseListForm()
	case token.LBRACE:
		return p.parseBraceForm()
	case token.YIELD:
		return p.parseYieldExpr()
	default:
		p.raiseUnexpected("expression")
		return nil
	}
}

func (p *Parser) parseYieldExpr() ast.Expr {
	p.expect(token.YIELD, "'yield'")
	if p.at(token.FROM) {
		p.advance()
		v := p.parseTest()
		return &ast.YieldFrom{Value: v}
	}
	if p.atYieldEmpty() {
		return &ast.Yield{}
	}
	v := p.parseTestListStar()
	return &ast.Yield{Value: v}
}

func (p *Parser) parseParenForm() ast.Expr {
	p.advance() // '('
	if p.at(token.RPAREN) {
		p.advance()
		return &ast.Tuple{Ctx: ast.Load}
	}
	if p.at(token.YIELD) {
		y := p.parseYieldExpr()
		p.expect(token.RPAREN, "')'")
		return y
	}
	elts, gens, trailing := p.parseTestListCompGeneric(token.RPAREN)
	p.expect(token.RPAREN, "')'")
	if gens != nil {
		return &ast.GeneratorExp{Elt: elts[0], Generators: gens}
	}
	if len(elts) == 1 && !trailing {
		return elts[0]
	}
	return &ast.Tuple{Elts: elts, Ctx: ast.Load}
}

func (p *Parser) parseListForm() ast.Expr {
	p.advance() // '['
	if p.at(token.RSQUARE) {
		p.advance()
		return &ast.List{Ctx: ast.Load}
	}
	elts, gens, _ := p.parseTestListCompGeneric(token.RSQUARE)
	p.expect(token.RSQUARE, "']'")
	if gens != nil {
		return &ast.ListComp{Elt: elts[0], Generators: gens}
	}
	return &ast.List{Elts: elts, Ctx: ast.Load}
}

// parseTestListCompGeneric implements rec_parse_test_list_comp (spec §4.4):
// a single test-or-star item followed by comprehension clauses, or a
// comma-separated run of items up to close.
func (p *Parser) parseTestListCompGeneric(close token.Kind) (elts []ast.Expr, gens []*ast.Comprehension, trailing bool) {
	first := p.parseTestOrStar()
	if p.at(token.FOR) {
		gens = p.parseCompClauses()
		return []ast.Expr{first}, gens, false
	}
	elts = []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(close) {
			trailing = true
			break
		}
		elts = append(elts, p.parseTestOrStar())
	}
	return elts, nil, trailing
}

// parseCompClauses parses one-or-more chained `for ... in ... [if ...]*`
// clauses; each `if` attaches to the Comprehension most recently appended.
func (p *Parser) parseCompClauses() []*ast.Comprehension {
	var gens []*ast.Comprehension
	for p.at(token.FOR) {
		p.advance()
		target := p.parseExprList()
		setContext(target, ast.Store)
		p.expect(token.IN, "'in'")
		iter := p.parseOrTest()
		comp := &ast.Comprehension{Target: target, Iter: iter}
		for p.at(token.IF) {
			p.advance()
			comp.Ifs = append(comp.Ifs, p.parseTestNoCond())
		}
		gens = append(gens, comp)
	}
	return gens
}

func (p *Parser) parseBraceForm() ast.Expr {
	p.advance() // '{'
	if p.at(token.RBRACE) {
		p.advance()
		return &ast.Dict{}
	}
	if p.at(token.DOUBLESTAR) {
		p.advance()
		v := p.parseOrTest()
		return p.parseDictRest([]ast.Expr{nil}, []ast.Expr{v})
	}
	first := p.parseTestOrStar()
	if p.at(token.COLON) {
		p.advance()
		val := p.parseTest()
		if p.at(token.FOR) {
			gens := p.parseCompClauses()
			return &ast.DictComp{Key: first, Value: val, Generators: gens}
		}
		return p.parseDictRest([]ast.Expr{first}, []ast.Expr{val})
	}
	if p.at(token.FOR) {
		gens := p.parseCompClauses()
		return &ast.SetComp{Elt: first, Generators: gens}
	}
	elts := []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACE) {
			break
		}
		elts = append(elts, p.parseTestOrStar())
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Set{Elts: elts}
}

func (p *Parser) parseDictRest(keys, values []ast.Expr) ast.Expr {
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACE) {
			break
		}
		if p.at(token.DOUBLESTAR) {
			p.advance()
			v := p.parseOrTest()
			keys = append(keys, nil)
			values = append(values, v)
			continue
		}
		k := p.parseTest()
		p.expect(token.COLON, "':'")
		v := p.parseTest()
		keys = append(keys, k)
		values = append(values, v)
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Dict{Keys: keys, Values: values}
}

func (p *Parser) parseTrailerSubscript(value ast.Expr) ast.Expr {
	p.advance() // '['
	dims := []ast.Slicer{p.parseSubscriptItem()}
	sawComma := false
	for p.at(token.COMMA) {
		sawComma = true
		p.advance()
		if p.at(token.RSQUARE) {
			break
		}
		dims = append(dims, p.parseSubscriptItem())
	}
	p.expect(token.RSQUARE, "']'")
	return &ast.Subscript{Value: value, Slice: collapseSubscript(dims, sawComma), Ctx: ast.Load}
}

// collapseSubscript implements spec §4.4's subscript collapsing rules.
func collapseSubscript(dims []ast.Slicer, sawComma bool) ast.Slicer {
	if len(dims) == 1 && !sawComma {
		return dims[0]
	}
	for _, d := range dims {
		if _, ok := d.(*ast.SliceRange); ok {
			return &ast.ExtSlice{Dims: dims}
		}
	}
	elts := make([]ast.Expr, len(dims))
	for i, d := range dims {
		elts[i] = d.(*ast.Index).Value
	}
	return &ast.Index{Value: &ast.Tuple{Elts: elts, Ctx: ast.Load}}
}

func (p *Parser) parseSubscriptItem() ast.Slicer {
	var lower, upper, step ast.Expr
	if !p.atAny(token.COLON, token.RSQUARE, token.COMMA) {
		lower = p.parseTest()
	}
	if !p.at(token.COLON) {
		return &ast.Index{Value: lower}
	}
	p.advance()
	if !p.atAny(token.COLON, token.RSQUARE, token.COMMA) {
		upper = p.parseTest()
	}
	if p.at(token.COLON) {
		p.advance()
		if !p.atAny(token.RSQUARE, token.COMMA) {
			step = p.parseTest()
		}
	}
	return &ast.SliceRange{Lower: lower, Upper: upper, Step: step}
}

// parseCallArgs parses spec's parse_arglist up to (not including) the
// closing ')': positional/`*expr`/keyword `NAME=expr`/`**expr`, or a bare
// generator expression when an argument is followed by `for`.
func (p *Parser) parseCallArgs() ([]ast.Expr, []*ast.Keyword) {
	var args []ast.Expr
	var keywords []*ast.Keyword
	sawKeyword := false
	for !p.at(token.RPAREN) && p.err == nil {
		switch {
		case p.at(token.STAR):
			p.advance()
			v := p.parseTest()
			if sawKeyword {
				p.fail(PositionalArgAfterKeyword)
				return args, keywords
			}
			args = append(args, &ast.Starred{Value: v, Ctx: ast.Load})
		case p.at(token.DOUBLESTAR):
			p.advance()
			v := p.parseTest()
			keywords = append(keywords, &ast.Keyword{Value: v})
			sawKeyword = true
		default:
			e := p.parseTest()
			switch {
			case p.at(token.ASSIGN):
				name, ok := e.(*ast.Name)
				if !ok {
					p.fail(KeywordExpression)
					return args, keywords
				}
				p.advance()
				v := p.parseTest()
				keywords = append(keywords, &ast.Keyword{Arg: name.Id, Value: v})
				sawKeyword = true
			case p.at(token.FOR):
				gens := p.parseCompClauses()
				args = append(args, &ast.GeneratorExp{Elt: e, Generators: gens})
			default:
				if sawKeyword {
					p.fail(PositionalArgAfterKeyword)
					return args, keywords
				}
				args = append(args, e)
			}
		}
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	return args, keywords
}

func (p *Parser) parseTrailerCall(value ast.Expr) ast.Expr {
	p.advance() // '('
	args, keywords := p.parseCallArgs()
	p.expect(token.RPAREN, "')'")
	return &ast.Call{Func: value, Args: args, Keywords: keywords}
}
