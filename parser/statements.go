package parser

import (
	"strings"

	"github.com/opal-lang/pyfront/ast"
	"github.com/opal-lang/pyfront/token"
)

// parseStmt is spec §4.4's parse_stmt: dispatch to a compound-statement
// parser on the keywords that start one, otherwise fall through to
// simple_stmt. It returns a slice because a simple_stmt line may hold
// several semicolon-separated small statements.
func (p *Parser) parseStmt() []ast.Stmt {
	switch {
	case p.at(token.IF):
		return []ast.Stmt{p.parseIf()}
	case p.at(token.WHILE):
		return []ast.Stmt{p.parseWhile()}
	case p.at(token.FOR):
		return []ast.Stmt{p.parseFor()}
	case p.at(token.TRY):
		return []ast.Stmt{p.parseTry()}
	case p.at(token.WITH):
		return []ast.Stmt{p.parseWith()}
	case p.at(token.DEF):
		return []ast.Stmt{p.parseFunctionDef(nil)}
	case p.at(token.CLASS):
		return []ast.Stmt{p.parseClassDef(nil)}
	case p.at(token.AT):
		decorators := p.parseDecorators()
		switch {
		case p.at(token.DEF):
			return []ast.Stmt{p.parseFunctionDef(decorators)}
		case p.at(token.CLASS):
			return []ast.Stmt{p.parseClassDef(decorators)}
		default:
			p.raiseUnexpected("'def' or 'class'")
			return nil
		}
	default:
		return p.parseSimpleStmt()
	}
}

// parseSuite is spec §4.4's parse_suite: either a simple statement inline
// on the same line, or Newline Indent stmt+ Dedent.
func (p *Parser) parseSuite() []ast.Stmt {
	if !p.at(token.NEWLINE) {
		return p.parseSimpleStmt()
	}
	p.advance()
	p.expect(token.INDENT, "indented block")
	p.pushScope()
	defer p.popScope()
	var body []ast.Stmt
	for !p.at(token.DEDENT) && !p.atEOF() {
		body = append(body, p.parseStmt()...)
		if p.err != nil {
			return body
		}
	}
	p.expect(token.DEDENT, "dedent")
	return body
}

func (p *Parser) parseSimpleStmt() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		stmts = append(stmts, p.parseSmallStmt())
		if p.err != nil {
			return stmts
		}
		if !p.at(token.SEMICOLON) {
			break
		}
		p.advance()
		if p.at(token.NEWLINE) || p.atEOF() {
			break
		}
	}
	p.expect(token.NEWLINE, "newline")
	return stmts
}

func (p *Parser) parseSmallStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.PASS:
		p.advance()
		return &ast.Pass{}
	case token.BREAK:
		p.advance()
		return &ast.Break{}
	case token.CONTINUE:
		p.advance()
		return &ast.Continue{}
	case token.RETURN:
		return p.parseReturn()
	case token.RAISE:
		return p.parseRaise()
	case token.DEL:
		return p.parseDelete()
	case token.ASSERT:
		return p.parseAssert()
	case token.IMPORT:
		return p.parseImport()
	case token.FROM:
		return p.parseImportFrom()
	case token.GLOBAL:
		return p.parseGlobal()
	case token.NONLOCAL:
		return p.parseNonlocal()
	case token.YIELD:
		y := p.parseYieldExpr()
		return &ast.ExprStmt{Value: y}
	default:
		return p.parseExprStmt()
	}
}

// parseExprStmt is spec §4.4's parse_expr_stmt: parse a testlist, then
// dispatch on what follows it.
func (p *Parser) parseExprStmt() ast.Stmt {
	first := p.parseTestListStar()
	switch {
	case p.at(token.COLON):
		p.advance()
		annotation := p.parseTest()
		var value ast.Expr
		if p.at(token.ASSIGN) {
			p.advance()
			value = p.parseAssignRHS()
		}
		setContext(first, ast.Store)
		return &ast.AnnAssign{Target: first, Annotation: annotation, Value: value}
	case p.at(token.ASSIGN):
		p.advance()
		rhs := p.parseAssignRHS()
		targets := []ast.Expr{first}
		for p.at(token.ASSIGN) {
			p.advance()
			targets = append(targets, rhs)
			rhs = p.parseAssignRHS()
		}
		for _, t := range targets {
			setContext(t, ast.Store)
		}
		p.bindTargets(targets)
		return &ast.Assign{Targets: targets, Value: rhs}
	default:
		if op, ok := token.AugmentedOps[p.cur().Kind]; ok {
			p.advance()
			value := p.parseAssignRHS()
			setContext(first, ast.AugStore)
			return &ast.AugAssign{Target: first, Op: mapOperatorKind(op), Value: value}
		}
		return &ast.ExprStmt{Value: first}
	}
}

func (p *Parser) parseAssignRHS() ast.Expr {
	if p.at(token.YIELD) {
		return p.parseYieldExpr()
	}
	return p.parseTestListStar()
}

func (p *Parser) parseReturn() ast.Stmt {
	p.advance() // 'return'
	if p.atSmallStmtEnd() {
		return &ast.Return{}
	}
	return &ast.Return{Value: p.parseTestListStar()}
}

func (p *Parser) parseDelete() ast.Stmt {
	p.advance() // 'del'
	targets := p.parseTargetListRaw()
	for _, t := range targets {
		setContext(t, ast.Del)
	}
	return &ast.Delete{Targets: targets}
}

func (p *Parser) parseRaise() ast.Stmt {
	p.advance() // 'raise'
	if p.atSmallStmtEnd() {
		return &ast.Raise{}
	}
	exc := p.parseTest()
	var cause ast.Expr
	if p.at(token.FROM) {
		p.advance()
		cause = p.parseTest()
	}
	return &ast.Raise{Exc: exc, Cause: cause}
}

func (p *Parser) parseAssert() ast.Stmt {
	p.advance() // 'assert'
	test := p.parseTest()
	var msg ast.Expr
	if p.at(token.COMMA) {
		p.advance()
		msg = p.parseTest()
	}
	return &ast.Assert{Test: test, Msg: msg}
}

func (p *Parser) parseImport() ast.Stmt {
	p.advance() // 'import'
	names := []*ast.Alias{p.parseDottedAsName()}
	for p.at(token.COMMA) {
		p.advance()
		names = append(names, p.parseDottedAsName())
	}
	return &ast.Import{Names: names}
}

func (p *Parser) parseDottedAsName() *ast.Alias {
	name := p.parseDottedName()
	asname := ""
	if p.at(token.AS) {
		p.advance()
		asname = p.expect(token.IDENTIFIER, "name").Payload
	}
	return &ast.Alias{Name: name, AsName: asname}
}

func (p *Parser) parseDottedName() string {
	parts := []string{p.expect(token.IDENTIFIER, "module name").Payload}
	for p.at(token.DOT) {
		p.advance()
		parts = append(parts, p.expect(token.IDENTIFIER, "name").Payload)
	}
	return strings.Join(parts, ".")
}

// parseImportFrom handles `from [dots] [module] import names` (spec §4.4),
// counting each `.` as one level and each `...` as three.
func (p *Parser) parseImportFrom() ast.Stmt {
	p.advance() // 'from'
	level := 0
	for p.atAny(token.DOT, token.ELLIPSIS) {
		if p.at(token.ELLIPSIS) {
			level += 3
		} else {
			level++
		}
		p.advance()
	}
	module := ""
	if !p.at(token.IMPORT) {
		module = p.parseDottedName()
	}
	p.expect(token.IMPORT, "'import'")

	var names []*ast.Alias
	switch {
	case p.at(token.STAR):
		p.advance()
		names = []*ast.Alias{{Name: "*"}}
	case p.at(token.LPAREN):
		p.advance()
		names = append(names, p.parseImportAsName())
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RPAREN) {
				break
			}
			names = append(names, p.parseImportAsName())
		}
		p.expect(token.RPAREN, "')'")
	default:
		names = append(names, p.parseImportAsName())
		for p.at(token.COMMA) {
			p.advance()
			names = append(names, p.parseImportAsName())
		}
	}
	return &ast.ImportFrom{Module: module, Names: names, Level: level}
}

func (p *Parser) parseImportAsName() *ast.Alias {
	name := p.expect(token.IDENTIFIER, "name").Payload
	asname := ""
	if p.at(token.AS) {
		p.advance()
		asname = p.expect(token.IDENTIFIER, "name").Payload
	}
	return &ast.Alias{Name: name, AsName: asname}
}

func (p *Parser) parseGlobal() ast.Stmt {
	p.advance() // 'global'
	names := []string{p.expect(token.IDENTIFIER, "name").Payload}
	for p.at(token.COMMA) {
		p.advance()
		names = append(names, p.expect(token.IDENTIFIER, "name").Payload)
	}
	return &ast.Global{Names: names}
}

func (p *Parser) parseNonlocal() ast.Stmt {
	p.advance() // 'nonlocal'
	names := []string{p.expect(token.IDENTIFIER, "name").Payload}
	for p.at(token.COMMA) {
		p.advance()
		names = append(names, p.expect(token.IDENTIFIER, "name").Payload)
	}
	return &ast.Nonlocal{Names: names}
}

func (p *Parser) parseIf() *ast.If {
	p.expect(token.IF, "'if'")
	return p.parseIfBody()
}

// parseIfBody handles the shared shape of `if` and `elif`: a nested If
// under OrElse is how a spec chain of elif clauses is represented.
func (p *Parser) parseIfBody() *ast.If {
	test := p.parseTest()
	p.expect(token.COLON, "':'")
	body := p.parseSuite()
	var orelse []ast.Stmt
	switch {
	case p.at(token.ELIF):
		p.advance()
		orelse = []ast.Stmt{p.parseIfBody()}
	case p.at(token.ELSE):
		p.advance()
		p.expect(token.COLON, "':'")
		orelse = p.parseSuite()
	}
	return &ast.If{Test: test, Body: body, OrElse: orelse}
}

func (p *Parser) parseWhile() ast.Stmt {
	p.expect(token.WHILE, "'while'")
	test := p.parseTest()
	p.expect(token.COLON, "':'")
	body := p.parseSuite()
	var orelse []ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		p.expect(token.COLON, "':'")
		orelse = p.parseSuite()
	}
	return &ast.While{Test: test, Body: body, OrElse: orelse}
}

func (p *Parser) parseFor() ast.Stmt {
	p.expect(token.FOR, "'for'")
	target := p.parseExprList()
	setContext(target, ast.Store)
	p.expect(token.IN, "'in'")
	iter := p.parseTestListStar()
	p.expect(token.COLON, "':'")
	body := p.parseSuite()
	var orelse []ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		p.expect(token.COLON, "':'")
		orelse = p.parseSuite()
	}
	return &ast.For{Target: target, Iter: iter, Body: body, OrElse: orelse}
}

func (p *Parser) parseWith() ast.Stmt {
	p.expect(token.WITH, "'with'")
	items := []*ast.WithItem{p.parseWithItem()}
	for p.at(token.COMMA) {
		p.advance()
		items = append(items, p.parseWithItem())
	}
	p.expect(token.COLON, "':'")
	body := p.parseSuite()
	return &ast.With{Items: items, Body: body}
}

func (p *Parser) parseWithItem() *ast.WithItem {
	ctxExpr := p.parseTest()
	var optVars ast.Expr
	if p.at(token.AS) {
		p.advance()
		optVars = p.parseTest()
		setContext(optVars, ast.Store)
	}
	return &ast.WithItem{ContextExpr: ctxExpr, OptionalVars: optVars}
}

// parseTry implements spec §4.4's try contract: one-or-more except clauses
// (with optional else/finally), or a lone finally.
func (p *Parser) parseTry() ast.Stmt {
	p.expect(token.TRY, "'try'")
	p.expect(token.COLON, "':'")
	body := p.parseSuite()

	var handlers []*ast.ExceptHandler
	for p.at(token.EXCEPT) {
		handlers = append(handlers, p.parseExceptHandler())
	}
	var orelse, finalbody []ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		p.expect(token.COLON, "':'")
		orelse = p.parseSuite()
	}
	if p.at(token.FINALLY) {
		p.advance()
		p.expect(token.COLON, "':'")
		finalbody = p.parseSuite()
	}
	if len(handlers) == 0 && len(finalbody) == 0 {
		p.fail(InvalidSyntax)
	}
	return &ast.Try{Body: body, Handlers: handlers, OrElse: orelse, FinalBody: finalbody}
}

func (p *Parser) parseExceptHandler() *ast.ExceptHandler {
	p.expect(token.EXCEPT, "'except'")
	var typ ast.Expr
	name := ""
	if !p.at(token.COLON) {
		typ = p.parseTest()
		if p.at(token.AS) {
			p.advance()
			name = p.expect(token.IDENTIFIER, "name").Payload
		}
	}
	p.expect(token.COLON, "':'")
	body := p.parseSuite()
	return &ast.ExceptHandler{Type: typ, Name: name, Body: body}
}

func (p *Parser) parseDecorators() []ast.Expr {
	var decorators []ast.Expr
	for p.at(token.AT) {
		p.advance()
		decorators = append(decorators, p.parseTest())
		p.expect(token.NEWLINE, "newline")
	}
	return decorators
}

func (p *Parser) parseFunctionDef(decorators []ast.Expr) *ast.FunctionDef {
	p.expect(token.DEF, "'def'")
	name := p.expect(token.IDENTIFIER, "function name").Payload
	p.bind(name)
	p.expect(token.LPAREN, "'('")
	args := p.parseArgsList(token.RPAREN, true)
	p.expect(token.RPAREN, "')'")
	var returns ast.Expr
	if p.at(token.ARROW) {
		p.advance()
		returns = p.parseTest()
	}
	p.expect(token.COLON, "':'")
	body := p.parseSuite()
	return &ast.FunctionDef{Name: name, Args: args, Body: body, DecoratorList: decorators, Returns: returns}
}

func (p *Parser) parseClassDef(decorators []ast.Expr) *ast.ClassDef {
	p.expect(token.CLASS, "'class'")
	name := p.expect(token.IDENTIFIER, "class name").Payload
	p.bind(name)
	var bases []ast.Expr
	var keywords []*ast.Keyword
	if p.at(token.LPAREN) {
		p.advance()
		bases, keywords = p.parseCallArgs()
		p.expect(token.RPAREN, "')'")
	}
	p.expect(token.COLON, "':'")
	body := p.parseSuite()
	return &ast.ClassDef{Name: name, Bases: bases, Keywords: keywords, Body: body, DecoratorList: decorators}
}

// parseArgsList is spec §4.4's parse_argslist, used for both `def` and
// `lambda` parameter lists (lambda passes allowAnnotations=false since its
// terminator is ':', which also ends a NAME annotation). Enforces all four
// structural rules spec §4.4 names: only one `*`, only one `**`, no
// parameter after `**`, and no non-default positional following a default.
func (p *Parser) parseArgsList(term token.Kind, allowAnnotations bool) *ast.Arguments {
	args := &ast.Arguments{}
	kwOnly := false
	for !p.at(term) && p.err == nil {
		switch {
		case p.at(token.DOUBLESTAR):
			if args.Kwarg != nil {
				p.fail(InvalidSyntax)
				return args
			}
			p.advance()
			name := p.expect(token.IDENTIFIER, "parameter name").Payload
			var ann ast.Expr
			if allowAnnotations && p.at(token.COLON) {
				p.advance()
				ann = p.parseTest()
			}
			args.Kwarg = &ast.Arg{Name: name, Annotation: ann}
			if p.at(token.COMMA) {
				p.advance()
			}
		case p.at(token.STAR):
			if args.Kwarg != nil || kwOnly {
				p.fail(InvalidSyntax)
				return args
			}
			p.advance()
			if p.at(token.IDENTIFIER) {
				name := p.advance().Payload
				var ann ast.Expr
				if allowAnnotations && p.at(token.COLON) {
					p.advance()
					ann = p.parseTest()
				}
				args.Vararg = &ast.Arg{Name: name, Annotation: ann}
			}
			kwOnly = true
			if p.at(token.COMMA) {
				p.advance()
			}
		default:
			if args.Kwarg != nil {
				p.fail(InvalidSyntax)
				return args
			}
			name := p.expect(token.IDENTIFIER, "parameter name").Payload
			var ann ast.Expr
			if allowAnnotations && p.at(token.COLON) {
				p.advance()
				ann = p.parseTest()
			}
			arg := &ast.Arg{Name: name, Annotation: ann}
			var def ast.Expr
			if p.at(token.ASSIGN) {
				p.advance()
				def = p.parseTest()
			}
			if kwOnly {
				args.KwOnlyArgs = append(args.KwOnlyArgs, arg)
				args.KwDefaults = append(args.KwDefaults, def)
			} else {
				if def != nil {
					args.Defaults = append(args.Defaults, def)
				} else if len(args.Defaults) > 0 {
					p.fail(NonDefaultArgFollowsDefault)
					return args
				}
				args.Args = append(args.Args, arg)
			}
			if p.at(token.COMMA) {
				p.advance()
			}
		}
	}
	return args
}
