package ast

// Helper constructors used by tests to build fragments tersely, in the
// spirit of the teacher's ast.Var/ast.Cmd/ast.Id helpers.

// NameExpr builds a Name expression with the given context.
func NameExpr(id string, ctx ExprContext) *Name {
	return &Name{Id: id, Ctx: ctx}
}

// LoadName is a convenience for the overwhelmingly common case of a
// load-context Name.
func LoadName(id string) *Name {
	return &Name{Id: id, Ctx: Load}
}

// StrLit builds a string literal expression.
func StrLit(value string) *Str {
	return &Str{Value: value}
}

// IntLit builds a decimal integer literal from already-scanned digit text.
func IntLit(text string) *Num {
	return &Num{Kind: DecInteger, Text: text}
}

// BinExpr builds a binary operation.
func BinExpr(left Expr, op Operator, right Expr) *BinOp {
	return &BinOp{Left: left, Op: op, Right: right}
}

// Bool builds a NameConstant for True or False.
func Bool(v bool) *NameConstant {
	if v {
		return &NameConstant{Value: SingletonTrue}
	}
	return &NameConstant{Value: SingletonFalse}
}

// NoneLit builds a NameConstant for None.
func NoneLit() *NameConstant {
	return &NameConstant{Value: SingletonNone}
}
