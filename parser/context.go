package parser

import (
	"github.com/opal-lang/pyfront/ast"
	"github.com/opal-lang/pyfront/token"
)

// setContext assigns ctx to e and, for the composite expression forms that
// carry one, to every element reachable through it — e.g. the Store context
// on an assignment target propagates into the names inside a tuple target.
func setContext(e ast.Expr, ctx ast.ExprContext) {
	switch v := e.(type) {
	case *ast.Name:
		v.Ctx = ctx
	case *ast.Tuple:
		v.Ctx = ctx
		for _, el := range v.Elts {
			setContext(el, ctx)
		}
	case *ast.List:
		v.Ctx = ctx
		for _, el := range v.Elts {
			setContext(el, ctx)
		}
	case *ast.Starred:
		v.Ctx = ctx
		setContext(v.Value, ctx)
	case *ast.Attribute:
		v.Ctx = ctx
	case *ast.Subscript:
		v.Ctx = ctx
	}
}

func mapNumberKind(k token.Kind) ast.NumberKind {
	switch k {
	case token.DEC_INTEGER:
		return ast.DecInteger
	case token.BIN_INTEGER:
		return ast.BinInteger
	case token.OCT_INTEGER:
		return ast.OctInteger
	case token.HEX_INTEGER:
		return ast.HexInteger
	case token.FLOAT:
		return ast.Float
	case token.IMAGINARY:
		return ast.Imaginary
	default:
		return ast.DecInteger
	}
}

func mapOperatorKind(k token.Kind) ast.Operator {
	switch k {
	case token.PLUS:
		return ast.Add
	case token.MINUS:
		return ast.Sub
	case token.STAR:
		return ast.Mult
	case token.AT:
		return ast.MatMult
	case token.SLASH:
		return ast.Div
	case token.PERCENT:
		return ast.Mod
	case token.DOUBLESTAR:
		return ast.Pow
	case token.LSHIFT:
		return ast.LShift
	case token.RSHIFT:
		return ast.RShift
	case token.PIPE:
		return ast.BitOr
	case token.CARET:
		return ast.BitXor
	case token.AMP:
		return ast.BitAnd
	case token.DOUBLESLASH:
		return ast.FloorDiv
	default:
		return ast.Add
	}
}

func mapUnaryKind(k token.Kind) ast.UnaryOperator {
	switch k {
	case token.PLUS:
		return ast.UAdd
	case token.MINUS:
		return ast.USub
	case token.TILDE:
		return ast.Invert
	default:
		return ast.UAdd
	}
}
