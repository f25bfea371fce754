package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented, Go-syntax-like rendering of mod to w — the
// `pyfront ast` driver's default text format, grounded in the same
// depth-first tree-walk the teacher's cli.DisplayPlan uses for plans.
func Dump(w io.Writer, mod *Module) error {
	d := &dumper{w: w}
	fmt.Fprintf(w, "Module digest=%x\n", mod.Digest)
	d.stmts(mod.Body, 1)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, err := fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
	if err != nil {
		d.err = err
	}
}

func (d *dumper) stmts(list []Stmt, depth int) {
	for _, s := range list {
		d.stmt(s, depth)
	}
}

func (d *dumper) stmt(s Stmt, depth int) {
	switch n := s.(type) {
	case *FunctionDef:
		d.line(depth, "FunctionDef %s decorators=%d", n.Name, len(n.DecoratorList))
		d.line(depth+1, "args:")
		d.arguments(n.Args, depth+2)
		if n.Returns != nil {
			d.line(depth+1, "returns:")
			d.expr(n.Returns, depth+2)
		}
		d.line(depth+1, "body:")
		d.stmts(n.Body, depth+2)
	case *ClassDef:
		d.line(depth, "ClassDef %s bases=%d decorators=%d", n.Name, len(n.Bases), len(n.DecoratorList))
		d.stmts(n.Body, depth+1)
	case *Return:
		d.line(depth, "Return")
		d.exprOrNone(n.Value, depth+1)
	case *Delete:
		d.line(depth, "Delete")
		for _, t := range n.Targets {
			d.expr(t, depth+1)
		}
	case *Assign:
		d.line(depth, "Assign targets=%d", len(n.Targets))
		for _, t := range n.Targets {
			d.expr(t, depth+1)
		}
		d.line(depth+1, "value:")
		d.expr(n.Value, depth+2)
	case *AugAssign:
		d.line(depth, "AugAssign op=%s", n.Op)
		d.expr(n.Target, depth+1)
		d.expr(n.Value, depth+1)
	case *AnnAssign:
		d.line(depth, "AnnAssign")
		d.expr(n.Target, depth+1)
		d.expr(n.Annotation, depth+1)
		d.exprOrNone(n.Value, depth+1)
	case *For:
		d.line(depth, "For")
		d.line(depth+1, "target:")
		d.expr(n.Target, depth+2)
		d.line(depth+1, "iter:")
		d.expr(n.Iter, depth+2)
		d.line(depth+1, "body:")
		d.stmts(n.Body, depth+2)
		if len(n.OrElse) > 0 {
			d.line(depth+1, "orelse:")
			d.stmts(n.OrElse, depth+2)
		}
	case *While:
		d.line(depth, "While")
		d.expr(n.Test, depth+1)
		d.stmts(n.Body, depth+1)
		if len(n.OrElse) > 0 {
			d.line(depth+1, "orelse:")
			d.stmts(n.OrElse, depth+2)
		}
	case *If:
		d.line(depth, "If")
		d.expr(n.Test, depth+1)
		d.line(depth+1, "body:")
		d.stmts(n.Body, depth+2)
		if len(n.OrElse) > 0 {
			d.line(depth+1, "orelse:")
			d.stmts(n.OrElse, depth+2)
		}
	case *With:
		d.line(depth, "With items=%d", len(n.Items))
		for _, it := range n.Items {
			d.expr(it.ContextExpr, depth+1)
			d.exprOrNone(it.OptionalVars, depth+1)
		}
		d.stmts(n.Body, depth+1)
	case *Raise:
		d.line(depth, "Raise")
		d.exprOrNone(n.Exc, depth+1)
		d.exprOrNone(n.Cause, depth+1)
	case *Try:
		d.line(depth, "Try handlers=%d", len(n.Handlers))
		d.stmts(n.Body, depth+1)
		for _, h := range n.Handlers {
			d.line(depth+1, "except name=%q", h.Name)
			d.exprOrNone(h.Type, depth+2)
			d.stmts(h.Body, depth+2)
		}
		if len(n.OrElse) > 0 {
			d.line(depth+1, "orelse:")
			d.stmts(n.OrElse, depth+2)
		}
		if len(n.FinalBody) > 0 {
			d.line(depth+1, "finalbody:")
			d.stmts(n.FinalBody, depth+2)
		}
	case *Assert:
		d.line(depth, "Assert")
		d.expr(n.Test, depth+1)
		d.exprOrNone(n.Msg, depth+1)
	case *Import:
		d.line(depth, "Import %s", aliasList(n.Names))
	case *ImportFrom:
		d.line(depth, "ImportFrom module=%q level=%d %s", n.Module, n.Level, aliasList(n.Names))
	case *Global:
		d.line(depth, "Global %s", strings.Join(n.Names, ", "))
	case *Nonlocal:
		d.line(depth, "Nonlocal %s", strings.Join(n.Names, ", "))
	case *ExprStmt:
		d.line(depth, "ExprStmt")
		d.expr(n.Value, depth+1)
	case *Pass:
		d.line(depth, "Pass")
	case *Break:
		d.line(depth, "Break")
	case *Continue:
		d.line(depth, "Continue")
	default:
		d.line(depth, "<unknown stmt %T>", s)
	}
}

func (d *dumper) exprOrNone(e Expr, depth int) {
	if e == nil {
		d.line(depth, "None")
		return
	}
	d.expr(e, depth)
}

func (d *dumper) expr(e Expr, depth int) {
	switch n := e.(type) {
	case *BoolOp:
		d.line(depth, "BoolOp op=%s", n.Op)
		for _, v := range n.Values {
			d.expr(v, depth+1)
		}
	case *BinOp:
		d.line(depth, "BinOp op=%s", n.Op)
		d.expr(n.Left, depth+1)
		d.expr(n.Right, depth+1)
	case *UnaryOp:
		d.line(depth, "UnaryOp op=%s", n.Op)
		d.expr(n.Operand, depth+1)
	case *Lambda:
		d.line(depth, "Lambda")
		d.arguments(n.Args, depth+1)
		d.expr(n.Body, depth+1)
	case *IfExp:
		d.line(depth, "IfExp")
		d.expr(n.Test, depth+1)
		d.expr(n.Body, depth+1)
		d.expr(n.OrElse, depth+1)
	case *Dict:
		d.line(depth, "Dict entries=%d", len(n.Keys))
		for i := range n.Keys {
			d.exprOrNone(n.Keys[i], depth+1)
			d.expr(n.Values[i], depth+1)
		}
	case *Set:
		d.line(depth, "Set")
		for _, el := range n.Elts {
			d.expr(el, depth+1)
		}
	case *ListComp:
		d.line(depth, "ListComp")
		d.expr(n.Elt, depth+1)
		d.comprehensions(n.Generators, depth+1)
	case *SetComp:
		d.line(depth, "SetComp")
		d.expr(n.Elt, depth+1)
		d.comprehensions(n.Generators, depth+1)
	case *DictComp:
		d.line(depth, "DictComp")
		d.expr(n.Key, depth+1)
		d.expr(n.Value, depth+1)
		d.comprehensions(n.Generators, depth+1)
	case *GeneratorExp:
		d.line(depth, "GeneratorExp")
		d.expr(n.Elt, depth+1)
		d.comprehensions(n.Generators, depth+1)
	case *Yield:
		d.line(depth, "Yield")
		d.exprOrNone(n.Value, depth+1)
	case *YieldFrom:
		d.line(depth, "YieldFrom")
		d.expr(n.Value, depth+1)
	case *Compare:
		d.line(depth, "Compare ops=%v", n.Ops)
		d.expr(n.Left, depth+1)
		for _, c := range n.Comparators {
			d.expr(c, depth+1)
		}
	case *Call:
		d.line(depth, "Call args=%d keywords=%d", len(n.Args), len(n.Keywords))
		d.expr(n.Func, depth+1)
		for _, a := range n.Args {
			d.expr(a, depth+1)
		}
		for _, kw := range n.Keywords {
			d.line(depth+1, "keyword=%q", kw.Arg)
			d.expr(kw.Value, depth+2)
		}
	case *Num:
		d.line(depth, "Num kind=%s text=%q", n.Kind, n.Text)
	case *Str:
		d.line(depth, "Str value=%q", n.Value)
	case *NameConstant:
		d.line(depth, "NameConstant %s", n.Value)
	case *Ellipsis:
		d.line(depth, "Ellipsis")
	case *Attribute:
		d.line(depth, "Attribute attr=%s ctx=%s", n.Attr, n.Ctx)
		d.expr(n.Value, depth+1)
	case *Subscript:
		d.line(depth, "Subscript ctx=%s", n.Ctx)
		d.expr(n.Value, depth+1)
		d.slice(n.Slice, depth+1)
	case *Starred:
		d.line(depth, "Starred ctx=%s", n.Ctx)
		d.expr(n.Value, depth+1)
	case *Name:
		d.line(depth, "Name id=%s ctx=%s", n.Id, n.Ctx)
	case *List:
		d.line(depth, "List ctx=%s", n.Ctx)
		for _, el := range n.Elts {
			d.expr(el, depth+1)
		}
	case *Tuple:
		d.line(depth, "Tuple ctx=%s", n.Ctx)
		for _, el := range n.Elts {
			d.expr(el, depth+1)
		}
	default:
		d.line(depth, "<unknown expr %T>", e)
	}
}

func (d *dumper) slice(s Slicer, depth int) {
	switch n := s.(type) {
	case *SliceRange:
		d.line(depth, "SliceRange")
		d.exprOrNone(n.Lower, depth+1)
		d.exprOrNone(n.Upper, depth+1)
		d.exprOrNone(n.Step, depth+1)
	case *ExtSlice:
		d.line(depth, "ExtSlice dims=%d", len(n.Dims))
		for _, dim := range n.Dims {
			d.slice(dim, depth+1)
		}
	case *Index:
		d.line(depth, "Index")
		d.expr(n.Value, depth+1)
	default:
		d.line(depth, "<unknown slice %T>", s)
	}
}

func (d *dumper) comprehensions(gens []*Comprehension, depth int) {
	for _, g := range gens {
		d.line(depth, "Comprehension ifs=%d", len(g.Ifs))
		d.expr(g.Target, depth+1)
		d.expr(g.Iter, depth+1)
		for _, cond := range g.Ifs {
			d.expr(cond, depth+1)
		}
	}
}

func (d *dumper) arguments(a *Arguments, depth int) {
	if a == nil {
		return
	}
	for _, p := range a.Args {
		d.line(depth, "arg %s", p.Name)
	}
	if a.Vararg != nil {
		d.line(depth, "*%s", a.Vararg.Name)
	}
	for _, p := range a.KwOnlyArgs {
		d.line(depth, "kwonly %s", p.Name)
	}
	if a.Kwarg != nil {
		d.line(depth, "**%s", a.Kwarg.Name)
	}
}

func aliasList(names []*Alias) string {
	parts := make([]string, len(names))
	for i, a := range names {
		if a.AsName != "" {
			parts[i] = fmt.Sprintf("%s as %s", a.Name, a.AsName)
		} else {
			parts[i] = a.Name
		}
	}
	return strings.Join(parts, ", ")
}
