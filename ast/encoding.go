package ast

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint computes the BLAKE2b-256 digest of raw source bytes, used to
// populate Module.Digest (SPEC_FULL §2 item 7) so a cache or test harness
// can key memoized lex/parse results by source identity.
func Fingerprint(source []byte) [32]byte {
	return blake2b.Sum256(source)
}

// canonicalModule is a CBOR-friendly mirror of Module that encodes the
// closed Stmt/Expr unions as explicit (Type, Fields) pairs, since CBOR has
// no notion of a Go interface. It exists only for canonical encoding and is
// never used outside this file.
type canonicalModule struct {
	Digest string           `cbor:"digest"`
	Body   []canonicalValue `cbor:"body"`
}

type canonicalValue struct {
	Type   string                    `cbor:"type"`
	Fields map[string]interface{}    `cbor:"fields,omitempty"`
	List   []canonicalValue          `cbor:"list,omitempty"`
}

// Canonicalize converts a Module to a deterministic, CBOR-encodable form
// (SPEC_FULL §2 item 8) — the same two-step "build canonical struct, then
// CBOR-encode with CanonicalEncOptions" shape the teacher's planfmt package
// uses for plan digests.
func Canonicalize(m *Module) canonicalModule {
	cm := canonicalModule{Digest: fmt.Sprintf("%x", m.Digest)}
	for _, s := range m.Body {
		cm.Body = append(cm.Body, canonicalizeStmt(s))
	}
	return cm
}

// MarshalCanonicalCBOR encodes the Module deterministically: identical
// trees always produce byte-identical output, regardless of map iteration
// order or struct field order, using cbor.CanonicalEncOptions the same way
// the teacher's CanonicalPlan.MarshalBinary does.
func MarshalCanonicalCBOR(m *Module) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("pyfront/ast: failed to create CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(Canonicalize(m))
	if err != nil {
		return nil, fmt.Errorf("pyfront/ast: CBOR encoding failed: %w", err)
	}
	return data, nil
}

func canonicalizeStmt(s Stmt) canonicalValue {
	switch n := s.(type) {
	case *FunctionDef:
		return canonicalValue{Type: "FunctionDef", Fields: map[string]interface{}{
			"name":     n.Name,
			"returns":  canonicalizeExprOrNil(n.Returns),
			"args":     canonicalizeArguments(n.Args),
			"decos":    canonicalizeExprs(n.DecoratorList),
		}, List: canonicalizeStmts(n.Body)}
	case *ClassDef:
		return canonicalValue{Type: "ClassDef", Fields: map[string]interface{}{
			"name":  n.Name,
			"bases": canonicalizeExprs(n.Bases),
			"decos": canonicalizeExprs(n.DecoratorList),
		}, List: canonicalizeStmts(n.Body)}
	case *Return:
		return canonicalValue{Type: "Return", Fields: map[string]interface{}{"value": canonicalizeExprOrNil(n.Value)}}
	case *Delete:
		return canonicalValue{Type: "Delete", Fields: map[string]interface{}{"targets": canonicalizeExprs(n.Targets)}}
	case *Assign:
		return canonicalValue{Type: "Assign", Fields: map[string]interface{}{
			"targets": canonicalizeExprs(n.Targets),
			"value":   canonicalizeExpr(n.Value),
		}}
	case *AugAssign:
		return canonicalValue{Type: "AugAssign", Fields: map[string]interface{}{
			"target": canonicalizeExpr(n.Target),
			"op":     int(n.Op),
			"value":  canonicalizeExpr(n.Value),
		}}
	case *AnnAssign:
		return canonicalValue{Type: "AnnAssign", Fields: map[string]interface{}{
			"target":     canonicalizeExpr(n.Target),
			"annotation": canonicalizeExpr(n.Annotation),
			"value":      canonicalizeExprOrNil(n.Value),
		}}
	case *For:
		return canonicalValue{Type: "For", Fields: map[string]interface{}{
			"target": canonicalizeExpr(n.Target),
			"iter":   canonicalizeExpr(n.Iter),
			"orelse": canonicalizeStmts(n.OrElse),
		}, List: canonicalizeStmts(n.Body)}
	case *While:
		return canonicalValue{Type: "While", Fields: map[string]interface{}{
			"test":   canonicalizeExpr(n.Test),
			"orelse": canonicalizeStmts(n.OrElse),
		}, List: canonicalizeStmts(n.Body)}
	case *If:
		return canonicalValue{Type: "If", Fields: map[string]interface{}{
			"test":   canonicalizeExpr(n.Test),
			"orelse": canonicalizeStmts(n.OrElse),
		}, List: canonicalizeStmts(n.Body)}
	case *With:
		items := make([]canonicalValue, len(n.Items))
		for i, it := range n.Items {
			items[i] = canonicalValue{Type: "WithItem", Fields: map[string]interface{}{
				"context": canonicalizeExpr(it.ContextExpr),
				"vars":    canonicalizeExprOrNil(it.OptionalVars),
			}}
		}
		return canonicalValue{Type: "With", Fields: map[string]interface{}{}, List: append(items, canonicalizeStmts(n.Body)...)}
	case *Raise:
		return canonicalValue{Type: "Raise", Fields: map[string]interface{}{
			"exc":   canonicalizeExprOrNil(n.Exc),
			"cause": canonicalizeExprOrNil(n.Cause),
		}}
	case *Try:
		handlers := make([]canonicalValue, len(n.Handlers))
		for i, h := range n.Handlers {
			handlers[i] = canonicalValue{Type: "ExceptHandler", Fields: map[string]interface{}{
				"etype": canonicalizeExprOrNil(h.Type),
				"name":  h.Name,
			}, List: canonicalizeStmts(h.Body)}
		}
		return canonicalValue{Type: "Try", Fields: map[string]interface{}{
			"orelse":    canonicalizeStmts(n.OrElse),
			"finalbody": canonicalizeStmts(n.FinalBody),
			"handlers":  handlers,
		}, List: canonicalizeStmts(n.Body)}
	case *Assert:
		return canonicalValue{Type: "Assert", Fields: map[string]interface{}{
			"test": canonicalizeExpr(n.Test),
			"msg":  canonicalizeExprOrNil(n.Msg),
		}}
	case *Import:
		return canonicalValue{Type: "Import", Fields: map[string]interface{}{"names": canonicalizeAliases(n.Names)}}
	case *ImportFrom:
		return canonicalValue{Type: "ImportFrom", Fields: map[string]interface{}{
			"module": n.Module,
			"level":  n.Level,
			"names":  canonicalizeAliases(n.Names),
		}}
	case *Global:
		return canonicalValue{Type: "Global", Fields: map[string]interface{}{"names": n.Names}}
	case *Nonlocal:
		return canonicalValue{Type: "Nonlocal", Fields: map[string]interface{}{"names": n.Names}}
	case *ExprStmt:
		return canonicalValue{Type: "ExprStmt", Fields: map[string]interface{}{"value": canonicalizeExpr(n.Value)}}
	case *Pass:
		return canonicalValue{Type: "Pass"}
	case *Break:
		return canonicalValue{Type: "Break"}
	case *Continue:
		return canonicalValue{Type: "Continue"}
	default:
		return canonicalValue{Type: "Unknown"}
	}
}

func canonicalizeStmts(stmts []Stmt) []canonicalValue {
	out := make([]canonicalValue, len(stmts))
	for i, s := range stmts {
		out[i] = canonicalizeStmt(s)
	}
	return out
}

func canonicalizeAliases(aliases []*Alias) []map[string]string {
	out := make([]map[string]string, len(aliases))
	for i, a := range aliases {
		out[i] = map[string]string{"name": a.Name, "asname": a.AsName}
	}
	return out
}

func canonicalizeArguments(a *Arguments) canonicalValue {
	if a == nil {
		return canonicalValue{Type: "Arguments"}
	}
	fields := map[string]interface{}{
		"kwDefaults": canonicalizeExprs(a.KwDefaults),
		"defaults":   canonicalizeExprs(a.Defaults),
	}
	if a.Vararg != nil {
		fields["vararg"] = a.Vararg.Name
	}
	if a.Kwarg != nil {
		fields["kwarg"] = a.Kwarg.Name
	}
	var names []string
	for _, p := range a.Args {
		names = append(names, p.Name)
	}
	fields["args"] = names
	var kwNames []string
	for _, p := range a.KwOnlyArgs {
		kwNames = append(kwNames, p.Name)
	}
	fields["kwonlyargs"] = kwNames
	return canonicalValue{Type: "Arguments", Fields: fields}
}

func canonicalizeExprOrNil(e Expr) canonicalValue {
	if e == nil {
		return canonicalValue{Type: "None"}
	}
	return canonicalizeExpr(e)
}

func canonicalizeExprs(exprs []Expr) []canonicalValue {
	out := make([]canonicalValue, len(exprs))
	for i, e := range exprs {
		out[i] = canonicalizeExprOrNil(e)
	}
	return out
}

func canonicalizeExpr(e Expr) canonicalValue {
	switch n := e.(type) {
	case *BoolOp:
		return canonicalValue{Type: "BoolOp", Fields: map[string]interface{}{"op": int(n.Op)}, List: canonicalizeExprs(n.Values)}
	case *BinOp:
		return canonicalValue{Type: "BinOp", Fields: map[string]interface{}{
			"op": int(n.Op), "left": canonicalizeExpr(n.Left), "right": canonicalizeExpr(n.Right),
		}}
	case *UnaryOp:
		return canonicalValue{Type: "UnaryOp", Fields: map[string]interface{}{"op": int(n.Op), "operand": canonicalizeExpr(n.Operand)}}
	case *Lambda:
		return canonicalValue{Type: "Lambda", Fields: map[string]interface{}{"args": canonicalizeArguments(n.Args), "body": canonicalizeExpr(n.Body)}}
	case *IfExp:
		return canonicalValue{Type: "IfExp", Fields: map[string]interface{}{
			"test": canonicalizeExpr(n.Test), "body": canonicalizeExpr(n.Body), "orelse": canonicalizeExpr(n.OrElse),
		}}
	case *Dict:
		return canonicalValue{Type: "Dict", Fields: map[string]interface{}{
			"keys": canonicalizeExprs(n.Keys), "values": canonicalizeExprs(n.Values),
		}}
	case *Set:
		return canonicalValue{Type: "Set", List: canonicalizeExprs(n.Elts)}
	case *ListComp:
		return canonicalValue{Type: "ListComp", Fields: map[string]interface{}{
			"elt": canonicalizeExpr(n.Elt), "gens": canonicalizeComprehensions(n.Generators),
		}}
	case *SetComp:
		return canonicalValue{Type: "SetComp", Fields: map[string]interface{}{
			"elt": canonicalizeExpr(n.Elt), "gens": canonicalizeComprehensions(n.Generators),
		}}
	case *DictComp:
		return canonicalValue{Type: "DictComp", Fields: map[string]interface{}{
			"key": canonicalizeExpr(n.Key), "value": canonicalizeExpr(n.Value), "gens": canonicalizeComprehensions(n.Generators),
		}}
	case *GeneratorExp:
		return canonicalValue{Type: "GeneratorExp", Fields: map[string]interface{}{
			"elt": canonicalizeExpr(n.Elt), "gens": canonicalizeComprehensions(n.Generators),
		}}
	case *Yield:
		return canonicalValue{Type: "Yield", Fields: map[string]interface{}{"value": canonicalizeExprOrNil(n.Value)}}
	case *YieldFrom:
		return canonicalValue{Type: "YieldFrom", Fields: map[string]interface{}{"value": canonicalizeExpr(n.Value)}}
	case *Compare:
		ops := make([]int, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = int(op)
		}
		return canonicalValue{Type: "Compare", Fields: map[string]interface{}{
			"left": canonicalizeExpr(n.Left), "ops": ops, "comparators": canonicalizeExprs(n.Comparators),
		}}
	case *Call:
		kws := make([]canonicalValue, len(n.Keywords))
		for i, kw := range n.Keywords {
			kws[i] = canonicalValue{Type: "Keyword", Fields: map[string]interface{}{"arg": kw.Arg, "value": canonicalizeExpr(kw.Value)}}
		}
		return canonicalValue{Type: "Call", Fields: map[string]interface{}{
			"func": canonicalizeExpr(n.Func), "args": canonicalizeExprs(n.Args), "keywords": kws,
		}}
	case *Num:
		return canonicalValue{Type: "Num", Fields: map[string]interface{}{"kind": int(n.Kind), "text": n.Text}}
	case *Str:
		return canonicalValue{Type: "Str", Fields: map[string]interface{}{"value": n.Value}}
	case *NameConstant:
		return canonicalValue{Type: "NameConstant", Fields: map[string]interface{}{"value": int(n.Value)}}
	case *Ellipsis:
		return canonicalValue{Type: "Ellipsis"}
	case *Attribute:
		return canonicalValue{Type: "Attribute", Fields: map[string]interface{}{
			"value": canonicalizeExpr(n.Value), "attr": n.Attr, "ctx": int(n.Ctx),
		}}
	case *Subscript:
		return canonicalValue{Type: "Subscript", Fields: map[string]interface{}{
			"value": canonicalizeExpr(n.Value), "slice": canonicalizeSlice(n.Slice), "ctx": int(n.Ctx),
		}}
	case *Starred:
		return canonicalValue{Type: "Starred", Fields: map[string]interface{}{"value": canonicalizeExpr(n.Value), "ctx": int(n.Ctx)}}
	case *Name:
		return canonicalValue{Type: "Name", Fields: map[string]interface{}{"id": n.Id, "ctx": int(n.Ctx)}}
	case *List:
		return canonicalValue{Type: "List", Fields: map[string]interface{}{"ctx": int(n.Ctx)}, List: canonicalizeExprs(n.Elts)}
	case *Tuple:
		return canonicalValue{Type: "Tuple", Fields: map[string]interface{}{"ctx": int(n.Ctx)}, List: canonicalizeExprs(n.Elts)}
	default:
		return canonicalValue{Type: "Unknown"}
	}
}

func canonicalizeComprehensions(gens []*Comprehension) []canonicalValue {
	out := make([]canonicalValue, len(gens))
	for i, g := range gens {
		out[i] = canonicalValue{Type: "Comprehension", Fields: map[string]interface{}{
			"target": canonicalizeExpr(g.Target), "iter": canonicalizeExpr(g.Iter), "ifs": canonicalizeExprs(g.Ifs),
		}}
	}
	return out
}

func canonicalizeSlice(s Slicer) canonicalValue {
	switch n := s.(type) {
	case *SliceRange:
		return canonicalValue{Type: "SliceRange", Fields: map[string]interface{}{
			"lower": canonicalizeExprOrNil(n.Lower), "upper": canonicalizeExprOrNil(n.Upper), "step": canonicalizeExprOrNil(n.Step),
		}}
	case *ExtSlice:
		dims := make([]canonicalValue, len(n.Dims))
		for i, d := range n.Dims {
			dims[i] = canonicalizeSlice(d)
		}
		return canonicalValue{Type: "ExtSlice", List: dims}
	case *Index:
		return canonicalValue{Type: "Index", Fields: map[string]interface{}{"value": canonicalizeExpr(n.Value)}}
	default:
		return canonicalValue{Type: "Unknown"}
	}
}
