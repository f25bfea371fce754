package parser

import (
	"sort"

	"github.com/opal-lang/pyfront/ast"
)

// scope.go tracks, best-effort, the identifiers bound by an enclosing
// def/class/assignment in the current suite (SPEC_FULL §3), so a
// misspelled identifier can be suggested against real names in scope and
// not just the keyword table. This is purely a diagnostic aid: it never
// affects whether parsing succeeds.

// pushScope opens a new suite-local binding set, used around parseSuite
// so a block's own assignments don't leak suggestions into a sibling
// block that hasn't run yet.
func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, make(map[string]struct{}))
}

// popScope closes the innermost suite's binding set. The module-level
// scope is never popped.
func (p *Parser) popScope() {
	if len(p.scopes) > 1 {
		p.scopes = p.scopes[:len(p.scopes)-1]
	}
}

// bind records name as bound in the innermost open suite.
func (p *Parser) bind(name string) {
	if name == "" || len(p.scopes) == 0 {
		return
	}
	p.scopes[len(p.scopes)-1][name] = struct{}{}
}

// bindTargets walks an assignment target (a Name, or a Tuple/List/Starred
// of them) and binds every simple Name it contains, mirroring setContext's
// traversal of the same shapes.
func (p *Parser) bindTargets(targets []ast.Expr) {
	for _, t := range targets {
		p.bindTarget(t)
	}
}

func (p *Parser) bindTarget(e ast.Expr) {
	switch v := e.(type) {
	case *ast.Name:
		p.bind(v.Id)
	case *ast.Tuple:
		for _, el := range v.Elts {
			p.bindTarget(el)
		}
	case *ast.List:
		for _, el := range v.Elts {
			p.bindTarget(el)
		}
	case *ast.Starred:
		p.bindTarget(v.Value)
	}
}

// boundNames flattens every open scope (the whole enclosing chain, since
// an inner suite can still see names an outer one already bound) into a
// deduplicated, sorted slice suitable for fuzzy ranking.
func (p *Parser) boundNames() []string {
	seen := make(map[string]struct{})
	for _, scope := range p.scopes {
		for name := range scope {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
