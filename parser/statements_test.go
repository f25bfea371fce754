package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/pyfront/ast"
	"github.com/opal-lang/pyfront/parser"
)

func TestBareReturn(t *testing.T) {
	mod, err := parser.Parse([]byte("def f():\n    return\n"))
	require.NoError(t, err)
	fn := mod.Body[0].(*ast.FunctionDef)
	ret := fn.Body[0].(*ast.Return)
	assert.Nil(t, ret.Value)
}

func TestChainedAssignment(t *testing.T) {
	mod, err := parser.Parse([]byte("a = b = c = value\n"))
	require.NoError(t, err)
	assign := mod.Body[0].(*ast.Assign)
	require.Len(t, assign.Targets, 3)
	for _, target := range assign.Targets {
		name, ok := target.(*ast.Name)
		require.True(t, ok)
		assert.Equal(t, ast.Store, name.Ctx)
	}
	value, ok := assign.Value.(*ast.Name)
	require.True(t, ok)
	assert.Equal(t, "value", value.Id)
}

func TestAugmentedAssignmentUsesAugStore(t *testing.T) {
	mod, err := parser.Parse([]byte("x += 1\n"))
	require.NoError(t, err)
	aug := mod.Body[0].(*ast.AugAssign)
	assert.Equal(t, ast.Add, aug.Op)
	name := aug.Target.(*ast.Name)
	assert.Equal(t, ast.AugStore, name.Ctx)
}

func TestAnnotatedAssignment(t *testing.T) {
	mod, err := parser.Parse([]byte("x: int = 1\n"))
	require.NoError(t, err)
	ann := mod.Body[0].(*ast.AnnAssign)
	assert.IsType(t, &ast.Name{}, ann.Annotation)
	require.NotNil(t, ann.Value)

	mod2, err := parser.Parse([]byte("x: int\n"))
	require.NoError(t, err)
	ann2 := mod2.Body[0].(*ast.AnnAssign)
	assert.Nil(t, ann2.Value)
}

func TestDeleteKeepsTargetsUncollapsed(t *testing.T) {
	mod, err := parser.Parse([]byte("del a, b\n"))
	require.NoError(t, err)
	del := mod.Body[0].(*ast.Delete)
	require.Len(t, del.Targets, 2)
	assert.IsType(t, &ast.Name{}, del.Targets[0])
	assert.IsType(t, &ast.Name{}, del.Targets[1])
}

func TestFunctionDefWithDefaultsVarargsKwargsAnnotationsAndDecorator(t *testing.T) {
	src := "@deco\n" +
		"def f(a, b: int = 1, *args, c, d=2, **kwargs) -> int:\n" +
		"    pass\n"
	mod, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	fn := mod.Body[0].(*ast.FunctionDef)
	require.Len(t, fn.DecoratorList, 1)
	require.NotNil(t, fn.Returns)
	require.Len(t, fn.Args.Args, 2)
	assert.NotNil(t, fn.Args.Args[1].Annotation)
	require.Len(t, fn.Args.Defaults, 1)
	require.NotNil(t, fn.Args.Vararg)
	require.Len(t, fn.Args.KwOnlyArgs, 2)
	require.Len(t, fn.Args.KwDefaults, 2)
	assert.Nil(t, fn.Args.KwDefaults[0])
	assert.NotNil(t, fn.Args.KwDefaults[1])
	require.NotNil(t, fn.Args.Kwarg)
}

func TestNonDefaultArgAfterDefaultIsAnError(t *testing.T) {
	_, err := parser.Parse([]byte("def f(a=1, b):\n    pass\n"))
	require.Error(t, err)
	pe, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.NonDefaultArgFollowsDefault, pe.Kind)
}

func TestSecondVarargIsAnError(t *testing.T) {
	_, err := parser.Parse([]byte("def f(*args, *more):\n    pass\n"))
	require.Error(t, err)
	pe, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.InvalidSyntax, pe.Kind)
}

func TestSecondBareStarIsAnError(t *testing.T) {
	_, err := parser.Parse([]byte("def f(*, a, *, b):\n    pass\n"))
	require.Error(t, err)
	pe, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.InvalidSyntax, pe.Kind)
}

func TestSecondKwargIsAnError(t *testing.T) {
	_, err := parser.Parse([]byte("def f(**a, **b):\n    pass\n"))
	require.Error(t, err)
	pe, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.InvalidSyntax, pe.Kind)
}

func TestParamAfterKwargIsAnError(t *testing.T) {
	_, err := parser.Parse([]byte("def f(**kwargs, x):\n    pass\n"))
	require.Error(t, err)
	pe, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.InvalidSyntax, pe.Kind)
}

func TestVarargAfterKwargIsAnError(t *testing.T) {
	_, err := parser.Parse([]byte("def f(**kwargs, *args):\n    pass\n"))
	require.Error(t, err)
	pe, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.InvalidSyntax, pe.Kind)
}

func TestClassDefWithBasesKeywordsAndDecorator(t *testing.T) {
	src := "@deco\n" +
		"class C(Base, metaclass=Meta):\n" +
		"    pass\n"
	mod, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	cls := mod.Body[0].(*ast.ClassDef)
	require.Len(t, cls.DecoratorList, 1)
	require.Len(t, cls.Bases, 1)
	require.Len(t, cls.Keywords, 1)
	assert.Equal(t, "metaclass", cls.Keywords[0].Arg)
}

func TestImportForms(t *testing.T) {
	mod, err := parser.Parse([]byte("import a.b.c as abc\n"))
	require.NoError(t, err)
	imp := mod.Body[0].(*ast.Import)
	require.Len(t, imp.Names, 1)
	assert.Equal(t, "a.b.c", imp.Names[0].Name)
	assert.Equal(t, "abc", imp.Names[0].AsName)
}

func TestImportFromLevelCounting(t *testing.T) {
	mod, err := parser.Parse([]byte("from . import x\n"))
	require.NoError(t, err)
	from := mod.Body[0].(*ast.ImportFrom)
	assert.Equal(t, 1, from.Level)
	assert.Equal(t, "", from.Module)

	mod2, err := parser.Parse([]byte("from ...pkg import x\n"))
	require.NoError(t, err)
	from2 := mod2.Body[0].(*ast.ImportFrom)
	assert.Equal(t, 3, from2.Level)
	assert.Equal(t, "pkg", from2.Module)

	mod3, err := parser.Parse([]byte("from pkg import *\n"))
	require.NoError(t, err)
	from3 := mod3.Body[0].(*ast.ImportFrom)
	require.Len(t, from3.Names, 1)
	assert.Equal(t, "*", from3.Names[0].Name)

	mod4, err := parser.Parse([]byte("from pkg import (a as x, b)\n"))
	require.NoError(t, err)
	from4 := mod4.Body[0].(*ast.ImportFrom)
	require.Len(t, from4.Names, 2)
	assert.Equal(t, "x", from4.Names[0].AsName)
}

func TestTryExceptElseFinally(t *testing.T) {
	src := "try:\n" +
		"    pass\n" +
		"except ValueError as e:\n" +
		"    pass\n" +
		"except:\n" +
		"    pass\n" +
		"else:\n" +
		"    pass\n" +
		"finally:\n" +
		"    pass\n"
	mod, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	try := mod.Body[0].(*ast.Try)
	require.Len(t, try.Handlers, 2)
	assert.NotNil(t, try.Handlers[0].Type)
	assert.Equal(t, "e", try.Handlers[0].Name)
	assert.Nil(t, try.Handlers[1].Type)
	assert.Len(t, try.OrElse, 1)
	assert.Len(t, try.FinalBody, 1)
}

func TestTryWithNoHandlersAndNoFinallyIsAnError(t *testing.T) {
	_, err := parser.Parse([]byte("try:\n    pass\n"))
	require.Error(t, err)
	pe, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, parser.InvalidSyntax, pe.Kind)
}

func TestTryWithOnlyFinallyIsValid(t *testing.T) {
	mod, err := parser.Parse([]byte("try:\n    pass\nfinally:\n    pass\n"))
	require.NoError(t, err)
	try := mod.Body[0].(*ast.Try)
	assert.Empty(t, try.Handlers)
	assert.Len(t, try.FinalBody, 1)
}

func TestWithMultipleItems(t *testing.T) {
	mod, err := parser.Parse([]byte("with a() as x, b():\n    pass\n"))
	require.NoError(t, err)
	with := mod.Body[0].(*ast.With)
	require.Len(t, with.Items, 2)
	require.NotNil(t, with.Items[0].OptionalVars)
	name := with.Items[0].OptionalVars.(*ast.Name)
	assert.Equal(t, ast.Store, name.Ctx)
	assert.Nil(t, with.Items[1].OptionalVars)
}

func TestGlobalAndNonlocal(t *testing.T) {
	mod, err := parser.Parse([]byte("global a, b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, mod.Body[0].(*ast.Global).Names)

	mod2, err := parser.Parse([]byte("def f():\n    nonlocal a, b\n"))
	require.NoError(t, err)
	fn := mod2.Body[0].(*ast.FunctionDef)
	assert.Equal(t, []string{"a", "b"}, fn.Body[0].(*ast.Nonlocal).Names)
}

func TestRaiseBareAndWithCause(t *testing.T) {
	mod, err := parser.Parse([]byte("raise\n"))
	require.NoError(t, err)
	r := mod.Body[0].(*ast.Raise)
	assert.Nil(t, r.Exc)
	assert.Nil(t, r.Cause)

	mod2, err := parser.Parse([]byte("raise ValueError(\"x\") from err\n"))
	require.NoError(t, err)
	r2 := mod2.Body[0].(*ast.Raise)
	assert.IsType(t, &ast.Call{}, r2.Exc)
	assert.IsType(t, &ast.Name{}, r2.Cause)
}

func TestAssertWithAndWithoutMessage(t *testing.T) {
	mod, err := parser.Parse([]byte("assert cond\n"))
	require.NoError(t, err)
	a := mod.Body[0].(*ast.Assert)
	assert.Nil(t, a.Msg)

	mod2, err := parser.Parse([]byte("assert cond, \"message\"\n"))
	require.NoError(t, err)
	a2 := mod2.Body[0].(*ast.Assert)
	require.NotNil(t, a2.Msg)
}

func TestElifChainsIntoNestedIf(t *testing.T) {
	src := "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n"
	mod, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	outer := mod.Body[0].(*ast.If)
	require.Len(t, outer.OrElse, 1)
	inner, ok := outer.OrElse[0].(*ast.If)
	require.True(t, ok, "elif should appear as a nested If in OrElse")
	assert.Len(t, inner.OrElse, 1)
}

func TestForTargetAndIterGetStoreAndLoadContext(t *testing.T) {
	mod, err := parser.Parse([]byte("for x, y in pairs:\n    pass\n"))
	require.NoError(t, err)
	f := mod.Body[0].(*ast.For)
	tup := f.Target.(*ast.Tuple)
	for _, el := range tup.Elts {
		assert.Equal(t, ast.Store, el.(*ast.Name).Ctx)
	}
	assert.Equal(t, ast.Load, f.Iter.(*ast.Name).Ctx)
}
