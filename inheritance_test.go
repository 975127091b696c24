package pymeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubclassInheritsUndefinedRules(t *testing.T) {
	base, err := MakeGrammarFromSource("Base", `greeting ::= "hi";`, nil)
	require.NoError(t, err)

	child, err := MakeSubclassFromSource(base, "Child", `shout ::= "HI";`, nil)
	require.NoError(t, err)

	g := child.New(NewListInput([]Value{"hi"}))
	v, ok, _ := g.Apply("greeting")
	require.True(t, ok)
	assert.Equal(t, "hi", v)
}

func TestSubclassOverridesParentRule(t *testing.T) {
	base, err := MakeGrammarFromSource("Base", `greeting ::= "hi";`, nil)
	require.NoError(t, err)

	child, err := MakeSubclassFromSource(base, "Child", `greeting ::= "yo";`, nil)
	require.NoError(t, err)

	g := child.New(NewListInput([]Value{"yo"}))
	v, ok, _ := g.Apply("greeting")
	require.True(t, ok)
	assert.Equal(t, "yo", v)

	base2 := base.New(NewListInput([]Value{"yo"}))
	_, ok, _ = base2.Apply("greeting")
	assert.False(t, ok, "overriding a subclass rule must not mutate the parent")
}

func TestSubclassRuleCanFallBackToSuper(t *testing.T) {
	base, err := MakeGrammarFromSource("Base", `greeting ::= "hi";`, nil)
	require.NoError(t, err)

	child, err := MakeSubclassFromSource(base, "Child", `greeting ::= <super> | "yo";`, nil)
	require.NoError(t, err)

	g1 := child.New(NewListInput([]Value{"hi"}))
	v, ok, _ := g1.Apply("greeting")
	require.True(t, ok)
	assert.Equal(t, "hi", v)

	g2 := child.New(NewListInput([]Value{"yo"}))
	v, ok, _ = g2.Apply("greeting")
	require.True(t, ok)
	assert.Equal(t, "yo", v)
}

func TestThreeLevelInheritanceChainsSuper(t *testing.T) {
	grandparent, err := MakeGrammarFromSource("Grandparent", `word ::= 'a';`, nil)
	require.NoError(t, err)

	parent, err := MakeSubclassFromSource(grandparent, "Parent", `word ::= <super> | 'b';`, nil)
	require.NoError(t, err)

	child, err := MakeSubclassFromSource(parent, "Child", `word ::= <super> | 'c';`, nil)
	require.NoError(t, err)

	for _, input := range []string{"a", "b", "c"} {
		g := child.New(NewStringInput(input))
		v, ok, _ := g.Apply("word")
		require.True(t, ok, "expected %q to match", input)
		assert.Equal(t, input, v)
	}

	g := child.New(NewStringInput("d"))
	_, ok, _ := g.Apply("word")
	assert.False(t, ok)
}

func TestSubclassInheritsGrandparentGlobals(t *testing.T) {
	grandparent, err := MakeGrammarFromSource("Grandparent", `word ::= 'a';`, map[string]Value{"target": "a"})
	require.NoError(t, err)

	parent, err := MakeSubclassFromSource(grandparent, "Parent", `word ::= <super>;`, nil)
	require.NoError(t, err)

	child, err := MakeSubclassFromSource(parent, "Child", `check ::= 'a':x ?(x == target) -> x;`, nil)
	require.NoError(t, err)

	g := child.New(NewStringInput("a"))
	v, ok, _ := g.Apply("check")
	require.True(t, ok, "child rule's predicate must see the grandparent's globals, forwarded unchanged through the chain")
	assert.Equal(t, "a", v)
}

func TestSubclassGlobalsOverrideAncestorOfSameName(t *testing.T) {
	grandparent, err := MakeGrammarFromSource("Grandparent", `word ::= 'a';`, map[string]Value{"target": "a"})
	require.NoError(t, err)

	parent, err := MakeSubclassFromSource(grandparent, "Parent", `word ::= <super>;`, map[string]Value{"target": "b"})
	require.NoError(t, err)

	child, err := MakeSubclassFromSource(parent, "Child", `check ::= 'b':x ?(x == target) -> x;`, nil)
	require.NoError(t, err)

	g := child.New(NewStringInput("b"))
	v, ok, _ := g.Apply("check")
	require.True(t, ok, "a nearer ancestor's globals must take precedence over a farther one's same-named global")
	assert.Equal(t, "b", v)
}

func TestMakeGrammarRejectsMismatchedParentName(t *testing.T) {
	base, err := MakeGrammarFromSource("Base", `greeting ::= "hi";`, nil)
	require.NoError(t, err)

	ast, err := ParseGrammar("Child", `greeting ::= "yo";`, NewAstBuilder())
	require.NoError(t, err)
	ast.ParentName = "SomethingElse"

	_, err = base.MakeGrammar(ast, nil)
	assert.Error(t, err)
}
