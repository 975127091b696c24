package pymeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralNodeString(t *testing.T) {
	n := NewLiteralNode("1", Span{})
	assert.Equal(t, `"1"`, n.String())
	assert.True(t, n.Equal(NewLiteralNode("1", Span{})))
	assert.False(t, n.Equal(NewLiteralNode("2", Span{})))
}

func TestApplyNodeString(t *testing.T) {
	bare := NewApplyNode("digit", nil, Span{})
	assert.Equal(t, "<digit>", bare.String())

	arg := NewHostExprNode(HostRuleValue, "1", Span{})
	withArg := NewApplyNode("fact", []AstNode{arg}, Span{})
	assert.Equal(t, "<fact => 1>", withArg.String())
}

func TestSeqAndOrEqual(t *testing.T) {
	a := NewSeqNode([]AstNode{NewLiteralNode("a", Span{}), NewLiteralNode("b", Span{})}, Span{})
	b := NewSeqNode([]AstNode{NewLiteralNode("a", Span{}), NewLiteralNode("b", Span{})}, Span{})
	c := NewSeqNode([]AstNode{NewLiteralNode("a", Span{}), NewLiteralNode("c", Span{})}, Span{})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	or1 := NewOrNode([]AstNode{a, c}, Span{})
	or2 := NewOrNode([]AstNode{a, c}, Span{})
	assert.True(t, or1.Equal(or2))
}

func TestRuleByName(t *testing.T) {
	r1 := NewRuleNode("digit", nil, NewLiteralNode("1", Span{}), Span{})
	r2 := NewRuleNode("letter", nil, NewLiteralNode("a", Span{}), Span{})
	g := NewGrammarNode("G", "", []*RuleNode{r1, r2}, Span{})

	found, ok := g.RuleByName("letter")
	require.True(t, ok)
	assert.Same(t, r2, found)

	_, ok = g.RuleByName("missing")
	assert.False(t, ok)
}

func TestGrammarEqualIgnoresSpan(t *testing.T) {
	r1 := NewRuleNode("digit", nil, NewLiteralNode("1", Span{0, 5}), Span{0, 10})
	r2 := NewRuleNode("digit", nil, NewLiteralNode("1", Span{100, 105}), Span{100, 110})
	g1 := NewGrammarNode("G", "", []*RuleNode{r1}, Span{0, 10})
	g2 := NewGrammarNode("G", "", []*RuleNode{r2}, Span{100, 110})
	assert.True(t, g1.Equal(g2))
}
