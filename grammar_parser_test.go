package pymeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrammarBootDialect(t *testing.T) {
	src := `
digit ::= '1' | '2' | '3';
bits ::= <digit>+;
`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	require.Len(t, ast.Rules, 2)
	assert.Equal(t, "digit", ast.Rules[0].Name)
	assert.Equal(t, "bits", ast.Rules[1].Name)
}

func TestParseGrammarOMeta2Dialect(t *testing.T) {
	src := `
digit = '1' | '2' | '3';
bits = digit()+;
`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	require.Len(t, ast.Rules, 2)
	apply, ok := ast.Rules[1].Body.(*Many1Node).Expr.(*ApplyNode)
	require.True(t, ok)
	assert.Equal(t, "digit", apply.RuleName)
}

func TestParseGrammarRequiresSemicolonBetweenRules(t *testing.T) {
	src := `
digit ::= '1'
bits ::= <digit>+;
`
	_, err := ParseGrammar("G", src, NewAstBuilder())
	assert.Error(t, err)
}

func TestParseGrammarLastRuleSemicolonOptional(t *testing.T) {
	src := `digit ::= '1' | '2'`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	require.Len(t, ast.Rules, 1)
}

func TestParseGrammarMultipleDefinitionsMerge(t *testing.T) {
	src := `
fact 0 ::= 1;
fact :n ::= n;
`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	require.Len(t, ast.Rules, 1)
	or, ok := ast.Rules[0].Body.(*OrNode)
	require.True(t, ok)
	assert.Len(t, or.Items, 2)
}

func TestParseGrammarActionAndPredicate(t *testing.T) {
	src := `num ::= '1':x ?(x == '1') => x;`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	seq, ok := ast.Rules[0].Body.(*SeqNode)
	require.True(t, ok)
	require.Len(t, seq.Items, 3)
	_, ok = seq.Items[1].(*HostExprNode)
	assert.True(t, ok)
}

func TestParseGrammarSuperAndInheritanceHeader(t *testing.T) {
	src := `greeting ::= <super> | "hi";`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	or, ok := ast.Rules[0].Body.(*OrNode)
	require.True(t, ok)
	_, ok = or.Items[0].(*SuperNode)
	assert.True(t, ok)
}

func TestParseGrammarComments(t *testing.T) {
	src := `
# a comment on its own line
digit ::= '1'; # trailing comment
`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	require.Len(t, ast.Rules, 1)
}

func TestParseGrammarMultilineAlternatives(t *testing.T) {
	src := `
color ::= 'r'
         | 'g'
         | 'b'
         ;
`
	ast, err := ParseGrammar("G", src, NewAstBuilder())
	require.NoError(t, err)
	or, ok := ast.Rules[0].Body.(*OrNode)
	require.True(t, ok)
	assert.Len(t, or.Items, 3)
}
