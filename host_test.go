package pymeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalHostExpr(t *testing.T, src string, scope Scope) Value {
	t.Helper()
	v, err := DefaultEvaluator{}.Eval(src, scope)
	require.NoError(t, err)
	return v
}

func TestDefaultEvaluatorArithmeticAndComparisons(t *testing.T) {
	scope := Scope{Locals: map[string]Value{"x": 3}}
	assert.Equal(t, 6, evalHostExpr(t, "x * 2", scope))
	assert.Equal(t, true, evalHostExpr(t, "x == 3", scope))
	assert.Equal(t, false, evalHostExpr(t, "x > 3", scope))
	assert.Equal(t, true, evalHostExpr(t, "x > 1 and x < 10", scope))
}

func TestDefaultEvaluatorCallsGlobalFunc(t *testing.T) {
	double := Func(func(args []Value) (Value, error) {
		n, _ := asInt(args[0])
		return n * 2, nil
	})
	scope := Scope{Globals: map[string]Value{"double": double}}
	assert.Equal(t, 8, evalHostExpr(t, "double(4)", scope))
}

func TestDefaultEvaluatorLocalsShadowGlobals(t *testing.T) {
	scope := Scope{
		Locals:  map[string]Value{"n": 1},
		Globals: map[string]Value{"n": 2},
	}
	assert.Equal(t, 1, evalHostExpr(t, "n", scope))
}

func TestDefaultEvaluatorListAndIndex(t *testing.T) {
	scope := Scope{}
	assert.Equal(t, "b", evalHostExpr(t, `["a", "b", "c"][1]`, scope))
}

func TestDefaultEvaluatorUndefinedNameFails(t *testing.T) {
	_, err := DefaultEvaluator{}.Eval("missing", Scope{})
	assert.Error(t, err)
}

func TestDefaultEvaluatorUnbalancedTrailingTokenFails(t *testing.T) {
	_, err := DefaultEvaluator{}.Eval("1 +", Scope{})
	assert.Error(t, err)
}

func TestReadHostExprSpanBalancesBracketsAndQuotes(t *testing.T) {
	p := &grammarParser{src: []rune(`f(a, [1, 2], "a)b")) rest`)}
	src, err := p.readHostExprSpan(func(depth int, c rune) bool { return depth == 0 && c == ')' })
	require.NoError(t, err)
	assert.Equal(t, `f(a, [1, 2], "a)b")`, src)
	assert.Equal(t, ')', p.peek())
}

func TestReadHostExprSpanTripleQuoted(t *testing.T) {
	p := &grammarParser{src: []rune(`"""has ) inside""")`)}
	src, err := p.readHostExprSpan(func(depth int, c rune) bool { return depth == 0 && c == ')' })
	require.NoError(t, err)
	assert.Equal(t, `"""has ) inside"""`, src)
}

// Mismatched closing brackets must raise a parse error rather than
// silently being accepted as the span boundary. "foo(x[1]])" closes
// the '[' correctly at the first ']', but the second ']' has nothing
// matching it on the stack — it must not be treated as closing the
// outer '(' either.
func TestReadHostExprSpanRejectsMismatchedCloseBracket(t *testing.T) {
	p := &grammarParser{src: []rune(`foo(x[1]])`)}
	_, err := p.readHostExprSpan(func(depth int, c rune) bool { return depth == 0 && c == ')' })
	assert.Error(t, err)
}

// "foo(x[1]" never closes its '(' before the input runs out; the scan
// reaches end of input still holding an open bracket with no stop
// ever satisfied for ')' at depth 0, so it must not be silently
// accepted as a complete, balanced span.
func TestReadHostExprSpanRejectsUnclosedOpenBracket(t *testing.T) {
	p := &grammarParser{src: []rune(`foo(x[1]`)}
	_, err := p.readHostExprSpan(func(depth int, c rune) bool { return depth == 0 && c == ')' })
	assert.Error(t, err)
}
