package pymeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A parameterized rule applied at the same input position with two
// different arguments must evaluate both independently: a failed
// first application must not cache a failure that poisons the second
// application's result just because it lands on the same position.
func TestParameterizedRuleAtSamePositionIsNotCachedAcrossArguments(t *testing.T) {
	src := `
pick :n ::= ?(n == 2) -> n;
test ::= pick(1) | pick(2);
`
	gc, err := MakeGrammarFromSource("G", src, nil)
	require.NoError(t, err)

	g := gc.New(NewStringInput("x"))
	v, ok, _ := g.Apply("test")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

// The same check the other way around: a successful application must
// not get memoized and then wrongly reused for a later, different
// argument applied at the same (unconsumed) position.
func TestParameterizedRuleDoesNotLeakSuccessAcrossArguments(t *testing.T) {
	src := `
pick :n ::= ?(n == 2) -> n;
bad ::= pick(2) pick(1);
`
	gc, err := MakeGrammarFromSource("G", src, nil)
	require.NoError(t, err)

	g := gc.New(NewStringInput("x"))
	_, ok, _ := g.Apply("bad")
	assert.False(t, ok, "pick(1) must fail on its own terms even right after pick(2) succeeded at the same position")
}
