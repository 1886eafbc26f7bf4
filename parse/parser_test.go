package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignea-lp/front/cond"
	"github.com/ignea-lp/front/internal/fixture"
	"github.com/ignea-lp/front/lex"
	"github.com/ignea-lp/front/parse"
)

// scenario 4: direct left recursion. E -> E "+" N | N, N -> NUM over
// "1+2+3" must reach a single completion (E, 0, 5) whose one EPN has
// both a left and a right child in the BSR.
func TestDirectLeftRecursion(t *testing.T) {
	lx, err := lex.New("in.ign", "1+2+3", cond.None, fixture.ArithTags())
	require.NoError(t, err)

	p, err := parse.New(lx, fixture.ArithTypes())
	require.NoError(t, err)

	require.NoError(t, p.Parse())
	require.NotNil(t, p.BSR().Start)

	start := *p.BSR().Start
	assert.Equal(t, fixture.TypeE, start.Type)
	assert.Equal(t, 0, start.Start.Index)
	assert.Equal(t, 5, start.End.Index)

	top := p.BSR().AtKey(start.Type, start.Start, start.End)
	require.Len(t, top, 1, "unambiguous grammar: exactly one derivation at the top span")

	// Walk down: outermost E should have a left child (the intermediate
	// E "+" prefix) spanning 0-4 ("1+2+") and a right child (N)
	// spanning 4-5 ("3").
	outer := top[0]
	left := p.BSR().LeftChildren(outer)
	require.NotEmpty(t, left)
	right := p.BSR().RightChildren(outer)
	require.NotEmpty(t, right)
}

// scenario 4 boundary: with memoization unchanged, repeated parses of
// the same input produce the same completion key (Memoization
// testable property, restated per-run since this implementation has
// no separate "memoization disabled" mode to compare against).
func TestLeftRecursionRepeatable(t *testing.T) {
	for i := 0; i < 3; i++ {
		lx, err := lex.New("in.ign", "1+2+3", cond.None, fixture.ArithTags())
		require.NoError(t, err)
		p, err := parse.New(lx, fixture.ArithTypes())
		require.NoError(t, err)
		require.NoError(t, p.Parse())
		require.NotNil(t, p.BSR().Start)
		assert.Equal(t, 0, p.BSR().Start.Start.Index)
		assert.Equal(t, 5, p.BSR().Start.End.Index)
	}
}

// scenario 5: ambiguous grammar A -> A A | "a" over "aaa" produces two
// distinct EPNs at (A, 0, 3); the default Disambiguator raises
// AmbiguousGrammar.
func TestAmbiguousGrammar(t *testing.T) {
	lx, err := lex.New("in.ign", "aaa", cond.None, fixture.AmbiguousTags())
	require.NoError(t, err)

	p, err := parse.New(lx, fixture.AmbiguousTypes())
	require.NoError(t, err)
	require.NoError(t, p.Parse())
	require.NotNil(t, p.BSR().Start)

	start := *p.BSR().Start
	top := p.BSR().AtKey(start.Type, start.Start, start.End)
	assert.Len(t, top, 2, "two distinct groupings of \"aaa\" should survive as separate EPNs")
}

// Boundary: trailing unparseable terminal raises NoDerivation at that
// terminal.
func TestTrailingUnparseableRaisesNoDerivation(t *testing.T) {
	lx, err := lex.New("in.ign", "1+2+", cond.None, fixture.ArithTags())
	require.NoError(t, err)

	p, err := parse.New(lx, fixture.ArithTypes())
	require.NoError(t, err)
	err = p.Parse()
	require.Error(t, err)
}

// Boundary: empty input yields bsr.Start == nil and no error.
func TestEmptyInputNoDerivation(t *testing.T) {
	lx, err := lex.New("in.ign", "", cond.None, fixture.ArithTags())
	require.NoError(t, err)

	p, err := parse.New(lx, fixture.ArithTypes())
	require.NoError(t, err)
	require.NoError(t, p.Parse())
	assert.Nil(t, p.BSR().Start)
}

// Construction-time conditions error: zero types satisfy Start.
func TestNoStartingSymbolIsConditionsError(t *testing.T) {
	lx, err := lex.New("in.ign", "1", cond.None, fixture.ArithTags())
	require.NoError(t, err)

	_, err = parse.New(lx, []parse.NonterminalType{fixture.ArithTypes()[fixture.TypeN]})
	require.Error(t, err)
}

// Boundary: N's FIRST set is empty, so it forms a singleton SCC with no
// self-loop and must not be classified as left-recursive, unlike E
// (which self-references through its own First()).
func TestSingletonWithoutSelfLoopIsNotLeftRecursive(t *testing.T) {
	lx, err := lex.New("in.ign", "1+2+3", cond.None, fixture.ArithTags())
	require.NoError(t, err)
	p, err := parse.New(lx, fixture.ArithTypes())
	require.NoError(t, err)
	require.NoError(t, p.Parse())

	table := p.DebugSCCTable()
	assert.Contains(t, table, "E (0)")
	assert.NotContains(t, table, "N (1)")
}

// BSR closure invariant: every EPN with a non-empty symbol prefix has a
// corresponding left-child EPN for that prefix.
func TestBSRClosureInvariant(t *testing.T) {
	lx, err := lex.New("in.ign", "1+2+3", cond.None, fixture.ArithTags())
	require.NoError(t, err)
	p, err := parse.New(lx, fixture.ArithTypes())
	require.NoError(t, err)
	require.NoError(t, p.Parse())

	for _, epn := range p.BSR().All() {
		if len(epn.State.Symbols) <= 1 {
			continue
		}
		if epn.State.Start.Index == epn.State.Split.Index {
			continue
		}
		left := p.BSR().LeftChildren(epn)
		assert.NotEmpty(t, left, "EPN %s has a multi-symbol prefix but no left-child entry", epn)
	}
}
