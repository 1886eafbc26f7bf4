package tree_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignea-lp/front/cond"
	"github.com/ignea-lp/front/ferrors"
	"github.com/ignea-lp/front/internal/fixture"
	"github.com/ignea-lp/front/lex"
	"github.com/ignea-lp/front/parse"
	"github.com/ignea-lp/front/tree"
)

func arithBSR(t *testing.T, input string) *parse.BSR {
	t.Helper()
	lx, err := lex.New("in.ign", input, cond.None, fixture.ArithTags())
	require.NoError(t, err)
	p, err := parse.New(lx, fixture.ArithTypes())
	require.NoError(t, err)
	require.NoError(t, p.Parse())
	require.NotNil(t, p.BSR().Start)
	return p.BSR()
}

// shape serializes a tree for structural (isomorphism) comparison: tag
// or type plus, for leaves, the underlying lexed value, recursing into
// children. Positions are deliberately excluded since the round-trip
// property only promises the same shape, and a fresh BSR's
// intermediate EPNs can legally re-derive equivalent-but-distinct
// Position values for the same span.
func shape(n tree.Node) string {
	switch v := n.(type) {
	case *tree.TerminalNode:
		return fmt.Sprintf("T%d(%q)", v.Tag, v.EndTerm.Value)
	case *tree.NonterminalNode:
		s := fmt.Sprintf("N%d[", v.Type)
		for i, c := range v.Children {
			if i > 0 {
				s += " "
			}
			s += shape(c)
		}
		return s + "]"
	default:
		return "?"
	}
}

// Round-trip property: tree_to_bsr -> bsr_to_tree yields a tree
// isomorphic to the original (spec §4.H).
func TestRoundTripTreeBSR(t *testing.T) {
	bsr := arithBSR(t, "1+2+3")
	t1 := tree.ToTree(bsr)
	require.NotNil(t, t1)

	rebuilt := tree.ToBSR(t1)
	t2 := tree.ToTree(rebuilt)
	require.NotNil(t, t2)

	assert.Equal(t, shape(t1), shape(t2))
}

// Position fix/unfix identity: fix(unfix(t)) reproduces t's own
// Start positions, since ToTree always leaves positions fixed.
func TestPositionFixUnfixIdentity(t *testing.T) {
	bsr := arithBSR(t, "1+2+3")
	root := tree.ToTree(bsr)
	require.NotNil(t, root)

	before := positionsOf(root)

	tree.UnfixPositions(root)
	tree.FixPositions(root)

	after := positionsOf(root)
	assert.Equal(t, before, after)
}

func positionsOf(n tree.Node) []int {
	var out []int
	var walk func(tree.Node)
	walk = func(n tree.Node) {
		out = append(out, n.StartPosition().Index)
		if nt, ok := n.(*tree.NonterminalNode); ok {
			for _, c := range nt.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Scenario 5: the default Disambiguator raises AmbiguousGrammar when
// more than one EPN survives at the same span.
func TestDisambiguatorRaisesAmbiguousGrammar(t *testing.T) {
	lx, err := lex.New("in.ign", "aaa", cond.None, fixture.AmbiguousTags())
	require.NoError(t, err)
	p, err := parse.New(lx, fixture.AmbiguousTypes())
	require.NoError(t, err)
	require.NoError(t, p.Parse())

	err = tree.Disambiguate(p.BSR(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ferrors.ErrAmbiguousGrammar))
}

// A custom Choose resolves the ambiguity instead of raising: picking
// the first EPN deterministically collapses the set to size 1 and
// Disambiguate returns no error.
func TestDisambiguatorCustomChoose(t *testing.T) {
	lx, err := lex.New("in.ign", "aaa", cond.None, fixture.AmbiguousTags())
	require.NoError(t, err)
	p, err := parse.New(lx, fixture.AmbiguousTypes())
	require.NoError(t, err)
	require.NoError(t, p.Parse())

	err = tree.Disambiguate(p.BSR(), func(epns []parse.EPN) (parse.EPN, error) {
		return epns[0], nil
	})
	require.NoError(t, err)

	top := p.BSR().AtKey(p.BSR().Start.Type, p.BSR().Start.Start, p.BSR().Start.End)
	assert.Len(t, top, 1)
}

// Pruner discards EPNs unreachable from the completion key.
func TestPrunerDropsUnreachable(t *testing.T) {
	bsr := arithBSR(t, "1+2+3")

	bogusType := fixture.TypeN
	bogus := parse.EPN{
		Type: &bogusType,
		State: parse.ParsingState{
			Symbols: []parse.Symbol{parse.Term(fixture.ArithTagNum)},
			Start:   bsr.Start.End,
			Split:   bsr.Start.End,
		},
	}
	bsr.Add(bogus)
	before := len(bsr.All())

	tree.Prune(bsr)

	after := bsr.All()
	assert.Less(t, len(after), before)
	for _, e := range after {
		assert.NotEqual(t, bogus.State.Key(), e.State.Key())
	}
}
