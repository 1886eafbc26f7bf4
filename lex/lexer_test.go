package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignea-lp/front/cond"
	"github.com/ignea-lp/front/internal/fixture"
	"github.com/ignea-lp/front/lex"
)

func tagsOf(t *lex.Terminal) []lex.TagID {
	return t.Tags.Elements()
}

func drainAll(t *testing.T, lx *lex.Lexer) []*lex.Terminal {
	t.Helper()
	var out []*lex.Terminal
	var cur *lex.Terminal
	for {
		next, err := lx.NextTerminal(cur)
		require.NoError(t, err)
		if next == nil {
			break
		}
		out = append(out, next)
		cur = next
	}
	return out
}

// scenario 1: keyword-vs-identifier disambiguation.
func TestKeywordVsIdentifier(t *testing.T) {
	lx, err := lex.New("in.ign", "if ifx", cond.None, fixture.KeywordTags())
	require.NoError(t, err)

	terms := drainAll(t, lx)
	require.Len(t, terms, 2)
	assert.Equal(t, []lex.TagID{fixture.TagIf}, tagsOf(terms[0]))
	assert.Equal(t, "if", terms[0].Value)
	assert.Equal(t, []lex.TagID{fixture.TagIdent}, tagsOf(terms[1]))
	assert.Equal(t, "ifx", terms[1].Value)
}

// scenario 2: longest match with restart.
func TestLongestMatchFloat(t *testing.T) {
	lx, err := lex.New("in.ign", "12.34", cond.None, fixture.NumericTags())
	require.NoError(t, err)

	terms := drainAll(t, lx)
	require.Len(t, terms, 1)
	assert.Equal(t, []lex.TagID{fixture.TagFloat}, tagsOf(terms[0]))
	assert.Equal(t, "12.34", terms[0].Value)
}

func TestLongestMatchRestart(t *testing.T) {
	lx, err := lex.New("in.ign", "12.", cond.None, fixture.NumericTags())
	require.NoError(t, err)

	terms := drainAll(t, lx)
	require.Len(t, terms, 2)
	assert.Equal(t, []lex.TagID{fixture.TagNum}, tagsOf(terms[0]))
	assert.Equal(t, "12", terms[0].Value)
	assert.Equal(t, []lex.TagID{fixture.TagDot}, tagsOf(terms[1]))
	assert.Equal(t, ".", terms[1].Value)
}

// scenario 3: off-side emission.
func TestOffsideEmission(t *testing.T) {
	lx, err := lex.New("in.ign", "a\n  b\n  c\nd", cond.None, fixture.OffsideTags())
	require.NoError(t, err)

	terms := drainAll(t, lx)
	var kinds []lex.TagID
	for _, term := range terms {
		for _, id := range tagsOf(term) {
			kinds = append(kinds, id)
		}
	}
	assert.Equal(t, []lex.TagID{
		fixture.TagOffsideIdent,
		fixture.TagIndent,
		fixture.TagOffsideIdent,
		fixture.TagOffsideIdent,
		fixture.TagDedent,
		fixture.TagOffsideIdent,
	}, kinds)
}

// scenario 6: indentation mismatch.
func TestIndentationMismatch(t *testing.T) {
	lx, err := lex.New("in.ign", "a\n    b\n  c", cond.None, fixture.OffsideTags())
	require.NoError(t, err)

	var cur *lex.Terminal
	var lastErr error
	for {
		next, e := lx.NextTerminal(cur)
		if e != nil {
			lastErr = e
			break
		}
		if next == nil {
			break
		}
		cur = next
	}
	require.Error(t, lastErr)
}

// Lexer idempotence: two independent lexers over the same input and
// conditions produce pairwise-equal (tags, value, start, end) terminal
// sequences.
func TestLexerIdempotence(t *testing.T) {
	input := "if ifx ifx if"
	lx1, err := lex.New("in.ign", input, cond.None, fixture.KeywordTags())
	require.NoError(t, err)
	lx2, err := lex.New("in.ign", input, cond.None, fixture.KeywordTags())
	require.NoError(t, err)

	terms1 := drainAll(t, lx1)
	terms2 := drainAll(t, lx2)
	require.Len(t, terms2, len(terms1))
	for i := range terms1 {
		assert.Equal(t, tagsOf(terms1[i]), tagsOf(terms2[i]))
		assert.Equal(t, terms1[i].Value, terms2[i].Value)
		assert.Equal(t, terms1[i].Start.Index, terms2[i].Start.Index)
		assert.Equal(t, terms1[i].End.Index, terms2[i].End.Index)
	}
}

// Lazy stability: next_terminal(T) is referentially stable.
func TestLazyStability(t *testing.T) {
	lx, err := lex.New("in.ign", "if ifx", cond.None, fixture.KeywordTags())
	require.NoError(t, err)

	first, err := lx.NextTerminal(nil)
	require.NoError(t, err)
	require.NotNil(t, first)

	again, err := lx.NextTerminal(nil)
	require.NoError(t, err)
	assert.Same(t, first, again)

	next1, err := lx.NextTerminal(first)
	require.NoError(t, err)
	next2, err := lx.NextTerminal(first)
	require.NoError(t, err)
	assert.Same(t, next1, next2)
}

// Ignore correctness: a tag in the ignore set never appears on any
// emitted terminal's Tags.
func TestIgnoreCorrectness(t *testing.T) {
	lx, err := lex.New("in.ign", "if   ifx", cond.None, fixture.KeywordTags())
	require.NoError(t, err)

	for _, term := range drainAll(t, lx) {
		assert.False(t, term.HasTag(fixture.TagWSKeyword))
	}
}

// Off-side balance: total indents emitted equal total dedents.
func TestOffsideBalance(t *testing.T) {
	lx, err := lex.New("in.ign", "a\n  b\n    c\n  d\ne", cond.None, fixture.OffsideTags())
	require.NoError(t, err)

	var indents, dedents int
	for _, term := range drainAll(t, lx) {
		if term.HasTag(fixture.TagIndent) {
			indents++
		}
		if term.HasTag(fixture.TagDedent) {
			dedents++
		}
	}
	assert.Equal(t, indents, dedents)
}

// Boundary: empty input yields no terminals and no error.
func TestEmptyInput(t *testing.T) {
	lx, err := lex.New("in.ign", "", cond.None, fixture.KeywordTags())
	require.NoError(t, err)

	first, err := lx.NextTerminal(nil)
	require.NoError(t, err)
	assert.Nil(t, first)
}

// Boundary: input containing only ignored terminals yields no
// terminals and no error.
func TestOnlyIgnoredInput(t *testing.T) {
	lx, err := lex.New("in.ign", "   \t  ", cond.None, fixture.KeywordTags())
	require.NoError(t, err)

	first, err := lx.NextTerminal(nil)
	require.NoError(t, err)
	assert.Nil(t, first)
}

// Construction-time conditions error: only one of indent/dedent
// defined.
func TestMissingIndentDedentIsConditionsError(t *testing.T) {
	onlyIndent := []lex.TerminalTag{
		fixture.OffsideTags()[fixture.TagOffsideIdent],
		fixture.OffsideTags()[fixture.TagOffsideWS],
		fixture.OffsideTags()[fixture.TagIndent],
	}
	_, err := lex.New("in.ign", "a", cond.None, onlyIndent)
	require.Error(t, err)
}
