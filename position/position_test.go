package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignea-lp/front/position"
)

func TestNew(t *testing.T) {
	p := position.New("in.ign")
	assert.Equal(t, "in.ign", p.Filename)
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, 1, p.Line)
	assert.Equal(t, 1, p.Column)
}

func TestAdvance(t *testing.T) {
	p := position.New("in.ign")
	p.Advance('a')
	p.Advance('b')
	assert.Equal(t, 2, p.Index)
	assert.Equal(t, 1, p.Line)
	assert.Equal(t, 3, p.Column)

	p.Advance('\n')
	assert.Equal(t, 3, p.Index)
	assert.Equal(t, 2, p.Line)
	assert.Equal(t, 1, p.Column)
}

func TestIdentity(t *testing.T) {
	a := position.New("in.ign")
	b := position.New("in.ign")
	assert.NotSame(t, a, b)

	// identity-based: equal field values are not the same position
	assert.True(t, a != b)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	anchor := position.New("in.ign")
	other := position.New("in.ign")
	other.Advance('x')
	other.Advance('y')

	anchor.Update(other)
	require.Same(t, anchor, anchor)
	assert.Equal(t, other.Index, anchor.Index)
	assert.Equal(t, other.Column, anchor.Column)
}

func TestCopyIsDistinctInstance(t *testing.T) {
	a := position.New("in.ign")
	a.Advance('z')
	b := a.Copy()
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Index, b.Index)
}

func TestString(t *testing.T) {
	p := position.New("foo.ign")
	p.Advance('x')
	assert.Equal(t, "foo.ign:1:2", p.String())
}
