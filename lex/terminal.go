package lex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ignea-lp/front/internal/iset"
	"github.com/ignea-lp/front/position"
)

// Terminal is a single lexed token: a non-empty set of tags it matched
// under (after ambiguity refinement), its matched text, its span, and
// a link to the terminal that follows it (spec §3). Terminal is
// identity-based: the lexer memoizes through Next so that repeated
// NextTerminal calls on the same argument return the identical
// instance.
type Terminal struct {
	Tags  iset.Set[TagID]
	Value string
	Start *position.Position
	End   *position.Position

	// Next is the terminal immediately following this one, or nil if
	// it has not yet been materialized (or this is the last terminal
	// of the stream). Only the owning Lexer ever writes this field.
	Next *Terminal
}

// HasTag reports whether t matched under tag id.
func (t *Terminal) HasTag(id TagID) bool {
	return t.Tags.Has(id)
}

// String renders t as a repr-style tuple dump (SPEC_FULL.md
// supplemented feature 2), useful for debugging and for
// DebugTagTable/DebugEPNTable rendering.
func (t *Terminal) String() string {
	ids := t.Tags.Elements()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	tagStrs := make([]string, len(ids))
	for i, id := range ids {
		tagStrs[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("Terminal({%s}, %q, %s-%s)", strings.Join(tagStrs, ","), t.Value, t.Start, t.End)
}
