package parse

import (
	"fmt"
	"strings"

	"github.com/ignea-lp/front/lex"
	"github.com/ignea-lp/front/position"
)

// ParsingState is a node in a left-binarized indexed derivation tree:
// a derivation string (the symbols consumed so far along one
// alternative), the span it covers, and the terminal it last
// consumed, if any (spec §3). ParsingState is a plain value; its Key
// method gives the "value-typed, hashable" identity spec §3 calls for,
// since Go slices and pointers aren't themselves valid map keys.
type ParsingState struct {
	Symbols     []Symbol
	Start       *position.Position
	Split       *position.Position
	EndTerminal *lex.Terminal
}

// endPosition returns the position this state has reached: the end of
// EndTerminal if one has been consumed, otherwise Split (the seed
// position for a not-yet-started derivation).
func (ps ParsingState) endPosition() *position.Position {
	if ps.EndTerminal != nil {
		return ps.EndTerminal.End
	}
	return ps.Split
}

// extend returns a new ParsingState formed by appending sym to ps's
// derivation string: the new Split is ps's own end position (the
// boundary between the symbols already consumed and sym), and
// EndTerminal advances to term, sym's freshly consumed terminal.
func (ps ParsingState) extend(sym Symbol, term *lex.Terminal) ParsingState {
	syms := make([]Symbol, len(ps.Symbols)+1)
	copy(syms, ps.Symbols)
	syms[len(ps.Symbols)] = sym
	return ParsingState{
		Symbols:     syms,
		Start:       ps.Start,
		Split:       ps.endPosition(),
		EndTerminal: term,
	}
}

// Key returns a canonical, comparable representation of ps suitable
// for use as a map key when deduping sets of ParsingState. Position
// and Terminal identity is captured via pointer address, matching the
// identity-based equality those types carry elsewhere in the system.
func (ps ParsingState) Key() string {
	var b strings.Builder
	for _, s := range ps.Symbols {
		b.WriteString(s.canonical())
		b.WriteByte('\x1f')
	}
	b.WriteByte('\x1e')
	fmt.Fprintf(&b, "%p|%p|%p", ps.Start, ps.Split, ps.EndTerminal)
	return b.String()
}

// String renders ps as a repr-style tuple dump (SPEC_FULL.md
// supplemented feature 2).
func (ps ParsingState) String() string {
	parts := make([]string, len(ps.Symbols))
	for i, s := range ps.Symbols {
		parts[i] = s.String()
	}
	return fmt.Sprintf("State((%s), %s, %s)", strings.Join(parts, " "), ps.Start, ps.Split)
}
