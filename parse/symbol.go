// Package parse implements the generalized, left-recursion-capable
// syntactic engine of spec §4.D-§4.G: a nonterminal-type registry
// whose descend/ascend callbacks drive a recursive-descent parser that
// alternates with iterative ascent over statically-computed strongly
// connected components (§4.E), producing a Binary Subtree
// Representation (BSR) of every valid derivation.
package parse

import (
	"fmt"

	"github.com/ignea-lp/front/lex"
)

// TypeID is a value-typed handle identifying a nonterminal type within
// the ordered registry a Parser was built from, mirroring lex.TagID.
type TypeID int

// symbolKind distinguishes the two cases a Symbol can hold.
type symbolKind int

const (
	symbolTerminal symbolKind = iota
	symbolNonterminal
)

// Symbol is the tagged union of lex.TagID and TypeID used to name one
// position in a derivation string (spec §3 "ParsingState: string:
// tuple of TagId|NTId").
type Symbol struct {
	kind symbolKind
	tag  lex.TagID
	typ  TypeID
}

// Term builds a Symbol naming a terminal tag.
func Term(id lex.TagID) Symbol {
	return Symbol{kind: symbolTerminal, tag: id}
}

// NonTerm builds a Symbol naming a nonterminal type.
func NonTerm(id TypeID) Symbol {
	return Symbol{kind: symbolNonterminal, typ: id}
}

// IsTerminal reports whether s names a terminal tag.
func (s Symbol) IsTerminal() bool {
	return s.kind == symbolTerminal
}

// Tag returns the terminal tag s names. It panics if s names a
// nonterminal; callers should check IsTerminal first.
func (s Symbol) Tag() lex.TagID {
	if s.kind != symbolTerminal {
		panic("parse: Symbol.Tag called on a nonterminal symbol")
	}
	return s.tag
}

// Type returns the nonterminal type s names. It panics if s names a
// terminal; callers should check IsTerminal first.
func (s Symbol) Type() TypeID {
	if s.kind == symbolTerminal {
		panic("parse: Symbol.Type called on a terminal symbol")
	}
	return s.typ
}

func (s Symbol) canonical() string {
	if s.kind == symbolTerminal {
		return fmt.Sprintf("t%d", s.tag)
	}
	return fmt.Sprintf("n%d", s.typ)
}

// String renders s for diagnostics.
func (s Symbol) String() string {
	if s.kind == symbolTerminal {
		return fmt.Sprintf("Tag(%d)", s.tag)
	}
	return fmt.Sprintf("Type(%d)", s.typ)
}
