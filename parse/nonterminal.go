package parse

import "github.com/ignea-lp/front/cond"

// NonterminalType is the descriptor interface a grammar package
// supplies per nonterminal (spec §3, §4.D, §6). Descend's body
// typically calls back into the Parser's Derive method to walk each
// of the nonterminal's productions, inserting a complete EPN into
// p.BSR() for every production it fully matches.
type NonterminalType interface {
	// Start reports whether this is the grammar's starting symbol
	// under conditions. Exactly one type must answer true.
	Start(c cond.Set) bool

	// First returns the nonterminal types that can begin a derivation
	// of this type under conditions — the FIRST graph edge set used
	// to compute left-recursive SCCs (§4.E).
	First(c cond.Set) []TypeID

	// Descend attempts every production of this type starting from
	// seed, returning the resulting ParsingStates. It is expected to
	// drive the parse via repeated calls to Parser.Derive and to add
	// a complete EPN (Type set) to the parser's BSR for every
	// production it fully matches.
	Descend(p *Parser, seed ParsingState) []ParsingState

	// Name is a human-readable identifier used only in diagnostics.
	Name() string
}

// Ascender is implemented by a NonterminalType that overrides the
// default ascend-parent retry behavior (§4.D, §6: "default: retry each
// ascend-parent, swallow DerivationException"). Most grammars never
// need this; it exists for the rare nonterminal whose re-derivation
// after growth needs bespoke handling.
type Ascender interface {
	Ascend(p *Parser, current ParsingState)
}
