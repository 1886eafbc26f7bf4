package lex

import "github.com/ignea-lp/front/cond"

// TagID is a value-typed handle identifying a terminal tag within the
// ordered registry a Lexer was built from (spec §3 "TagID: a
// value-typed handle referring to a descriptor"). A grammar package
// typically declares a block of TagID constants by iota in the same
// order it builds its []TerminalTag registry, exactly as a teacher
// grammar declares token class IDs alongside the patterns that use
// them.
type TagID int

// TerminalTag is the descriptor interface a grammar package supplies
// per lexical tag (spec §3, §6). The lexer never inspects an NFA state
// mask's bits directly; it only ever passes one through NFA.
type TerminalTag interface {
	// StatesStart is the initial NFA state bitmask for this tag.
	StatesStart() uint64

	// Start reports whether this tag participates in lexing at all
	// under conditions.
	Start(c cond.Set) bool

	// Ignore reports whether terminals of this tag are discarded
	// (after ambiguity refinement) rather than yielded to the parser.
	Ignore(c cond.Set) bool

	// Indent reports whether this tag is the synthetic off-side
	// indent marker. At most one tag may answer true.
	Indent(c cond.Set) bool

	// Dedent reports whether this tag is the synthetic off-side
	// dedent marker. At most one tag may answer true.
	Dedent(c cond.Set) bool

	// Positives returns the set of tags this tag's presence in an
	// accepted set implies must also be considered present (the
	// ambiguity positive closure).
	Positives(c cond.Set) []TagID

	// Negatives returns the set of tags this tag's presence in an
	// accepted set rules out (the ambiguity negative closure).
	Negatives(c cond.Set) []TagID

	// NFA steps this tag's automaton by one character: given the
	// current state bitmask and the character consumed, it returns
	// whether the automaton accepts in the resulting state and the
	// resulting state bitmask (0 meaning the automaton has died).
	NFA(states uint64, ch rune) (accept bool, next uint64)

	// Name is a human-readable identifier used only in diagnostics
	// (error messages, DebugTagTable); it plays no role in matching.
	Name() string
}
