// Package fixture implements small concrete grammars used only by
// _test.go files across lex, parse, and tree: an IDENT/IF
// keyword-vs-identifier tag pair, a NUM/DOT/FLOAT longest-match tag
// trio, an off-side IDENT+INDENT/DEDENT tag set, a directly
// left-recursive E/N arithmetic grammar, and an ambiguous A -> A A |
// "a" grammar. It directly implements the six concrete end-to-end
// scenarios of spec.md §8, grounded on the teacher's
// parse/test_fixtures.go mock-token approach (hand-built fixtures
// rather than a production lexer/parser).
package fixture

import (
	"github.com/ignea-lp/front/cond"
	"github.com/ignea-lp/front/lex"
)

// charTag is a TerminalTag whose NFA is a hand-written per-character
// state machine (simple enough here that wiring a general regex
// compiler, as ictiobus's automaton package does for real grammars,
// would be pure overhead for these fixtures — see DESIGN.md).
type charTag struct {
	name      string
	start     func(cond.Set) bool
	ignore    func(cond.Set) bool
	indent    func(cond.Set) bool
	dedent    func(cond.Set) bool
	positives func(cond.Set) []lex.TagID
	negatives func(cond.Set) []lex.TagID
	statesAt  uint64
	step      func(state uint64, ch rune) (bool, uint64)
}

func (t *charTag) Name() string                   { return t.name }
func (t *charTag) StatesStart() uint64             { return t.statesAt }
func (t *charTag) Start(c cond.Set) bool           { return t.start(c) }
func (t *charTag) Ignore(c cond.Set) bool {
	if t.ignore == nil {
		return false
	}
	return t.ignore(c)
}
func (t *charTag) Indent(c cond.Set) bool {
	if t.indent == nil {
		return false
	}
	return t.indent(c)
}
func (t *charTag) Dedent(c cond.Set) bool {
	if t.dedent == nil {
		return false
	}
	return t.dedent(c)
}
func (t *charTag) Positives(c cond.Set) []lex.TagID {
	if t.positives == nil {
		return nil
	}
	return t.positives(c)
}
func (t *charTag) Negatives(c cond.Set) []lex.TagID {
	if t.negatives == nil {
		return nil
	}
	return t.negatives(c)
}
func (t *charTag) NFA(state uint64, ch rune) (bool, uint64) { return t.step(state, ch) }

func always(cond.Set) bool { return true }

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// repeatOneOrMore builds the NFA step function for a [class]+ pattern:
// state 1 is "not yet matched", state 2 is "matched at least one and
// may continue".
func repeatOneOrMore(class func(rune) bool) func(uint64, rune) (bool, uint64) {
	return func(state uint64, ch rune) (bool, uint64) {
		if !class(ch) {
			return false, 0
		}
		return true, 2
	}
}

// literal builds the NFA step function for an exact keyword/symbol
// match: state i expects word[i-1] and, on a match, accepts iff that
// was the final character.
func literal(word string) func(uint64, rune) (bool, uint64) {
	runes := []rune(word)
	return func(state uint64, ch rune) (bool, uint64) {
		i := int(state) - 1
		if i < 0 || i >= len(runes) || ch != runes[i] {
			return false, 0
		}
		if i == len(runes)-1 {
			return true, 0
		}
		return false, uint64(i + 2)
	}
}

// --- Scenario 1: keyword-vs-identifier disambiguation ---

const (
	TagIdent lex.TagID = iota
	TagIf
	TagWSKeyword
)

// KeywordTags returns the IDENT/IF/WS registry for spec.md §8
// scenario 1: IDENT matches [a-z]+, IF matches exactly "if",
// IF.Positives = {IDENT} and IDENT.Negatives = {IF} so that "if"
// lexes as {IF} alone and "ifx" lexes as {IDENT} alone.
func KeywordTags() []lex.TerminalTag {
	return []lex.TerminalTag{
		TagIdent: &charTag{
			name:      "IDENT",
			start:     always,
			statesAt:  1,
			step:      repeatOneOrMore(isLower),
			negatives: func(cond.Set) []lex.TagID { return []lex.TagID{TagIf} },
		},
		TagIf: &charTag{
			name:      "IF",
			start:     always,
			statesAt:  1,
			step:      literal("if"),
			positives: func(cond.Set) []lex.TagID { return []lex.TagID{TagIdent} },
		},
		TagWSKeyword: &charTag{
			name:     "WS",
			start:    always,
			ignore:   always,
			statesAt: 1,
			step:     repeatOneOrMore(func(r rune) bool { return r == ' ' || r == '\t' }),
		},
	}
}

// --- Scenario 2: longest match with restart ---

const (
	TagNum lex.TagID = iota
	TagDot
	TagFloat
)

// NumericTags returns the NUM/DOT/FLOAT registry for spec.md §8
// scenario 2: NUM = [0-9]+, DOT = ".", FLOAT = [0-9]+.[0-9]+.
func NumericTags() []lex.TerminalTag {
	return []lex.TerminalTag{
		TagNum: &charTag{
			name:     "NUM",
			start:    always,
			statesAt: 1,
			step:     repeatOneOrMore(isDigit),
		},
		TagDot: &charTag{
			name:     "DOT",
			start:    always,
			statesAt: 1,
			step:     literal("."),
		},
		TagFloat: &charTag{
			name:     "FLOAT",
			start:    always,
			statesAt: 1,
			step:     floatStep,
		},
	}
}

// floatStep implements [0-9]+.[0-9]+: state 1 requires the first
// integer digit, state 4 reads further integer digits or the dot
// (neither state accepts, since a bare integer is not a float), state
// 2 has just consumed the dot and requires at least one fraction
// digit, state 3 reads fraction digits and accepts on every one.
func floatStep(state uint64, ch rune) (bool, uint64) {
	switch state {
	case 1:
		if isDigit(ch) {
			return false, 4
		}
		return false, 0
	case 4:
		if isDigit(ch) {
			return false, 4
		}
		if ch == '.' {
			return false, 2
		}
		return false, 0
	case 2:
		if isDigit(ch) {
			return true, 3
		}
		return false, 0
	case 3:
		if isDigit(ch) {
			return true, 3
		}
		return false, 0
	default:
		return false, 0
	}
}

// --- Scenario 3 & 6: off-side rule ---

const (
	TagOffsideIdent lex.TagID = iota
	TagOffsideWS
	TagIndent
	TagDedent
)

// OffsideTags returns a registry of a single IDENT-like statement tag
// plus whitespace/newline-ignore and the synthetic INDENT/DEDENT
// pair, for spec.md §8 scenarios 3 (emission) and 6 (mismatch).
func OffsideTags() []lex.TerminalTag {
	return []lex.TerminalTag{
		TagOffsideIdent: &charTag{
			name:     "IDENT",
			start:    always,
			statesAt: 1,
			step:     repeatOneOrMore(isLower),
		},
		TagOffsideWS: &charTag{
			name:     "WS",
			start:    always,
			ignore:   always,
			statesAt: 1,
			step: repeatOneOrMore(func(r rune) bool {
				return r == ' ' || r == '\t' || r == '\n'
			}),
		},
		TagIndent: &charTag{
			name:   "INDENT",
			indent: always,
		},
		TagDedent: &charTag{
			name:   "DEDENT",
			dedent: always,
		},
	}
}

// --- Scenario 5: ambiguous grammar A -> A A | "a" ---

const TagA lex.TagID = 0

// AmbiguousTags returns the single-tag registry ("a") scenario 5's
// grammar lexes over.
func AmbiguousTags() []lex.TerminalTag {
	return []lex.TerminalTag{
		TagA: &charTag{
			name:     "a",
			start:    always,
			statesAt: 1,
			step:     literal("a"),
		},
	}
}
