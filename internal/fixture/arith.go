package fixture

import (
	"github.com/ignea-lp/front/cond"
	"github.com/ignea-lp/front/lex"
	"github.com/ignea-lp/front/parse"
)

// --- Scenario 4: direct left recursion, E -> E "+" N | N, N -> NUM ---

const (
	ArithTagNum lex.TagID = iota
	ArithTagPlus
	ArithTagWS
)

// ArithTags returns the NUM/PLUS/WS registry for spec.md §8 scenario
// 4's arithmetic grammar.
func ArithTags() []lex.TerminalTag {
	return []lex.TerminalTag{
		ArithTagNum: &charTag{
			name:     "NUM",
			start:    always,
			statesAt: 1,
			step:     repeatOneOrMore(isDigit),
		},
		ArithTagPlus: &charTag{
			name:     "PLUS",
			start:    always,
			statesAt: 1,
			step:     literal("+"),
		},
		ArithTagWS: &charTag{
			name:     "WS",
			start:    always,
			ignore:   always,
			statesAt: 1,
			step:     repeatOneOrMore(func(r rune) bool { return r == ' ' || r == '\t' }),
		},
	}
}

const (
	TypeE parse.TypeID = iota
	TypeN
)

type eType struct{}

func (eType) Name() string         { return "E" }
func (eType) Start(cond.Set) bool  { return true }
func (eType) First(cond.Set) []parse.TypeID {
	return []parse.TypeID{TypeE, TypeN}
}

// Descend tries E's two productions, E "+" N then N, adding a
// complete E EPN for every prefix that fully matches. Each
// alternative's failure (a swallowed derivationException surfaced
// only as a non-nil error, per Parser.Derive's contract) simply
// means that alternative contributes nothing — exactly how a
// descend callback is expected to explore a grammar's alternatives.
func (eType) Descend(p *parse.Parser, seed parse.ParsingState) []parse.ParsingState {
	var out []parse.ParsingState

	if s1, err := p.Derive(parse.NonTerm(TypeE), []parse.ParsingState{seed}, nil); err == nil {
		if s2, err := p.Derive(parse.Term(ArithTagPlus), s1, nil); err == nil {
			if s3, err := p.Derive(parse.NonTerm(TypeN), s2, nil); err == nil {
				for _, st := range s3 {
					typ := TypeE
					p.BSR().Add(parse.EPN{Type: &typ, State: st})
					out = append(out, st)
				}
			}
		}
	}

	if s1, err := p.Derive(parse.NonTerm(TypeN), []parse.ParsingState{seed}, nil); err == nil {
		for _, st := range s1 {
			typ := TypeE
			p.BSR().Add(parse.EPN{Type: &typ, State: st})
			out = append(out, st)
		}
	}

	return out
}

type nType struct{}

func (nType) Name() string                  { return "N" }
func (nType) Start(cond.Set) bool           { return false }
func (nType) First(cond.Set) []parse.TypeID { return nil }

func (nType) Descend(p *parse.Parser, seed parse.ParsingState) []parse.ParsingState {
	s1, err := p.Derive(parse.Term(ArithTagNum), []parse.ParsingState{seed}, nil)
	if err != nil {
		return nil
	}
	out := make([]parse.ParsingState, 0, len(s1))
	for _, st := range s1 {
		typ := TypeN
		p.BSR().Add(parse.EPN{Type: &typ, State: st})
		out = append(out, st)
	}
	return out
}

// ArithTypes returns the E/N nonterminal registry for scenario 4.
func ArithTypes() []parse.NonterminalType {
	return []parse.NonterminalType{
		TypeE: eType{},
		TypeN: nType{},
	}
}

// --- Scenario 5: ambiguous grammar A -> A A | "a" ---

const AmbiguousTypeA parse.TypeID = 0

type aType struct{}

func (aType) Name() string                  { return "A" }
func (aType) Start(cond.Set) bool           { return true }
func (aType) First(cond.Set) []parse.TypeID { return []parse.TypeID{AmbiguousTypeA} }

// Descend tries A -> A A then A -> "a", letting both succeed so that
// ambiguous input collects more than one EPN at the same span (spec
// §8 scenario 5).
func (aType) Descend(p *parse.Parser, seed parse.ParsingState) []parse.ParsingState {
	var out []parse.ParsingState

	if s1, err := p.Derive(parse.NonTerm(AmbiguousTypeA), []parse.ParsingState{seed}, nil); err == nil {
		if s2, err := p.Derive(parse.NonTerm(AmbiguousTypeA), s1, nil); err == nil {
			for _, st := range s2 {
				typ := AmbiguousTypeA
				p.BSR().Add(parse.EPN{Type: &typ, State: st})
				out = append(out, st)
			}
		}
	}

	if s1, err := p.Derive(parse.Term(TagA), []parse.ParsingState{seed}, nil); err == nil {
		for _, st := range s1 {
			typ := AmbiguousTypeA
			p.BSR().Add(parse.EPN{Type: &typ, State: st})
			out = append(out, st)
		}
	}

	return out
}

// AmbiguousTypes returns the single-type A registry for scenario 5.
func AmbiguousTypes() []parse.NonterminalType {
	return []parse.NonterminalType{
		AmbiguousTypeA: aType{},
	}
}
