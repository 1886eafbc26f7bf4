package parse

import (
	"github.com/ignea-lp/front/cond"
	"github.com/ignea-lp/front/ferrors"
	"github.com/ignea-lp/front/lex"
	"github.com/ignea-lp/front/position"
)

// derivationException signals, internally, that no state survived an
// attempted extension. It is caught inside Derive (to explore
// alternatives) and inside the default ascend retry, and must never
// escape Parse (spec §7).
type derivationException struct{}

func (derivationException) Error() string { return "no state could be extended" }

var errNoDerivation = derivationException{}

type derivedKey struct {
	typ TypeID
	end *position.Position
}

// Parser performs the generalized recursive-descent parse of spec
// §4.F, alternating descent with iterative ascent over the
// left-recursive SCCs computed at construction time, and records every
// derivation into a BSR. A Parser is not safe for concurrent use (§5).
type Parser struct {
	lexer      *lex.Lexer
	conditions cond.Set
	types      []NonterminalType
	startType  TypeID

	scc map[TypeID]*sccInfo

	bsr         *BSR
	derivedMemo map[derivedKey][]*lex.Terminal
	descendStk  []TypeID

	// descending marks a (type, end-position) key as currently being
	// computed by an in-flight call to descend. A nested Derive call
	// that lands on the same key — direct or indirect left recursion
	// by construction, since no other path can revisit the same key
	// synchronously — consults whatever derivedMemo holds so far
	// instead of recursing again, breaking the cycle. This realizes
	// spec §4.F's per-nonterminal state machine's "descending" state;
	// growth beyond the base case then happens through the ascend
	// retries described in §4.F "Ascend-decision" (see DESIGN.md).
	descending map[derivedKey]bool

	eoi *lex.Terminal
}

// New builds a Parser over lx using types as the ordered nonterminal
// registry (TypeID i refers to types[i]). It returns a
// syntactic-conditions error if zero or more than one type satisfies
// Start(conditions).
func New(lx *lex.Lexer, types []NonterminalType) (*Parser, error) {
	conditions := lx.Conditions()

	var starts []TypeID
	for i, t := range types {
		if t.Start(conditions) {
			starts = append(starts, TypeID(i))
		}
	}
	if len(starts) == 0 {
		return nil, ferrors.NewNoStartingSymbol()
	}
	if len(starts) > 1 {
		names := make([]string, len(starts))
		for i, s := range starts {
			names[i] = types[s].Name()
		}
		return nil, ferrors.NewMultipleStartingSymbols(names)
	}

	first := func(t TypeID) []TypeID { return types[t].First(conditions) }

	return &Parser{
		lexer:       lx,
		conditions:  conditions,
		types:       types,
		startType:   starts[0],
		scc:         computeLeftRecursiveSCCs(len(types), first),
		bsr:         NewBSR(),
		derivedMemo: map[derivedKey][]*lex.Terminal{},
		descending:  map[derivedKey]bool{},
	}, nil
}

// BSR returns the BSR being populated by this parse. Descend
// implementations use it to add complete EPNs for the productions
// they match.
func (p *Parser) BSR() *BSR {
	return p.bsr
}

// Lexer returns the lexer feeding this parser.
func (p *Parser) Lexer() *lex.Lexer {
	return p.lexer
}

// Conditions returns the conditions this parser was built with.
func (p *Parser) Conditions() cond.Set {
	return p.conditions
}

// Type returns the descriptor for id.
func (p *Parser) Type(id TypeID) NonterminalType {
	return p.types[id]
}

// Parse runs syntactic analysis over the lexer's input, populating
// BSR() with every derivation (spec §4.F "Public contract"). It
// returns NoDerivation if the starting symbol does not derive a
// prefix whose end coincides with end-of-input, or a lexical error
// surfaced from the underlying lexer.
func (p *Parser) Parse() error {
	seed := ParsingState{Start: p.lexer.StartPosition(), Split: p.lexer.StartPosition()}
	// ascendOverride is left nil so decideAscend's no-caller case
	// applies: a left-recursive starting symbol must ascend from its
	// very first call, since there is no other caller left to trigger
	// the retry that grows it past its base case (see DESIGN.md).
	_, err := p.deriveNonterminal(p.startType, []ParsingState{seed}, nil)
	if err != nil {
		if _, ok := err.(derivationException); !ok {
			return err
		}
	}
	return p.completion()
}

// Derive attempts to extend each of states by consuming cls (spec
// §4.F "Derive"). Grammar-authored NonterminalType.Descend
// implementations call this to walk their productions. ascend is nil
// to let the parser decide at runtime (§4.F "Ascend-decision"), or a
// pointer to force the decision either way.
func (p *Parser) Derive(cls Symbol, states []ParsingState, ascend *bool) ([]ParsingState, error) {
	if cls.IsTerminal() {
		return p.deriveTerminal(cls.Tag(), states)
	}
	return p.deriveNonterminal(cls.Type(), states, ascend)
}

func (p *Parser) deriveTerminal(tag lex.TagID, states []ParsingState) ([]ParsingState, error) {
	var out []ParsingState
	seen := map[string]bool{}
	for _, st := range states {
		term, err := p.lexer.NextTerminal(st.EndTerminal)
		if err != nil {
			return nil, err
		}
		p.noteEOI(term)
		if term == nil || !term.HasTag(tag) {
			continue
		}
		ns := st.extend(Term(tag), term)
		if k := ns.Key(); !seen[k] {
			seen[k] = true
			out = append(out, ns)
			p.bsr.Add(EPN{State: ns})
		}
	}
	if len(out) == 0 {
		return nil, errNoDerivation
	}
	return out, nil
}

func (p *Parser) deriveNonterminal(typ TypeID, states []ParsingState, ascendOverride *bool) ([]ParsingState, error) {
	var out []ParsingState
	seen := map[string]bool{}

	caller, hasCaller := p.currentCaller()

	for _, st := range states {
		endPos := st.endPosition()
		key := derivedKey{typ: typ, end: endPos}

		var ends []*lex.Terminal
		if p.descending[key] {
			// Reentrant call onto a key already being computed
			// higher up this same call stack: direct or indirect
			// left recursion. Use whatever derivedMemo has
			// accumulated so far rather than recursing again — the
			// eventual ascend retry (triggered once the in-flight
			// descend returns) is what grows this past its base
			// case, not this nested call.
			ends = p.derivedMemo[key]
		} else {
			ascend := false
			if ascendOverride != nil {
				ascend = *ascendOverride
			} else {
				// The caller's own left recursion only matters when typ
				// sits at the start of the caller's production; a later
				// symbol (the second A of A -> A A) is decided as if it
				// had no caller, so it can still grow by ascending.
				leftmost := hasCaller && st.Start.Index == endPos.Index
				ascend = p.decideAscend(caller, leftmost, typ)
			}

			memoized := false
			ends, memoized = p.derivedMemo[key]
			if !memoized || ascend {
				seed := ParsingState{Start: endPos, Split: endPos, EndTerminal: st.EndTerminal}
				grew := p.descend(typ, key, seed)
				if ascend && grew {
					p.runAscend(typ, st)
				}
				ends = p.derivedMemo[key]
			}
		}

		for _, endTerm := range ends {
			ns := st.extend(NonTerm(typ), endTerm)
			if k := ns.Key(); !seen[k] {
				seen[k] = true
				out = append(out, ns)
				p.bsr.Add(EPN{State: ns})
			}
		}
	}

	if len(out) == 0 {
		return nil, errNoDerivation
	}
	return out, nil
}

// descend pushes typ onto the descent stack (so nested Derive calls
// can see their caller for the ascend-decision rule), marks key as
// descending (so a reentrant left-recursive call onto the same key
// stops instead of recursing forever), invokes its Descend callback,
// and folds any newly discovered end terminals into derivedMemo[key].
// It returns whether the memo grew.
func (p *Parser) descend(typ TypeID, key derivedKey, seed ParsingState) bool {
	p.descendStk = append(p.descendStk, typ)
	p.descending[key] = true
	results := p.types[typ].Descend(p, seed)
	delete(p.descending, key)
	p.descendStk = p.descendStk[:len(p.descendStk)-1]

	grew := false
	existing := p.derivedMemo[key]
	for _, r := range results {
		if r.EndTerminal == nil {
			continue
		}
		found := false
		for _, e := range existing {
			if e == r.EndTerminal {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, r.EndTerminal)
			grew = true
		}
	}
	p.derivedMemo[key] = existing
	return grew
}

// runAscend invokes typ's custom Ascender if it implements one,
// otherwise the default behavior: retry every ascend-parent, swallowing
// derivationException so one parent's failure doesn't block the others
// (spec §4.D, §6, §7).
func (p *Parser) runAscend(typ TypeID, current ParsingState) {
	nt := p.types[typ]
	if asc, ok := nt.(Ascender); ok {
		asc.Ascend(p, current)
		return
	}

	info := p.scc[typ]
	if info == nil {
		return
	}
	ascend := true
	for _, parent := range info.ascendParents {
		_, err := p.deriveNonterminal(parent, []ParsingState{current}, &ascend)
		if err != nil {
			if _, ok := err.(derivationException); !ok {
				// A lexical error surfaced mid-retry; swallow here too,
				// consistent with "one failing ascend-parent does not
				// block others" — the furthest-reached position is
				// still tracked via noteEOI and will be reported by
				// completion() if nothing else succeeds.
				continue
			}
		}
	}
}

// decideAscend implements spec §4.F "Ascend-decision": ascend iff
// callee is in a left-recursive SCC and (the caller has no left
// recursion, or callee is not in the caller's first-in-SCC set).
func (p *Parser) decideAscend(caller TypeID, hasCaller bool, callee TypeID) bool {
	if _, calleeIsLR := p.scc[callee]; !calleeIsLR {
		return false
	}
	if !hasCaller {
		return true
	}
	callerInfo, callerIsLR := p.scc[caller]
	if !callerIsLR {
		return true
	}
	return !containsType(callerInfo.firstInSCC, callee)
}

func (p *Parser) currentCaller() (TypeID, bool) {
	if len(p.descendStk) == 0 {
		return 0, false
	}
	return p.descendStk[len(p.descendStk)-1], true
}

// noteEOI tracks the furthest terminal consulted, used to anchor
// NoDerivation (spec §4.F "End-of-input tracking"). When two
// terminals share a start index (ambiguous lexing), the existing eoi
// is kept unless the new terminal reaches strictly further, per the
// open question in spec §9 — a simplification of "prefer whichever is
// reachable through the .next chain" (see DESIGN.md).
func (p *Parser) noteEOI(term *lex.Terminal) {
	if term == nil {
		return
	}
	if p.eoi == nil || term.End.Index > p.eoi.End.Index {
		p.eoi = term
	}
}

// completion implements spec §4.F "Completion".
func (p *Parser) completion() error {
	if p.eoi == nil {
		return nil
	}

	key := StartKey{Type: p.startType, Start: p.lexer.StartPosition(), End: p.eoi.End}
	if !p.bsr.HasStart(key) {
		return ferrors.NewNoDerivation(p.eoi.Start)
	}

	beyond, err := p.lexer.NextTerminal(p.eoi)
	if err != nil {
		return err
	}
	if beyond != nil {
		return ferrors.NewNoDerivation(beyond.Start)
	}

	p.bsr.Start = &key
	return nil
}
