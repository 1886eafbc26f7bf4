package parse

import (
	"strings"

	"github.com/ignea-lp/front/position"
)

// StartKey identifies the top-level completion of a parse: the
// starting nonterminal type derived across the full input span (spec
// §4.F "Completion").
type StartKey struct {
	Type  TypeID
	Start *position.Position
	End   *position.Position
}

// bsrKey is the internal (key, start, end) triple spec §3 describes
// for the BSR's epns map, where key is either an NTId (for complete
// derivations) or a derivation-string tuple (for intermediates).
type bsrKey struct {
	sym   string
	start *position.Position
	end   *position.Position
}

func typedSymKey(t TypeID) string {
	return "T" + Symbol{kind: symbolNonterminal, typ: t}.canonical()
}

func stringSymKey(syms []Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = s.canonical()
	}
	return "S" + strings.Join(parts, ",")
}

func (e EPN) bsrKey() bsrKey {
	end := e.State.Split
	if e.State.EndTerminal != nil {
		end = e.State.EndTerminal.End
	}
	sym := stringSymKey(e.State.Symbols)
	if e.Type != nil {
		sym = typedSymKey(*e.Type)
	}
	return bsrKey{sym: sym, start: e.State.Start, end: end}
}

// BSR is the Binary Subtree Representation: the set of every EPN
// discovered during a parse, indexed by (key, start, end), plus the
// completion key of the starting symbol once the parse succeeds (spec
// §3, §4.G).
type BSR struct {
	Start *StartKey
	epns  map[bsrKey]map[string]EPN
}

// NewBSR returns an empty BSR.
func NewBSR() *BSR {
	return &BSR{epns: map[bsrKey]map[string]EPN{}}
}

// Add inserts epn into the BSR's EPN set at its (key, start, end)
// triple (spec §4.G "add").
func (b *BSR) Add(epn EPN) {
	key := epn.bsrKey()
	set, ok := b.epns[key]
	if !ok {
		set = map[string]EPN{}
		b.epns[key] = set
	}
	set[epn.State.Key()] = epn
}

func (b *BSR) lookup(key bsrKey) []EPN {
	set, ok := b.epns[key]
	if !ok {
		return nil
	}
	out := make([]EPN, 0, len(set))
	for _, e := range set {
		out = append(out, e)
	}
	return out
}

// AtKey returns the set of EPNs stored at the given complete-type key
// and span, or nil if none exist.
func (b *BSR) AtKey(t TypeID, start, end *position.Position) []EPN {
	return b.lookup(bsrKey{sym: typedSymKey(t), start: start, end: end})
}

// HasStart reports whether k names a non-empty EPN set in the BSR.
func (b *BSR) HasStart(k StartKey) bool {
	set, ok := b.epns[bsrKey{sym: typedSymKey(k.Type), start: k.Start, end: k.End}]
	return ok && len(set) > 0
}

// LeftChildren returns the EPN set at key (string[:-1], start, split),
// empty if start == split (by Index) or the prefix key is absent
// (spec §4.G "left_children").
func (b *BSR) LeftChildren(epn EPN) []EPN {
	syms := epn.State.Symbols
	if len(syms) == 0 {
		return nil
	}
	if epn.State.Start.Index == epn.State.Split.Index {
		return nil
	}
	key := bsrKey{sym: stringSymKey(syms[:len(syms)-1]), start: epn.State.Start, end: epn.State.Split}
	return b.lookup(key)
}

// RightChildren returns the EPN set at key (string[-1], split,
// end_terminal.end), empty if split == end, if the last symbol is a
// terminal tag, or if end_terminal is absent (spec §4.G
// "right_children").
func (b *BSR) RightChildren(epn EPN) []EPN {
	syms := epn.State.Symbols
	if len(syms) == 0 || epn.State.EndTerminal == nil {
		return nil
	}
	last := syms[len(syms)-1]
	if last.IsTerminal() {
		return nil
	}
	end := epn.State.EndTerminal.End
	if epn.State.Split.Index == end.Index {
		return nil
	}
	key := bsrKey{sym: typedSymKey(last.Type()), start: epn.State.Split, end: end}
	return b.lookup(key)
}

// All returns every EPN stored in the BSR, in unspecified order. It
// exists for visitors and debug rendering, not for semantic passes
// that must instead navigate from Start via LeftChildren/RightChildren.
func (b *BSR) All() []EPN {
	var out []EPN
	for _, set := range b.epns {
		for _, e := range set {
			out = append(out, e)
		}
	}
	return out
}
