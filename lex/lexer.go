// Package lex implements the conditional, ambiguity-tolerant lexical
// engine of spec §4.B/§4.C: a per-tag NFA driver with longest-match
// tokenization, positive/negative ambiguity closures, an off-side
// (indentation) rule, and a lazily-extended, memoized terminal stream.
package lex

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ignea-lp/front/cond"
	"github.com/ignea-lp/front/ferrors"
	"github.com/ignea-lp/front/internal/iset"
	"github.com/ignea-lp/front/position"
)

type nfaStepKey struct {
	tag   TagID
	state uint64
	ch    rune
}

type nfaStepResult struct {
	accept bool
	next   uint64
}

// Lexer drives the lexical engine over one input string under one
// set of runtime conditions. A Lexer is not safe for concurrent use;
// callers needing parallel front-end processing use one Lexer per
// worker (§5).
type Lexer struct {
	filename   string
	input      []rune
	conditions cond.Set
	tags       []TerminalTag

	activeIDs []TagID
	ignoreSet iset.Set[TagID]
	indentTag *TagID
	dedentTag *TagID

	positivesClosure map[TagID][]TagID
	negativesClosure map[TagID][]TagID

	startPos *position.Position

	columnStack []int
	atEOF       bool

	first        *Terminal
	firstComputed bool
	computedNext  map[*Terminal]bool

	nfaStepCache map[nfaStepKey]nfaStepResult
	refineMemo   map[string]iset.Set[TagID]
}

// New builds a Lexer over input under conditions, using tags as the
// ordered terminal-tag registry (TagID i refers to tags[i]). It
// returns a lexical-conditions error (§4.A) if the indent/dedent tags
// are misconfigured: more than one of either role, or only one of the
// pair present.
func New(filename, input string, conditions cond.Set, tags []TerminalTag) (*Lexer, error) {
	lx := &Lexer{
		filename:     filename,
		input:        []rune(input),
		conditions:   conditions,
		tags:         tags,
		startPos:     position.New(filename),
		columnStack:  []int{1},
		computedNext: map[*Terminal]bool{},
		nfaStepCache: map[nfaStepKey]nfaStepResult{},
		refineMemo:   map[string]iset.Set[TagID]{},
	}

	var indentIDs, dedentIDs []TagID
	activeSet := iset.New[TagID]()
	for i, tag := range tags {
		id := TagID(i)
		isIndent := tag.Indent(conditions)
		isDedent := tag.Dedent(conditions)
		if isIndent {
			indentIDs = append(indentIDs, id)
		}
		if isDedent {
			dedentIDs = append(dedentIDs, id)
		}
		if !isIndent && !isDedent && tag.Start(conditions) {
			lx.activeIDs = append(lx.activeIDs, id)
			activeSet.Add(id)
		}
	}

	if len(indentIDs) > 1 {
		return nil, ferrors.NewMultipleIndentDedent("indent", namesOf(tags, indentIDs))
	}
	if len(dedentIDs) > 1 {
		return nil, ferrors.NewMultipleIndentDedent("dedent", namesOf(tags, dedentIDs))
	}
	if len(indentIDs) == 1 && len(dedentIDs) == 0 {
		return nil, ferrors.NewMissingIndentDedent("indent", "dedent")
	}
	if len(dedentIDs) == 1 && len(indentIDs) == 0 {
		return nil, ferrors.NewMissingIndentDedent("dedent", "indent")
	}
	if len(indentIDs) == 1 {
		lx.indentTag = &indentIDs[0]
		lx.dedentTag = &dedentIDs[0]
	}

	lx.ignoreSet = iset.New[TagID]()
	for _, id := range lx.activeIDs {
		if tags[id].Ignore(conditions) {
			lx.ignoreSet.Add(id)
		}
	}

	lx.positivesClosure = map[TagID][]TagID{}
	lx.negativesClosure = map[TagID][]TagID{}
	for _, id := range lx.activeIDs {
		lx.positivesClosure[id] = filterToSet(tags[id].Positives(conditions), activeSet)
		lx.negativesClosure[id] = filterToSet(tags[id].Negatives(conditions), activeSet)
	}

	return lx, nil
}

func namesOf(tags []TerminalTag, ids []TagID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = tags[id].Name()
	}
	return names
}

func filterToSet(ids []TagID, allowed iset.Set[TagID]) []TagID {
	out := make([]TagID, 0, len(ids))
	for _, id := range ids {
		if allowed.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// StartPosition returns the position the Lexer began scanning from.
// The Parser anchors its top-level BSR completion key to this exact
// instance (spec §4.F "Completion").
func (lx *Lexer) StartPosition() *position.Position {
	return lx.startPos
}

// Conditions returns the conditions this Lexer was built with.
func (lx *Lexer) Conditions() cond.Set {
	return lx.conditions
}

// Tag returns the descriptor for id.
func (lx *Lexer) Tag(id TagID) TerminalTag {
	return lx.tags[id]
}

// NextTerminal returns the terminal immediately following current, or
// the first terminal of the stream if current is nil. Repeated calls
// with the same argument return the identical object (memoization
// through Next); it returns nil, nil at end of input (spec §4.C
// "Public contract").
func (lx *Lexer) NextTerminal(current *Terminal) (*Terminal, error) {
	if current != nil {
		if lx.computedNext[current] {
			return current.Next, nil
		}
		next, err := lx.materializeAfter(current.End)
		if err != nil {
			return nil, err
		}
		current.Next = next
		lx.computedNext[current] = true
		return next, nil
	}

	if lx.firstComputed {
		return lx.first, nil
	}
	first, err := lx.materializeAfter(lx.startPos)
	if err != nil {
		return nil, err
	}
	lx.first = first
	lx.firstComputed = true
	return first, nil
}

// materializeAfter computes the chain of terminals (synthetic
// indent/dedent terminals, if any, followed by the next real
// terminal) that begins at from. It returns nil once input and the
// off-side column stack are both exhausted.
func (lx *Lexer) materializeAfter(from *position.Position) (*Terminal, error) {
	gapStart := from
	cursor := from

	for {
		if cursor.Index >= len(lx.input) {
			return lx.finishAtEOF(cursor)
		}

		acceptedTags, endPos, _, err := lx.driveNFA(cursor)
		if err != nil {
			return nil, err
		}

		refined := lx.refineTagSet(acceptedTags)
		if refined.Len() == 0 {
			// Ignore loop (§4.C): the matched span is entirely
			// ignored tags; skip it and restart the driver. The
			// off-side rule is not evaluated over this span alone —
			// it is folded into the next real terminal's gap.
			cursor = endPos
			continue
		}

		real := &Terminal{
			Tags:  refined,
			Value: string(lx.input[cursor.Index:endPos.Index]),
			Start: cursor,
			End:   endPos,
		}
		return lx.applyOffside(gapStart, real)
	}
}

// driveNFA runs the longest-match NFA driver (§4.C step 1-4) starting
// at start. It returns the accepted tag set at the furthest position
// the driver committed to, that position, and (only on failure) the
// tags that survived longest for diagnostics.
func (lx *Lexer) driveNFA(start *position.Position) (iset.Set[TagID], *position.Position, []TagID, error) {
	alive := make(map[TagID]uint64, len(lx.activeIDs))
	for _, id := range lx.activeIDs {
		alive[id] = lx.tags[id].StatesStart()
	}

	pos := start
	var accepted iset.Set[TagID]
	acceptedPos := start
	var lastAlive []TagID
	for id := range alive {
		lastAlive = append(lastAlive, id)
	}

	for pos.Index < len(lx.input) && len(alive) > 0 {
		ch := lx.input[pos.Index]
		next := pos.Copy()
		next.Advance(ch)

		nextAlive := make(map[TagID]uint64, len(alive))
		var acceptedNow iset.Set[TagID]
		for id, state := range alive {
			ok, ns := lx.stepNFA(id, state, ch)
			if ok {
				if acceptedNow == nil {
					acceptedNow = iset.New[TagID]()
				}
				acceptedNow.Add(id)
			}
			if ns != 0 {
				nextAlive[id] = ns
			}
		}

		if acceptedNow.Len() > 0 {
			accepted = acceptedNow
			acceptedPos = next
		}

		curAlive := make([]TagID, 0, len(alive))
		for id := range alive {
			curAlive = append(curAlive, id)
		}
		if len(curAlive) > 0 {
			lastAlive = curAlive
		}

		alive = nextAlive
		pos = next
	}

	if accepted == nil {
		sort.Slice(lastAlive, func(i, j int) bool { return lastAlive[i] < lastAlive[j] })
		return nil, nil, lastAlive, ferrors.NewNoTerminalTag(start, namesOf(lx.tags, lastAlive))
	}
	return accepted, acceptedPos, nil, nil
}

func (lx *Lexer) stepNFA(id TagID, state uint64, ch rune) (bool, uint64) {
	key := nfaStepKey{tag: id, state: state, ch: ch}
	if v, ok := lx.nfaStepCache[key]; ok {
		return v.accept, v.next
	}
	accept, next := lx.tags[id].NFA(state, ch)
	lx.nfaStepCache[key] = nfaStepResult{accept: accept, next: next}
	return accept, next
}

// refineTagSet applies the positive-then-negative ambiguity closure
// (memoized by the frozen accepted set) and then subtracts the
// ignored-tag set (§4.C "Ambiguity refinement").
func (lx *Lexer) refineTagSet(accepted iset.Set[TagID]) iset.Set[TagID] {
	key := frozenKey(accepted)
	closed, ok := lx.refineMemo[key]
	if !ok {
		closed = lx.closePositiveNegative(accepted)
		lx.refineMemo[key] = closed
	}

	refined := iset.New[TagID]()
	for _, id := range closed.Elements() {
		if !lx.ignoreSet.Has(id) {
			refined.Add(id)
		}
	}
	return refined
}

func frozenKey(s iset.Set[TagID]) string {
	ids := s.Elements()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

func (lx *Lexer) closePositiveNegative(accepted iset.Set[TagID]) iset.Set[TagID] {
	closed := accepted.Copy()
	for {
		added := false
		for _, id := range closed.Elements() {
			for _, p := range lx.positivesClosure[id] {
				if !closed.Has(p) {
					closed.Add(p)
					added = true
				}
			}
		}
		if !added {
			break
		}
	}

	negated := iset.New[TagID]()
	frontier := closed.Elements()
	seen := iset.New[TagID]()
	for len(frontier) > 0 {
		var next []TagID
		for _, id := range frontier {
			if seen.Has(id) {
				continue
			}
			seen.Add(id)
			for _, n := range lx.negativesClosure[id] {
				if !negated.Has(n) {
					negated.Add(n)
					next = append(next, n)
				}
			}
		}
		frontier = next
	}

	for _, id := range negated.Elements() {
		closed.Remove(id)
	}
	return closed
}

// applyOffside implements the off-side rule (§4.C): it determines
// whether real starts a new logical line by scanning the raw text
// between gapStart and real's start for a newline (or gapStart being
// the very first position of input), and if so compares real's
// column against the indentation stack, emitting synthetic
// indent/dedent terminals ahead of real as needed.
func (lx *Lexer) applyOffside(gapStart *position.Position, real *Terminal) (*Terminal, error) {
	if lx.indentTag == nil {
		return real, nil
	}

	isFirst := gapStart == lx.startPos
	gapText := string(lx.input[gapStart.Index:real.Start.Index])
	onNewLine := isFirst || strings.ContainsRune(gapText, '\n')
	if !onNewLine {
		return real, nil
	}

	var head, tail *Terminal
	appendSynthetic := func(t *Terminal) {
		if head == nil {
			head = t
		} else {
			tail.Next = t
			lx.computedNext[tail] = true
		}
		tail = t
	}

	col := real.Start.Column
	top := lx.columnStack[len(lx.columnStack)-1]
	switch {
	case col > top:
		lx.columnStack = append(lx.columnStack, col)
		appendSynthetic(lx.newSynthetic(*lx.indentTag, real.Start))
	case col < top:
		for len(lx.columnStack) > 1 && lx.columnStack[len(lx.columnStack)-1] > col {
			lx.columnStack = lx.columnStack[:len(lx.columnStack)-1]
			appendSynthetic(lx.newSynthetic(*lx.dedentTag, real.Start))
		}
		if lx.columnStack[len(lx.columnStack)-1] != col {
			return nil, ferrors.NewIndentationMismatch(real.Start, col, append([]int(nil), lx.columnStack...))
		}
	}

	if head == nil {
		return real, nil
	}
	tail.Next = real
	lx.computedNext[tail] = true
	return head, nil
}

// finishAtEOF pops any outstanding indentation levels, each emitting
// a dedent terminal (§4.C "On end-of-input"), and returns nil once
// the stack is back to its base level — the true end of the stream.
func (lx *Lexer) finishAtEOF(at *position.Position) (*Terminal, error) {
	if lx.indentTag == nil || lx.atEOF {
		return nil, nil
	}

	var head, tail *Terminal
	for len(lx.columnStack) > 1 {
		lx.columnStack = lx.columnStack[:len(lx.columnStack)-1]
		d := lx.newSynthetic(*lx.dedentTag, at)
		if head == nil {
			head = d
		} else {
			tail.Next = d
			lx.computedNext[tail] = true
		}
		tail = d
	}
	lx.atEOF = true
	if tail != nil {
		lx.computedNext[tail] = true
	}
	return head, nil
}

// newSynthetic builds an empty, position-collapsed off-side terminal
// (§4.C: "empty value, position-collapsed") anchored at pos.
func (lx *Lexer) newSynthetic(tag TagID, pos *position.Position) *Terminal {
	p := pos.Copy()
	return &Terminal{
		Tags:  iset.New(tag),
		Value: "",
		Start: p,
		End:   p,
	}
}

// DebugTagTable renders the active tag registry as a column-aligned
// text table, the way parse/lalr.go's String() renders its LALR
// table with rosed.
func (lx *Lexer) DebugTagTable() string {
	return debugTagTable(lx.tags, lx.activeIDs, lx.ignoreSet, lx.indentTag, lx.dedentTag)
}
