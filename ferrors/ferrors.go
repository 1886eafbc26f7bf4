// Package ferrors defines the typed error taxonomy of the front-end
// engine (spec §4.A, §7): construction-time "conditions" errors,
// analysis-time lexical/syntactic errors carrying a Position, and the
// one semantic error the core itself raises (AmbiguousGrammar).
//
// This mirrors ignea-lp/front's exception-subclass taxonomy without a
// class hierarchy: one unexported struct per taxonomy branch, exported
// constructors, and an exported Kind() method plus zero-value sentinels
// so callers can use errors.Is(err, ferrors.ErrNoDerivation) the way
// tqerrors.go's callers use its Unwrap-based chain.
package ferrors

import (
	"fmt"

	"github.com/ignea-lp/front/position"
)

// Kind identifies which branch of the taxonomy an error belongs to.
type Kind int

const (
	KindLexicalConditions Kind = iota
	KindLexical
	KindSyntacticConditions
	KindSyntactic
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindLexicalConditions:
		return "lexical-conditions"
	case KindLexical:
		return "lexical"
	case KindSyntacticConditions:
		return "syntactic-conditions"
	case KindSyntactic:
		return "syntactic"
	case KindSemantic:
		return "semantic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// conditionsError is raised during lexer/parser initialization when the
// grammar is misconfigured for the active conditions: missing/multiple
// indent-dedent tags, or no/multiple starting nonterminal. It is
// identified by a tag/type identifier rather than a source position,
// since no input has been consumed yet.
type conditionsError struct {
	kind  Kind
	ident string
	msg   string
}

func (e *conditionsError) Error() string { return e.msg }

// Kind returns the taxonomy branch of e.
func (e *conditionsError) Kind() Kind { return e.kind }

// Identifier returns the tag or nonterminal-type identifier e concerns,
// if any.
func (e *conditionsError) Identifier() string { return e.ident }

// Is reports whether target is a conditionsError of the same Kind,
// regardless of identifier or message, so that a zero-value sentinel
// such as ErrLexicalConditions matches any error of that kind.
func (e *conditionsError) Is(target error) bool {
	t, ok := target.(*conditionsError)
	return ok && t.kind == e.kind
}

// NewMissingIndentDedent reports that only one of the indent/dedent
// tags was declared; spec §4.C requires both or neither.
func NewMissingIndentDedent(have, missing string) error {
	return &conditionsError{
		kind:  KindLexicalConditions,
		ident: missing,
		msg:   fmt.Sprintf("grammar declares a %s tag but no %s tag: both or neither must be present", have, missing),
	}
}

// NewMultipleIndentDedent reports that more than one tag was marked
// with the same off-side role (indent or dedent).
func NewMultipleIndentDedent(role string, ids []string) error {
	return &conditionsError{
		kind:  KindLexicalConditions,
		ident: role,
		msg:   fmt.Sprintf("grammar declares more than one %s tag: %v", role, ids),
	}
}

// NewNoStartingSymbol reports that no nonterminal type satisfies
// start(conditions) under the active conditions.
func NewNoStartingSymbol() error {
	return &conditionsError{
		kind: KindSyntacticConditions,
		msg:  "no nonterminal type satisfies start(conditions) for the active conditions",
	}
}

// NewMultipleStartingSymbols reports that more than one nonterminal
// type satisfies start(conditions) under the active conditions.
func NewMultipleStartingSymbols(ids []string) error {
	return &conditionsError{
		kind: KindSyntacticConditions,
		msg:  fmt.Sprintf("more than one nonterminal type satisfies start(conditions): %v", ids),
	}
}

// Sentinel zero-value conditionsErrors for errors.Is checks against an
// entire taxonomy branch.
var (
	ErrLexicalConditions   error = &conditionsError{kind: KindLexicalConditions}
	ErrSyntacticConditions error = &conditionsError{kind: KindSyntacticConditions}
)

// positionalError covers every taxonomy branch that carries a source
// Position: analysis-time lexical/syntactic errors and the semantic
// AmbiguousGrammar error.
type positionalError struct {
	kind Kind
	sub  string
	pos  *position.Position
	msg  string
}

func (e *positionalError) Error() string {
	if e.pos == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.pos, e.msg)
}

// Kind returns the taxonomy branch of e.
func (e *positionalError) Kind() Kind { return e.kind }

// Position returns the position e is anchored to.
func (e *positionalError) Position() *position.Position { return e.pos }

// Is reports whether target is a positionalError of the same Kind and,
// when target names a specific sub-case, the same sub-case.
func (e *positionalError) Is(target error) bool {
	t, ok := target.(*positionalError)
	if !ok || t.kind != e.kind {
		return false
	}
	return t.sub == "" || t.sub == e.sub
}

// NewNoTerminalTag reports that the NFA driver died with no accepted
// tag at pos; survivors names the tags that stayed alive longest, for
// diagnostics.
func NewNoTerminalTag(pos *position.Position, survivors []string) error {
	return &positionalError{
		kind: KindLexical,
		sub:  "no-terminal-tag",
		pos:  pos,
		msg:  fmt.Sprintf("no terminal tag could derive the input (tags alive longest: %v)", survivors),
	}
}

// NewIndentationMismatch reports that the off-side rule could not
// align a dedent to any outstanding indentation level.
func NewIndentationMismatch(pos *position.Position, column int, levels []int) error {
	return &positionalError{
		kind: KindLexical,
		sub:  "indentation-mismatch",
		pos:  pos,
		msg:  fmt.Sprintf("column %d does not match any outstanding indentation level %v", column, levels),
	}
}

// NewNoDerivation reports that the start symbol did not derive a
// prefix reaching pos.
func NewNoDerivation(pos *position.Position) error {
	return &positionalError{
		kind: KindSyntactic,
		sub:  "no-derivation",
		pos:  pos,
		msg:  "no derivation of the starting symbol reaches this position",
	}
}

// NewAmbiguousGrammar reports that an EPN set at pos held more than one
// member and no disambiguator resolved it.
func NewAmbiguousGrammar(pos *position.Position) error {
	return &positionalError{
		kind: KindSemantic,
		sub:  "ambiguous-grammar",
		pos:  pos,
		msg:  "grammar is ambiguous at this position and no disambiguator resolved it",
	}
}

// Sentinel zero-value positionalErrors, broad (whole branch) and
// specific (single sub-case).
var (
	ErrLexical             error = &positionalError{kind: KindLexical}
	ErrNoTerminalTag       error = &positionalError{kind: KindLexical, sub: "no-terminal-tag"}
	ErrIndentationMismatch error = &positionalError{kind: KindLexical, sub: "indentation-mismatch"}
	ErrSyntactic           error = &positionalError{kind: KindSyntactic}
	ErrNoDerivation        error = &positionalError{kind: KindSyntactic, sub: "no-derivation"}
	ErrSemantic            error = &positionalError{kind: KindSemantic}
	ErrAmbiguousGrammar    error = &positionalError{kind: KindSemantic, sub: "ambiguous-grammar"}
)

// WarningKind identifies the category of a Warning. The core defines
// no warnings of its own; this exists so a downstream collaborator can
// implement a formatter against a stable interface (§1, SPEC_FULL.md
// supplemented feature 5).
type WarningKind int

// Warning is the interface a downstream collaborator's warning
// taxonomy must satisfy to be reported alongside errors from this
// package. The core never constructs one itself.
type Warning interface {
	Kind() WarningKind
	Position() *position.Position
	Description() string
}
