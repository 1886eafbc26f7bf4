// Package tree implements the BSR/tree visitor skeleton and the
// transformer variants built on it (spec §4.H, §4.I): pruning,
// disambiguation, folds, BSR<->tree conversion, and position
// fix/unfix. Unlike the originating design's per-class singleton
// visitor, every visitor here is a plain value allocated per call —
// nested use on different roots is simply two independent values,
// not an undefined-behavior trap (spec §5's "systems language"
// carve-out).
package tree

import (
	"fmt"

	"github.com/ignea-lp/front/lex"
	"github.com/ignea-lp/front/parse"
	"github.com/ignea-lp/front/position"
)

// Node is the common shape of every parse-tree node: its start
// position and the terminal it ends on, shared by terminal leaves and
// nonterminal interior nodes alike.
type Node interface {
	IsTerminal() bool
	StartPosition() *position.Position
	EndTerminalOf() *lex.Terminal
	node()
}

// TerminalNode is a leaf produced from one lexed (or synthetic)
// Terminal.
type TerminalNode struct {
	Tag     lex.TagID
	Start   *position.Position
	EndTerm *lex.Terminal
}

func (t *TerminalNode) IsTerminal() bool                  { return true }
func (t *TerminalNode) StartPosition() *position.Position { return t.Start }
func (t *TerminalNode) EndTerminalOf() *lex.Terminal       { return t.EndTerm }
func (*TerminalNode) node()                               {}

func (t *TerminalNode) String() string {
	return fmt.Sprintf("Terminal(%d, %s, %q)", t.Tag, t.Start, t.EndTerm.Value)
}

// NonterminalNode is an interior node completing one nonterminal type.
type NonterminalNode struct {
	Type     parse.TypeID
	Start    *position.Position
	EndTerm  *lex.Terminal
	Children []Node
}

func (n *NonterminalNode) IsTerminal() bool                  { return false }
func (n *NonterminalNode) StartPosition() *position.Position { return n.Start }
func (n *NonterminalNode) EndTerminalOf() *lex.Terminal      { return n.EndTerm }
func (*NonterminalNode) node()                               {}

func (n *NonterminalNode) String() string {
	return fmt.Sprintf("Nonterminal(%d, %s, %d children)", n.Type, n.Start, len(n.Children))
}

// Terminal returns n's i'th child as a *TerminalNode, and whether it
// both exists and is a terminal (SPEC_FULL.md supplemented feature 3).
func (n *NonterminalNode) Terminal(i int) (*TerminalNode, bool) {
	if i < 0 || i >= len(n.Children) {
		return nil, false
	}
	t, ok := n.Children[i].(*TerminalNode)
	return t, ok
}

// Nonterminal returns n's i'th child as a *NonterminalNode, and
// whether it both exists and is a nonterminal.
func (n *NonterminalNode) Nonterminal(i int) (*NonterminalNode, bool) {
	if i < 0 || i >= len(n.Children) {
		return nil, false
	}
	nt, ok := n.Children[i].(*NonterminalNode)
	return nt, ok
}

// MustTerminal is Terminal, but panics if i is out of range or not a
// terminal child. It exists for call sites that have already
// validated the tree's shape (e.g. against a known grammar) and would
// rather fail loudly than thread an error return everywhere.
func (n *NonterminalNode) MustTerminal(i int) *TerminalNode {
	t, ok := n.Terminal(i)
	if !ok {
		panic(fmt.Sprintf("tree: child %d of node is not a terminal", i))
	}
	return t
}

// MustNonterminal is Nonterminal, but panics if i is out of range or
// not a nonterminal child.
func (n *NonterminalNode) MustNonterminal(i int) *NonterminalNode {
	nt, ok := n.Nonterminal(i)
	if !ok {
		panic(fmt.Sprintf("tree: child %d of node is not a nonterminal", i))
	}
	return nt
}
