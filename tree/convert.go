package tree

import (
	"github.com/ignea-lp/front/lex"
	"github.com/ignea-lp/front/parse"
	"github.com/ignea-lp/front/position"
)

// BSRToTreeConverter builds a Node tree in parallel with a BSR
// traversal: one NonterminalNode per complete (typed) EPN, with
// children attached in left-then-right order and a synthetic
// terminal leaf inserted whenever a production's last symbol is a
// terminal tag rather than a nonterminal subtree (spec §4.H "BSR->Tree
// converter"). Run PositionFixer afterward is automatic — it fires
// from Bottom.
type BSRToTreeConverter struct {
	BaseBSRVisitor

	Tree *NonterminalNode

	bsr     *parse.BSR
	parents []*NonterminalNode
}

func (c *BSRToTreeConverter) TopBefore(bsr *parse.BSR) {
	c.bsr = bsr
	c.Tree = nil
	c.parents = nil
}

func (c *BSRToTreeConverter) Descend(epns []parse.EPN, _ bool) []parse.EPN {
	var parent *NonterminalNode
	if len(c.parents) > 0 {
		parent = c.parents[0]
		c.parents = c.parents[1:]
	}

	epn := epns[0]

	if epn.Type != nil {
		node := &NonterminalNode{Type: *epn.Type, Start: epn.State.Start, EndTerm: epn.State.EndTerminal}
		if parent != nil {
			if len(parent.Children) > 0 && parent.Children[0].StartPosition().Index < node.Start.Index {
				parent.Children = insertNode(parent.Children, 1, node)
			} else {
				parent.Children = insertNode(parent.Children, 0, node)
			}
		} else {
			c.Tree = node
		}
		parent = node
	}

	hasLeft := len(c.bsr.LeftChildren(epn)) > 0
	hasRight := len(c.bsr.RightChildren(epn)) > 0

	if hasLeft {
		c.parents = append(c.parents, parent)
	}
	if hasRight {
		c.parents = append(c.parents, parent)
	} else if epn.State.Split.Index != epn.State.EndTerminal.End.Index {
		last := epn.State.Symbols[len(epn.State.Symbols)-1]
		leaf := &TerminalNode{Tag: last.Tag(), Start: epn.State.Split, EndTerm: epn.State.EndTerminal}
		parent.Children = insertNode(parent.Children, 0, leaf)
	}

	return epns
}

func (c *BSRToTreeConverter) Bottom() bool {
	if c.Tree != nil {
		FixPositions(c.Tree)
	}
	return false
}

var _ BSRVisitor = (*BSRToTreeConverter)(nil)

func insertNode(children []Node, at int, n Node) []Node {
	children = append(children, nil)
	copy(children[at+1:], children[at:])
	children[at] = n
	return children
}

// ToTree converts bsr's current derivation (after pruning/
// disambiguation, if ambiguous) into a Node tree.
func ToTree(bsr *parse.BSR) *NonterminalNode {
	c := &BSRToTreeConverter{}
	VisitBSR(c, bsr)
	return c.Tree
}

// TreeToBSRConverter rebuilds a BSR from a Node tree: one complete
// EPN per nonterminal node plus one intermediate EPN per prefix of
// its children (spec §4.H "Tree->BSR converter"). Its TopBefore runs
// PositionUnfixer over the tree (required for the Split-position
// bookkeeping) and leaves the tree unfixed; ToBSR runs PositionFixer
// afterward to restore the tree's own invariant.
type TreeToBSRConverter struct {
	BaseTreeVisitor

	BSR *parse.BSR
}

func (c *TreeToBSRConverter) TopBefore(root Node) {
	nt := root.(*NonterminalNode)
	c.BSR = parse.NewBSR()
	c.BSR.Start = &parse.StartKey{Type: nt.Type, Start: nt.Start, End: nt.EndTerm.End}
	UnfixPositions(root)
}

func (c *TreeToBSRConverter) Descend(node Node, _ bool) Node {
	nt, ok := node.(*NonterminalNode)
	if !ok {
		return node
	}

	syms := make([]parse.Symbol, len(nt.Children))
	for i, ch := range nt.Children {
		syms[i] = symbolOf(ch)
	}

	full := parse.EPN{
		Type: &nt.Type,
		State: parse.ParsingState{
			Symbols:     syms,
			Start:       nt.Start,
			Split:       lastChildSplit(nt.Children),
			EndTerminal: nt.EndTerm,
		},
	}
	c.BSR.Add(full)

	for i := 0; i < len(nt.Children)-1; i++ {
		c.BSR.Add(parse.EPN{
			State: parse.ParsingState{
				Symbols:     syms[:i+1],
				Start:       nt.Start,
				Split:       nt.Children[i].StartPosition(),
				EndTerminal: endTerminalOf(nt.Children[i]),
			},
		})
	}

	return node
}

func (c *TreeToBSRConverter) Bottom() bool {
	return false
}

var _ TreeVisitor = (*TreeToBSRConverter)(nil)

// ToBSR converts root into a freshly populated BSR.
func ToBSR(root *NonterminalNode) *parse.BSR {
	c := &TreeToBSRConverter{}
	VisitTree(c, root)
	FixPositions(root)
	return c.BSR
}

func symbolOf(n Node) parse.Symbol {
	if t, ok := n.(*TerminalNode); ok {
		return parse.Term(t.Tag)
	}
	return parse.NonTerm(n.(*NonterminalNode).Type)
}

func endTerminalOf(n Node) *lex.Terminal {
	return n.EndTerminalOf()
}

// lastChildSplit returns the start position of the last child, the
// split position a complete EPN needs so that RightChildren's lookup
// (keyed on the last symbol, split, end) lands on the right-child
// entry produced for that same child (or, if it is itself interior,
// the intermediate entry one level up).
func lastChildSplit(children []Node) *position.Position {
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1].StartPosition()
}
