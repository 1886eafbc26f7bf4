package tree

import "github.com/ignea-lp/front/position"

// PositionFixer runs post-order over a tree, setting every node's
// start position from its children/terminal: a terminal's start
// becomes its end-terminal's start, a nonterminal's start becomes its
// first child's start (spec §4.H "PositionFixer"). It is the final
// step of a BSR->tree conversion, undoing the left-binarized split
// positions the converter initially assigns.
type PositionFixer struct {
	BaseTreeVisitor
}

func (PositionFixer) Bottom() bool { return true }

func (PositionFixer) Ascend(node Node, _ bool) {
	switch n := node.(type) {
	case *NonterminalNode:
		if len(n.Children) > 0 {
			n.Start = n.Children[0].StartPosition()
		}
	case *TerminalNode:
		n.Start = n.EndTerm.Start
	}
}

var _ TreeVisitor = PositionFixer{}

// FixPositions runs a PositionFixer over root.
func FixPositions(root Node) {
	VisitTree(PositionFixer{}, root)
}

// PositionUnfixer runs pre-order over a tree, pushing each
// nonterminal's start position down onto its first child and
// reconstructing each subsequent child's start from the previous
// child's end terminal (spec §4.H "PositionUnfixer"). It must run
// before a tree->BSR conversion, since the BSR's ParsingState.Split
// field requires that reconstructed span.
type PositionUnfixer struct {
	BaseTreeVisitor
}

func (PositionUnfixer) Descend(node Node, _ bool) Node {
	if nt, ok := node.(*NonterminalNode); ok && len(nt.Children) > 0 {
		setStart(nt.Children[0], nt.Start)
		for i := 1; i < len(nt.Children); i++ {
			setStart(nt.Children[i], nt.Children[i-1].EndTerminalOf().End)
		}
	}
	return node
}

var _ TreeVisitor = PositionUnfixer{}

// UnfixPositions runs a PositionUnfixer over root.
func UnfixPositions(root Node) {
	VisitTree(PositionUnfixer{}, root)
}

func setStart(node Node, pos *position.Position) {
	switch n := node.(type) {
	case *NonterminalNode:
		n.Start = pos
	case *TerminalNode:
		n.Start = pos
	}
}
