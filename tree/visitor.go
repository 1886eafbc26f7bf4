package tree

import (
	"github.com/ignea-lp/front/parse"
)

// BSRVisitor overrides the phases of the BSR traversal skeleton (spec
// §4.H "Skeleton"): FIFO descent with level-change signaling,
// followed (iff Bottom reports true) by LIFO ascent with symmetric
// signaling. Descend receives the EPN set occupying one traversal
// slot (the candidates returned by a single LeftChildren/RightChildren
// call, or the root set on the first call) and returns the subset to
// keep descending into — an empty return prunes the branch.
type BSRVisitor interface {
	TopBefore(bsr *parse.BSR)
	Descend(epns []parse.EPN, levelChanged bool) []parse.EPN
	Bottom() bool
	Ascend(epns []parse.EPN, levelChanged bool)
	TopAfter(bsr *parse.BSR)
}

// BaseBSRVisitor is a no-op BSRVisitor embeddable by concrete
// variants that only need to override a subset of the phases.
type BaseBSRVisitor struct{}

func (BaseBSRVisitor) TopBefore(*parse.BSR)                     {}
func (BaseBSRVisitor) Descend(epns []parse.EPN, _ bool) []parse.EPN { return epns }
func (BaseBSRVisitor) Bottom() bool                             { return false }
func (BaseBSRVisitor) Ascend([]parse.EPN, bool)                 {}
func (BaseBSRVisitor) TopAfter(*parse.BSR)                      {}

type levelCounter struct {
	current, next int
}

// VisitBSR drives v over bsr starting from bsr's completion key. It is
// a no-op if the BSR has no completion key or an empty root EPN set.
func VisitBSR(v BSRVisitor, bsr *parse.BSR) {
	if bsr.Start == nil {
		return
	}
	root := bsr.AtKey(bsr.Start.Type, bsr.Start.Start, bsr.Start.End)
	if len(root) == 0 {
		return
	}

	descendQueue := [][]parse.EPN{root}
	var ascendStack [][]parse.EPN
	descendLevels := levelCounter{current: 1, next: 0}
	var ascendLevels []int
	ascendLevels = append(ascendLevels, 1)

	v.TopBefore(bsr)

	for len(descendQueue) > 0 {
		epns := descendQueue[0]
		descendQueue = descendQueue[1:]
		levelChanged := false

		if descendLevels.current == 0 {
			levelChanged = true
			descendLevels.current = descendLevels.next
			descendLevels.next = 0
			ascendLevels = append(ascendLevels, descendLevels.current)
		}
		descendLevels.current--

		epns = v.Descend(epns, levelChanged)
		if len(epns) == 0 {
			ascendLevels[len(ascendLevels)-1]--
			if ascendLevels[len(ascendLevels)-1] == 0 {
				ascendLevels = ascendLevels[:len(ascendLevels)-1]
			}
			continue
		}

		ascendStack = append(ascendStack, epns)

		for _, epn := range epns {
			left := bsr.LeftChildren(epn)
			right := bsr.RightChildren(epn)
			if len(left) > 0 {
				descendQueue = append(descendQueue, left)
				descendLevels.next++
			}
			if len(right) > 0 {
				descendQueue = append(descendQueue, right)
				descendLevels.next++
			}
		}
	}

	if !v.Bottom() {
		return
	}

	for len(ascendStack) > 0 {
		epns := ascendStack[len(ascendStack)-1]
		ascendStack = ascendStack[:len(ascendStack)-1]
		levelChanged := false

		if ascendLevels[len(ascendLevels)-1] == 0 {
			levelChanged = true
			ascendLevels = ascendLevels[:len(ascendLevels)-1]
		}
		ascendLevels[len(ascendLevels)-1]--
		v.Ascend(epns, levelChanged)
	}

	v.TopAfter(bsr)
}

// TreeVisitor overrides the phases of the tree traversal skeleton,
// the Node-based mirror of BSRVisitor. Descend returns nil to prune a
// branch.
type TreeVisitor interface {
	TopBefore(root Node)
	Descend(node Node, levelChanged bool) Node
	Bottom() bool
	Ascend(node Node, levelChanged bool)
	TopAfter(root Node)
}

// BaseTreeVisitor is a no-op TreeVisitor embeddable by concrete
// variants that only need to override a subset of the phases.
type BaseTreeVisitor struct{}

func (BaseTreeVisitor) TopBefore(Node)                 {}
func (BaseTreeVisitor) Descend(node Node, _ bool) Node  { return node }
func (BaseTreeVisitor) Bottom() bool                    { return false }
func (BaseTreeVisitor) Ascend(Node, bool)               {}
func (BaseTreeVisitor) TopAfter(Node)                   {}

// VisitTree drives v over the tree rooted at root.
func VisitTree(v TreeVisitor, root Node) {
	descendQueue := []Node{root}
	var ascendStack []Node
	descendLevels := levelCounter{current: 1, next: 0}
	var ascendLevels []int
	ascendLevels = append(ascendLevels, 1)

	v.TopBefore(root)

	for len(descendQueue) > 0 {
		node := descendQueue[0]
		descendQueue = descendQueue[1:]
		levelChanged := false

		if descendLevels.current == 0 {
			levelChanged = true
			descendLevels.current = descendLevels.next
			descendLevels.next = 0
			ascendLevels = append(ascendLevels, descendLevels.current)
		}
		descendLevels.current--

		result := v.Descend(node, levelChanged)
		if result == nil {
			ascendLevels[len(ascendLevels)-1]--
			if ascendLevels[len(ascendLevels)-1] == 0 {
				ascendLevels = ascendLevels[:len(ascendLevels)-1]
			}
			continue
		}
		node = result
		ascendStack = append(ascendStack, node)

		if nt, ok := node.(*NonterminalNode); ok {
			descendQueue = append(descendQueue, nt.Children...)
			descendLevels.next += len(nt.Children)
		}
	}

	if !v.Bottom() {
		return
	}

	for len(ascendStack) > 0 {
		node := ascendStack[len(ascendStack)-1]
		ascendStack = ascendStack[:len(ascendStack)-1]
		levelChanged := false

		if ascendLevels[len(ascendLevels)-1] == 0 {
			levelChanged = true
			ascendLevels = ascendLevels[:len(ascendLevels)-1]
		}
		ascendLevels[len(ascendLevels)-1]--
		v.Ascend(node, levelChanged)
	}

	v.TopAfter(root)
}
