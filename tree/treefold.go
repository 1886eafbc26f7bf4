package tree

// TreeFold is the Node-based mirror of BSRFold: FoldInternal combines
// a nonterminal node with its (nil-filtered) children's folded
// results, FoldExternal handles a terminal leaf.
type TreeFold[T any] struct {
	BaseTreeVisitor

	FoldInternal func(node *NonterminalNode, children []T) *T
	FoldExternal func(node *TerminalNode) *T

	queue []*T
}

func (f *TreeFold[T]) TopBefore(Node) {
	f.queue = nil
}

func (f *TreeFold[T]) Bottom() bool { return true }

func (f *TreeFold[T]) Ascend(node Node, _ bool) {
	var result *T
	if nt, ok := node.(*NonterminalNode); ok {
		n := len(nt.Children)
		childResults := f.queue[len(f.queue)-n:]
		f.queue = f.queue[:len(f.queue)-n]
		result = f.FoldInternal(nt, filterFold(childResults))
	} else {
		result = f.FoldExternal(node.(*TerminalNode))
	}
	f.queue = append([]*T{result}, f.queue...)
}

var _ TreeVisitor = (*TreeFold[int])(nil)

// Fold drives the fold over root and returns its raw (possibly nil)
// result.
func (f *TreeFold[T]) Fold(root Node) *T {
	VisitTree(f, root)
	if len(f.queue) == 0 {
		return nil
	}
	return f.queue[0]
}

// FoldAll drives the fold and returns root's result, erroring if the
// root's own result is nil (SPEC_FULL.md supplemented feature 4,
// mirroring fold_s()). A nil result below the root is dropped from its
// parent's children, as in Fold, and does not by itself cause an error.
func (f *TreeFold[T]) FoldAll(root Node) (T, error) {
	result := f.Fold(root)
	var zero T
	if result == nil {
		return zero, errFoldIncomplete
	}
	return *result, nil
}
