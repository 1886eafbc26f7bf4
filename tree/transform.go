package tree

import "github.com/ignea-lp/front/parse"

// bsrTransformer is embedded by BSR transformer variants: it builds a
// fresh BSR in parallel with the traversal and swaps it in on Apply
// (spec §4.H "Transformer").
type bsrTransformer struct {
	BaseBSRVisitor
	newBSR *parse.BSR
}

func (t *bsrTransformer) TopBefore(bsr *parse.BSR) {
	t.newBSR = parse.NewBSR()
	if bsr.Start != nil {
		start := *bsr.Start
		t.newBSR.Start = &start
	}
}

// Apply replaces bsr's contents with the transformer's new BSR.
func (t *bsrTransformer) Apply(bsr *parse.BSR) {
	*bsr = *t.newBSR
}

// treeTransformer is the Node-based mirror of bsrTransformer.
type treeTransformer struct {
	BaseTreeVisitor
	newRoot Node
}

func (t *treeTransformer) TopBefore(Node) {
	t.newRoot = nil
}
