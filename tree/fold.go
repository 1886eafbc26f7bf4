package tree

import (
	"errors"

	"github.com/ignea-lp/front/parse"
)

var errFoldIncomplete = errors.New("tree: fold did not produce a result at every node")

// BSRFold collects a bottom-up fold over a BSR: FoldInternal combines
// an EPN with the folded results of its left and right children
// (each nil-filtered), FoldExternal handles a leaf EPN with neither
// (spec §4.H "Fold"). A nil *T result is treated the way the
// originating design treats None — dropped from the parent's
// children list rather than propagated.
type BSRFold[T any] struct {
	BaseBSRVisitor

	FoldInternal func(epn parse.EPN, left, right []T) *T
	FoldExternal func(epn parse.EPN) *T

	bsr   *parse.BSR
	queue [][]*T
}

func (f *BSRFold[T]) TopBefore(*parse.BSR) {
	f.queue = nil
}

func (f *BSRFold[T]) Bottom() bool { return true }

func (f *BSRFold[T]) Ascend(epns []parse.EPN, _ bool) {
	var fold []*T
	for _, epn := range epns {
		var left, right []T
		hasLeft := len(f.bsr.LeftChildren(epn)) > 0
		hasRight := len(f.bsr.RightChildren(epn)) > 0

		if hasLeft || hasRight {
			if hasRight {
				right = filterFold(f.pop())
			}
			if hasLeft {
				left = filterFold(f.pop())
			}
			fold = append(fold, f.FoldInternal(epn, left, right))
		} else {
			fold = append(fold, f.FoldExternal(epn))
		}
	}
	f.queue = append([][]*T{fold}, f.queue...)
}

func (f *BSRFold[T]) pop() []*T {
	last := f.queue[len(f.queue)-1]
	f.queue = f.queue[:len(f.queue)-1]
	return last
}

func filterFold[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, *it)
		}
	}
	return out
}

var _ BSRVisitor = (*BSRFold[int])(nil)

// Fold drives the fold over bsr and returns the root level's raw
// (possibly nil) results.
func (f *BSRFold[T]) Fold(bsr *parse.BSR) []*T {
	f.bsr = bsr
	VisitBSR(f, bsr)
	if len(f.queue) == 0 {
		return nil
	}
	return f.queue[0]
}

// FoldAll drives the fold and returns bsr's single root result,
// erroring if the root fold produced nil (SPEC_FULL.md supplemented
// feature 4, mirroring fold_s()).
func (f *BSRFold[T]) FoldAll(bsr *parse.BSR) (T, error) {
	results := f.Fold(bsr)
	var zero T
	if len(results) != 1 || results[0] == nil {
		return zero, errFoldIncomplete
	}
	return *results[0], nil
}
