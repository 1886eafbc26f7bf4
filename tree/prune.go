package tree

import "github.com/ignea-lp/front/parse"

// Pruner retains only the EPNs reachable from a BSR's completion key,
// discarding dead alternatives left behind by ambiguous or
// backtracked derivations (spec §4.H "Pruner (BSR)").
type Pruner struct {
	bsrTransformer
}

func (p *Pruner) Descend(epns []parse.EPN, levelChanged bool) []parse.EPN {
	for _, epn := range epns {
		p.newBSR.Add(epn)
	}
	return epns
}

// Prune runs a Pruner over bsr and replaces its contents with the
// reachable subset in place.
func Prune(bsr *parse.BSR) {
	p := &Pruner{}
	VisitBSR(p, bsr)
	p.Apply(bsr)
}
