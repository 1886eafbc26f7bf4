package tree

import (
	"github.com/ignea-lp/front/ferrors"
	"github.com/ignea-lp/front/parse"
)

// Disambiguator collapses every EPN set of size greater than one to a
// single survivor via Choose, raising AmbiguousGrammar by default
// (spec §4.H "Disambiguator (BSR)", §4.I). Embed Disambiguator and
// override Choose to supply grammar-specific precedence.
type Disambiguator struct {
	bsrTransformer

	// Choose picks the surviving EPN from an ambiguous set of size >
	// 1. The default raises AmbiguousGrammar at the first candidate's
	// start position.
	Choose func(epns []parse.EPN) (parse.EPN, error)

	err error
}

func (d *Disambiguator) Descend(epns []parse.EPN, levelChanged bool) []parse.EPN {
	if d.err != nil {
		return nil
	}

	var chosen parse.EPN
	if len(epns) == 1 {
		chosen = epns[0]
	} else {
		choose := d.Choose
		if choose == nil {
			choose = defaultChoose
		}
		var err error
		chosen, err = choose(epns)
		if err != nil {
			d.err = err
			return nil
		}
	}

	d.newBSR.Add(chosen)
	return []parse.EPN{chosen}
}

func defaultChoose(epns []parse.EPN) (parse.EPN, error) {
	return parse.EPN{}, ferrors.NewAmbiguousGrammar(epns[0].State.Start)
}

// Disambiguate runs a Disambiguator over bsr, replacing it in place
// with the single surviving derivation tree. It returns the first
// AmbiguousGrammar error encountered, if any.
func Disambiguate(bsr *parse.BSR, choose func([]parse.EPN) (parse.EPN, error)) error {
	d := &Disambiguator{Choose: choose}
	VisitBSR(d, bsr)
	if d.err != nil {
		return d.err
	}
	d.Apply(bsr)
	return nil
}
