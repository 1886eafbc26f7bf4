package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
)

// DebugEPNTable renders every EPN currently in the BSR as a
// column-aligned text table, the same rosed.InsertTableOpts pattern
// parse/lalr.go's String() uses for the LALR action/goto table.
func (p *Parser) DebugEPNTable() string {
	all := p.bsr.All()
	sort.Slice(all, func(i, j int) bool {
		return all[i].State.Key() < all[j].State.Key()
	})

	data := [][]string{
		{"Complete", "Symbols", "Start", "End"},
	}
	for _, epn := range all {
		complete := "-"
		if epn.Type != nil {
			complete = p.types[*epn.Type].Name()
		}
		end := epn.State.Split
		if epn.State.EndTerminal != nil {
			end = epn.State.EndTerminal.End
		}
		data = append(data, []string{
			complete,
			epn.State.String(),
			epn.State.Start.String(),
			end.String(),
		})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 120, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// DebugSCCTable renders the statically-computed left-recursive SCCs
// used by the ascend-decision rule (spec §4.E).
func (p *Parser) DebugSCCTable() string {
	ids := make([]TypeID, 0, len(p.scc))
	for id := range p.scc {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	data := [][]string{
		{"Type", "First-in-SCC", "Ascend-parents"},
	}
	for _, id := range ids {
		info := p.scc[id]
		data = append(data, []string{
			fmt.Sprintf("%s (%d)", p.types[id].Name(), id),
			fmt.Sprintf("%v", info.firstInSCC),
			fmt.Sprintf("%v", info.ascendParents),
		})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 120, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
