package lex

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/ignea-lp/front/internal/iset"
)

// debugTagTable renders the terminal-tag registry as a column-aligned
// text table, the same way parse/lalr.go's String() renders its LALR
// action/goto table with rosed.Edit(...).InsertTableOpts(...).
func debugTagTable(tags []TerminalTag, activeIDs []TagID, ignoreSet iset.Set[TagID], indentTag, dedentTag *TagID) string {
	ids := make([]TagID, len(activeIDs))
	copy(ids, activeIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	data := [][]string{
		{"ID", "Name", "Ignore", "Indent", "Dedent"},
	}
	for _, id := range ids {
		row := []string{
			fmt.Sprintf("%d", id),
			tags[id].Name(),
			fmt.Sprintf("%v", ignoreSet.Has(id)),
			fmt.Sprintf("%v", indentTag != nil && *indentTag == id),
			fmt.Sprintf("%v", dedentTag != nil && *dedentTag == id),
		}
		data = append(data, row)
	}
	if indentTag != nil {
		data = append(data, []string{fmt.Sprintf("%d", *indentTag), tags[*indentTag].Name(), "-", "true", "false"})
	}
	if dedentTag != nil {
		data = append(data, []string{fmt.Sprintf("%d", *dedentTag), tags[*dedentTag].Name(), "-", "false", "true"})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
