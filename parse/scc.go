package parse

// sccInfo records, for one member of a left-recursive strongly
// connected component of the FIRST graph, the data the ascend-decision
// rule and default ascend retry need (spec §4.E).
type sccInfo struct {
	members       []TypeID
	firstInSCC    []TypeID
	ascendParents []TypeID
}

// computeLeftRecursiveSCCs runs Tarjan's algorithm over the FIRST
// graph {v -> first(v)} for nonterminal types 0..n-1, iteratively to
// avoid deep recursion on grammars with long left-recursive chains
// (spec §4.E, Design Note "Left-recursion via SCCs"). It returns one
// sccInfo per member of every SCC that is a genuine left recursion: a
// component of size > 1, or a singleton with a self-loop in FIRST.
func computeLeftRecursiveSCCs(n int, first func(TypeID) []TypeID) map[TypeID]*sccInfo {
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	visited := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var stack []TypeID
	var components [][]TypeID
	counter := 0

	type frame struct {
		v        TypeID
		children []TypeID
		next     int
	}

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		var work []*frame
		push := func(v TypeID) {
			visited[v] = true
			index[v] = counter
			low[v] = counter
			counter++
			stack = append(stack, v)
			onStack[v] = true
			work = append(work, &frame{v: v, children: first(v)})
		}
		push(TypeID(start))

		for len(work) > 0 {
			f := work[len(work)-1]
			if f.next < len(f.children) {
				w := f.children[f.next]
				f.next++
				if !visited[w] {
					push(w)
				} else if onStack[w] && index[w] < low[f.v] {
					low[f.v] = index[w]
				}
				continue
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				if low[f.v] < low[parent.v] {
					low[parent.v] = low[f.v]
				}
			}
			if low[f.v] == index[f.v] {
				var comp []TypeID
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == f.v {
						break
					}
				}
				components = append(components, comp)
			}
		}
	}

	result := map[TypeID]*sccInfo{}
	for _, comp := range components {
		isLeftRecursive := len(comp) > 1
		if !isLeftRecursive && len(comp) == 1 {
			v := comp[0]
			for _, w := range first(v) {
				if w == v {
					isLeftRecursive = true
					break
				}
			}
		}
		if !isLeftRecursive {
			continue
		}

		members := make(map[TypeID]bool, len(comp))
		for _, v := range comp {
			members[v] = true
		}
		for _, v := range comp {
			info := &sccInfo{members: append([]TypeID(nil), comp...)}
			for _, w := range first(v) {
				if members[w] {
					info.firstInSCC = append(info.firstInSCC, w)
				}
			}
			for _, w := range comp {
				for _, x := range first(w) {
					if x == v {
						info.ascendParents = append(info.ascendParents, w)
						break
					}
				}
			}
			result[v] = info
		}
	}
	return result
}

func containsType(ids []TypeID, id TypeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
