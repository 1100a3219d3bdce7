package audit

// Range is a single flattened coverage span of a script resource.
// Ranges from different functions of the same script may nest arbitrarily;
// the decomposition below untangles that nesting without double-counting.
type Range struct {
	// StartOffset is the inclusive byte offset where the span begins.
	StartOffset uint64
	// EndOffset is the exclusive byte offset where the span ends.
	EndOffset uint64
	// IsUsed reports whether the span executed at least once.
	IsUsed bool
}

// Span returns the number of bytes the range covers.
func (r Range) Span() uint64 {
	return r.EndOffset - r.StartOffset
}

func (r Range) usedUnused() UsedUnused {
	if r.IsUsed {
		return UsedUnused{Used: r.Span()}
	}
	return UsedUnused{Unused: r.Span()}
}

// UsedUnused accumulates executed and never-executed byte counts.
type UsedUnused struct {
	Used   uint64 `json:"used"`
	Unused uint64 `json:"unused"`
}

// Add returns the componentwise sum of u and v.
func (u UsedUnused) Add(v UsedUnused) UsedUnused {
	return UsedUnused{Used: u.Used + v.Used, Unused: u.Unused + v.Unused}
}

// Decompose computes how many of the bytes covered by ranges executed and
// how many never did, counting every byte exactly once no matter how deeply
// the ranges nest.
//
// ranges must be sorted by StartOffset ascending, ties broken by EndOffset
// descending, so an enclosing range is always visited before any range
// nested inside it that shares its start. SortRanges produces this order.
//
// Two conventions are baked in:
//   - uninstrumented gaps between siblings count as executed bytes,
//   - an unused range makes coverage of anything nested inside it moot;
//     such children are discarded rather than counted.
func Decompose(ranges []Range) UsedUnused {
	var total UsedUnused

	// Siblings are consumed iteratively; recursion only descends into
	// nested children, so call depth equals nesting depth.
	for len(ranges) > 0 {
		first := ranges[0]

		// Maximal run of subsequent ranges nested inside first.
		split := 1
		for split < len(ranges) && ranges[split].StartOffset < first.EndOffset {
			split++
		}

		if split == 1 {
			// Nothing nests inside first.
			total = total.Add(first.usedUnused())
			if len(ranges) > 1 {
				total.Used += ranges[1].StartOffset - first.EndOffset
			}
			ranges = ranges[1:]
			continue
		}

		children := ranges[1:split]
		ranges = ranges[split:]

		if !first.IsUsed {
			total.Unused += first.Span()
			continue
		}

		// Children may overhang the parent boundary; take the true maximum.
		latestEnd := children[0].EndOffset
		for _, c := range children[1:] {
			if c.EndOffset > latestEnd {
				latestEnd = c.EndOffset
			}
		}
		nextStart := first.EndOffset
		if len(ranges) > 0 {
			nextStart = ranges[0].StartOffset
		}

		// Executed bytes of first not claimed by any child: the stretch
		// before the first child and the stretch after the last one.
		total.Used += children[0].StartOffset - first.StartOffset
		if nextStart > latestEnd {
			total.Used += nextStart - latestEnd
		}
		total = total.Add(Decompose(children))
	}

	return total
}
