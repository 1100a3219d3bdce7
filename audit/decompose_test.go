package audit_test

import (
	"github.com/william251082/lighthouse/audit"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// accountedSpan is the stretch a decomposition must account for: from the
// first offset to the end of the last top-level range, sibling gaps included.
func accountedSpan(ranges []audit.Range) uint64 {
	if len(ranges) == 0 {
		return 0
	}
	end := ranges[0].EndOffset
	for _, r := range ranges[1:] {
		if r.StartOffset >= end {
			end = r.EndOffset
		}
	}
	return end - ranges[0].StartOffset
}

var _ = Describe("Decompose", func() {
	used := func(start, end uint64) audit.Range {
		return audit.Range{StartOffset: start, EndOffset: end, IsUsed: true}
	}
	unused := func(start, end uint64) audit.Range {
		return audit.Range{StartOffset: start, EndOffset: end}
	}

	DescribeTable("computes used/unused byte totals",
		func(ranges []audit.Range, expected audit.UsedUnused) {
			result := audit.Decompose(ranges)
			Expect(result).To(Equal(expected))

			By("counting every byte exactly once")
			Expect(result.Used + result.Unused).To(Equal(accountedSpan(ranges)))
		},
		Entry("empty sequence",
			[]audit.Range{},
			audit.UsedUnused{}),
		Entry("single used range",
			[]audit.Range{used(0, 100)},
			audit.UsedUnused{Used: 100}),
		Entry("single unused range",
			[]audit.Range{unused(40, 60)},
			audit.UsedUnused{Unused: 20}),
		Entry("two touching disjoint ranges",
			[]audit.Range{used(0, 100), unused(100, 120)},
			audit.UsedUnused{Used: 100, Unused: 20}),
		Entry("gap between siblings counts as used",
			[]audit.Range{used(0, 100), used(150, 200)},
			audit.UsedUnused{Used: 200}),
		Entry("unused sub-region carved out of a used parent",
			[]audit.Range{used(0, 100), used(10, 50), unused(20, 30), used(75, 90)},
			audit.UsedUnused{Used: 90, Unused: 10}),
		Entry("unused parent discards nested children",
			[]audit.Range{unused(0, 100), used(10, 50), used(60, 80), used(100, 130)},
			audit.UsedUnused{Used: 30, Unused: 100}),
		Entry("alternating nesting four levels deep",
			[]audit.Range{used(0, 1000), unused(100, 900), used(200, 800), unused(300, 700)},
			audit.UsedUnused{Used: 200, Unused: 800}),
		Entry("two nested parents separated by a gap",
			[]audit.Range{used(0, 100), unused(20, 40), used(150, 250), unused(200, 240)},
			audit.UsedUnused{Used: 190, Unused: 60}),
	)

	It("tolerates a child overhanging its parent boundary", func() {
		ranges := []audit.Range{used(0, 100), used(50, 150)}
		Expect(audit.Decompose(ranges)).To(Equal(audit.UsedUnused{Used: 150}))
	})

	It("adds componentwise", func() {
		sum := audit.UsedUnused{Used: 3, Unused: 7}.Add(audit.UsedUnused{Used: 10, Unused: 1})
		Expect(sum).To(Equal(audit.UsedUnused{Used: 13, Unused: 8}))
	})
})

var _ = Describe("SortRanges", func() {
	It("orders by start ascending, end descending on ties", func() {
		ranges := []audit.Range{
			{StartOffset: 10, EndOffset: 20},
			{StartOffset: 0, EndOffset: 50},
			{StartOffset: 0, EndOffset: 100, IsUsed: true},
			{StartOffset: 5, EndOffset: 8},
		}
		audit.SortRanges(ranges)
		Expect(ranges).To(Equal([]audit.Range{
			{StartOffset: 0, EndOffset: 100, IsUsed: true},
			{StartOffset: 0, EndOffset: 50},
			{StartOffset: 5, EndOffset: 8},
			{StartOffset: 10, EndOffset: 20},
		}))
	})
})
