package audit

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// DefaultIgnoreThreshold is the number of wasted bytes at or below which a
// resource is not worth surfacing.
const DefaultIgnoreThreshold = 2048

// WasteResult is the per-resource outcome of the audit.
type WasteResult struct {
	URL        string `json:"url"`
	TotalBytes uint64 `json:"totalBytes"`
	// WastedBytes is the share of TotalBytes estimated never to have
	// executed. The waste ratio is measured over instrumentation byte
	// offsets (uncompressed source) and applied to the network transfer
	// size (often compressed); the two byte domains differ, so this is a
	// deliberate approximation of wasted delivered bytes.
	WastedBytes   uint64  `json:"wastedBytes"`
	WastedPercent float64 `json:"wastedPercent"`
	// NumUnused counts functions of the script with no used range at all.
	NumUnused int `json:"numUnused"`
}

// InvalidRangeError reports a coverage range that violates the
// instrumentation contract.
type InvalidRangeError struct {
	URL    string
	Start  uint64
	End    uint64
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid coverage range [%d,%d) in %s: %s", e.Start, e.End, e.URL, e.Reason)
}

// SortRanges orders ranges as Decompose requires: StartOffset ascending,
// ties broken by EndOffset descending.
func SortRanges(ranges []Range) {
	slices.SortFunc(ranges, func(a, b Range) int {
		if a.StartOffset != b.StartOffset {
			return cmp.Compare(a.StartOffset, b.StartOffset)
		}
		return cmp.Compare(b.EndOffset, a.EndOffset)
	})
}

// ComputeWaste derives the waste summary for one script against the network
// record of the same URL. The caller performs the URL join.
//
// Malformed instrumentation data (a range ending before it starts, or
// overlapping ranges within a single function) fails fast with an
// *InvalidRangeError instead of producing nonsense byte counts.
func ComputeWaste(script Script, resource ResourceRecord) (WasteResult, error) {
	var flat []Range
	numUnused := 0

	for _, fn := range script.Functions {
		fnStart := len(flat)
		fnUsed := false
		for _, cr := range fn.Ranges {
			if cr.EndOffset < cr.StartOffset {
				return WasteResult{}, &InvalidRangeError{
					URL:    script.URL,
					Start:  cr.StartOffset,
					End:    cr.EndOffset,
					Reason: "endOffset precedes startOffset",
				}
			}
			used := cr.Count > 0
			fnUsed = fnUsed || used
			flat = append(flat, Range{
				StartOffset: cr.StartOffset,
				EndOffset:   cr.EndOffset,
				IsUsed:      used,
			})
		}

		own := slices.Clone(flat[fnStart:])
		SortRanges(own)
		for i := 1; i < len(own); i++ {
			if own[i].StartOffset < own[i-1].EndOffset {
				return WasteResult{}, &InvalidRangeError{
					URL:    script.URL,
					Start:  own[i].StartOffset,
					End:    own[i].EndOffset,
					Reason: "overlaps another range of the same function",
				}
			}
		}
		if !fnUsed {
			numUnused++
		}
	}

	SortRanges(flat)
	counts := Decompose(flat)

	// A script with zero instrumented bytes reports zero waste, not NaN.
	var ratio float64
	if total := counts.Used + counts.Unused; total > 0 {
		ratio = float64(counts.Unused) / float64(total)
	}

	return WasteResult{
		URL:           script.URL,
		TotalBytes:    resource.TransferSize,
		WastedBytes:   uint64(math.Round(float64(resource.TransferSize) * ratio)),
		WastedPercent: 100 * ratio,
		NumUnused:     numUnused,
	}, nil
}

// Aggregate joins coverage samples against network records and reduces them
// to one waste summary per URL.
//
// Scripts without a matching record are dropped silently; their bytes were
// never delivered over the observed network. Coverage collection can yield
// several samples for the same URL; the one with the smaller WastedBytes
// wins, since spurious duplicates tend to under-report usage. Results whose
// WastedBytes is at or below ignoreThreshold are dropped. The returned
// order is stable by first-seen URL.
func Aggregate(scripts []Script, resources []ResourceRecord, ignoreThreshold uint64) ([]WasteResult, error) {
	byURL := make(map[string]ResourceRecord, len(resources))
	for _, res := range resources {
		if _, ok := byURL[res.URL]; !ok {
			byURL[res.URL] = res
		}
	}

	var order []string
	best := make(map[string]WasteResult, len(scripts))
	for _, script := range scripts {
		res, ok := byURL[script.URL]
		if !ok {
			continue
		}
		result, err := ComputeWaste(script, res)
		if err != nil {
			return nil, err
		}
		prev, seen := best[script.URL]
		if !seen {
			order = append(order, script.URL)
			best[script.URL] = result
			continue
		}
		if result.WastedBytes < prev.WastedBytes {
			best[script.URL] = result
		}
	}

	results := make([]WasteResult, 0, len(order))
	for _, url := range order {
		if result := best[url]; result.WastedBytes > ignoreThreshold {
			results = append(results, result)
		}
	}
	return results, nil
}
