package balance

import (
	"sort"

	"tokengate/internal/uintrange"
)

// OwnedAmount is the aggregated quantity held over one asset sub-range.
type OwnedAmount struct {
	AssetRange uintrange.UintRange
	Amount     uintrange.Uint
}

// OwnedAmounts intersects the requested asset-id ranges against the held
// balances and returns the owned amount per matched sub-range.
//
// A balance contributes only where its badge-id ranges overlap a requested
// range AND its ownership times overlap at least one requested time range.
// Amounts from multiple matching balances are summed: ownership is additive
// across balance records. Sub-ranges no balance covers still appear with
// amount 0; owning nothing is a valid result, not an error.
//
// The output is sorted by range start, disjoint in asset-id space, covers the
// requested ranges completely, and is independent of the order of held.
func OwnedAmounts(assetRanges, timeRanges []uintrange.UintRange, held []Balance) []OwnedAmount {
	requested := mergeRanges(assetRanges)
	out := make([]OwnedAmount, 0, len(requested))

	for _, req := range requested {
		out = append(out, sweepRange(req, timeRanges, held)...)
	}
	return out
}

// sweepRange segments one requested range at every point where the set of
// covering balances changes and sums the covering amounts per segment.
func sweepRange(req uintrange.UintRange, timeRanges []uintrange.UintRange, held []Balance) []OwnedAmount {
	type contribution struct {
		span   uintrange.UintRange
		amount uintrange.Uint
	}
	var contribs []contribution
	for _, b := range held {
		if !uintrange.AnyOverlap(b.OwnershipTimes, timeRanges) {
			continue
		}
		for _, br := range b.BadgeIDRanges {
			if span, ok := br.Intersect(req); ok {
				contribs = append(contribs, contribution{span: span, amount: b.Amount})
			}
		}
	}

	// Boundary points: starts of segments where coverage can change. The
	// half-open point after each span end closes it.
	points := []uintrange.Uint{req.Start, req.End.Incr()}
	for _, c := range contribs {
		points = append(points, c.span.Start, c.span.End.Incr())
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Cmp(points[j]) < 0 })

	var out []OwnedAmount
	for i := 0; i+1 < len(points); i++ {
		start, next := points[i], points[i+1]
		if start.Cmp(next) == 0 || start.Cmp(req.End) > 0 || next.Cmp(req.Start) <= 0 {
			continue
		}
		seg := uintrange.UintRange{Start: start, End: next.Decr()}
		total := uintrange.NewUint(0)
		for _, c := range contribs {
			if c.span.Contains(seg.Start) {
				total = total.Add(c.amount)
			}
		}
		if n := len(out); n > 0 && out[n-1].Amount.Cmp(total) == 0 {
			// Same aggregate as the previous segment: extend it.
			out[n-1].AssetRange.End = seg.End
			continue
		}
		out = append(out, OwnedAmount{AssetRange: seg, Amount: total})
	}
	return out
}

// mergeRanges sorts the requested ranges and coalesces overlapping or
// adjacent ones so the sweep emits disjoint output.
func mergeRanges(rs []uintrange.UintRange) []uintrange.UintRange {
	if len(rs) == 0 {
		return nil
	}
	sorted := append([]uintrange.UintRange(nil), rs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Cmp(sorted[j].Start) < 0 })

	merged := []uintrange.UintRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start.Cmp(last.End.Incr()) <= 0 {
			last.End = uintrange.MaxUint(last.End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
