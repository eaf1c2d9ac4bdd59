package ldc

import (
	"fmt"
	"math"
	"sort"
)

// Rank annotates each flow record with its empirical exceedance probability,
// computed as rank/n where rank 1 is the largest flow in the series. The result
// preserves the input ordering; the input is never mutated.
//
// Ties receive distinct ordinal ranks: the stable descending sort means the
// record appearing first in the input wins the lower rank, matching the
// reference tool's ranking behavior. Exceedance is therefore always in (0,1].
func Rank(records []FlowRecord) ([]FlowExceedanceRecord, error) {
	n := len(records)
	if n == 0 {
		return nil, fmt.Errorf("%w: %s: empty flow series", ErrInvalidInput, StageRank)
	}

	seen := make(map[string]struct{}, n)
	for i, r := range records {
		if math.IsNaN(r.Flow) || math.IsInf(r.Flow, 0) {
			return nil, fmt.Errorf("%w: %s: non-finite flow at record %d (%s)",
				ErrInvalidInput, StageRank, i, dateKey(r.Date))
		}
		if r.Flow < 0 {
			return nil, fmt.Errorf("%w: %s: negative flow %.3f at record %d (%s)",
				ErrInvalidInput, StageRank, r.Flow, i, dateKey(r.Date))
		}
		key := dateKey(r.Date)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate flow record for %s",
				ErrInvalidInput, StageRank, key)
		}
		seen[key] = struct{}{}
	}

	// Sort indices rather than records so exceedance values land back on the
	// original positions.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return records[idx[a]].Flow > records[idx[b]].Flow
	})

	out := make([]FlowExceedanceRecord, n)
	for pos, i := range idx {
		out[i] = FlowExceedanceRecord{
			FlowRecord: records[i],
			Exceedance: float64(pos+1) / float64(n),
		}
	}
	return out, nil
}
