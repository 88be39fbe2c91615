package media

import "sort"

// normalizeBuffered sorts the reported ranges, coalesces overlaps, and
// floors the first range's start to 0 when it is already within
// startEpsilon of 0. Some engines report a slightly nonzero start for the
// first segment (e.g. 0.0056s), which would otherwise make position 0 look
// unbuffered.
func normalizeBuffered(ranges []TimeRange, startEpsilon float64) []TimeRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]TimeRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := sorted[:1]
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}

	if merged[0].Start > 0 && merged[0].Start < startEpsilon {
		merged[0].Start = 0
	}
	return merged
}

// isPlayable reports whether position t falls inside any buffered range,
// bounds inclusive.
func isPlayable(t float64, ranges []TimeRange) bool {
	for _, r := range ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}
