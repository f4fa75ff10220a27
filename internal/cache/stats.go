// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package cache

// Stats is the running, never-reset set of aggregate counters a
// Simulator accumulates across every Access call.
type Stats struct {
	TotalAccesses int64

	L1Hits, L1Misses int64
	L2Hits, L2Misses int64
	L3Hits, L3Misses int64

	TotalCycles int64
}

// Summary is Stats plus the derived rates computed on termination.
// Percentages are truncated, not rounded to nearest; a rate with a
// zero denominator is 0.
type Summary struct {
	Stats

	L1HitRate int // percent of total accesses
	L2HitRate int // percent of L1 misses
	L3HitRate int // percent of L2 misses
	AvgCycles int // truncated, not rounded to nearest
}

// Snapshot computes a Summary from the current counters. It does not
// mutate Stats.
func (s Stats) Snapshot() Summary {
	sum := Summary{Stats: s}
	if s.TotalAccesses > 0 {
		sum.L1HitRate = int(s.L1Hits * 100 / s.TotalAccesses)
		sum.AvgCycles = int(s.TotalCycles / s.TotalAccesses)
	}
	if s.L1Misses > 0 {
		sum.L2HitRate = int(s.L2Hits * 100 / s.L1Misses)
	}
	if s.L2Misses > 0 {
		sum.L3HitRate = int(s.L3Hits * 100 / s.L2Misses)
	}
	return sum
}
