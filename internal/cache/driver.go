// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package cache

// MemoryPenalty is the fixed cycle cost charged when all three
// levels miss, for every supported profile.
const MemoryPenalty = 200

// LevelResult is the per-level slice of an AccessResult: what
// happened at that level, what it cost, and what (if anything) it
// evicted.
type LevelResult struct {
	Outcome Outcome
	Cycles  int
	Evicted uint64
}

// AccessResult is the ephemeral record a Simulator produces for one
// access: constructed by Access, consumed by the caller, then
// discarded. Levels never reached by the walk (because an earlier
// level already hit) are left with Outcome == NotAccessed, Cycles == 0
// and Evicted == AllOnes.
type AccessResult struct {
	Addr    uint64
	IsWrite bool

	L1, L2, L3 LevelResult

	TotalCycles int
}

// Simulator is the Hierarchy Driver: it owns L1, L2, L3 and the
// running Stats, and sequences every access across them in order,
// short-circuiting on the first hit. It does not model inclusion —
// a hit at L2 or below does not fill the levels above it.
type Simulator struct {
	l1, l2, l3 *Level
	stats      Stats
}

// NewSimulator builds a cold hierarchy from three level specs.
func NewSimulator(l1, l2, l3 LevelSpec) *Simulator {
	return &Simulator{
		l1: NewLevel(l1),
		l2: NewLevel(l2),
		l3: NewLevel(l3),
	}
}

// Access walks L1 -> L2 -> L3 for addr, stopping at the first hit.
// isWrite is recorded on the result but does not affect lookup,
// insertion, or replacement in any way.
func (s *Simulator) Access(isWrite bool, addr uint64) AccessResult {
	res := AccessResult{
		Addr:    addr,
		IsWrite: isWrite,
		L2:      LevelResult{Evicted: AllOnes},
		L3:      LevelResult{Evicted: AllOnes},
	}
	s.stats.TotalAccesses++

	outcome, evicted := s.l1.Access(addr)
	res.L1 = LevelResult{Outcome: outcome, Evicted: evicted}
	if outcome == Hit {
		s.stats.L1Hits++
		res.L1.Cycles = s.l1.Latency()
		res.TotalCycles = res.L1.Cycles
		s.stats.TotalCycles += int64(res.TotalCycles)
		return res
	}
	s.stats.L1Misses++

	outcome, evicted = s.l2.Access(addr)
	res.L2 = LevelResult{Outcome: outcome, Evicted: evicted}
	if outcome == Hit {
		s.stats.L2Hits++
		res.L2.Cycles = s.l2.Latency()
		res.TotalCycles = res.L2.Cycles
		s.stats.TotalCycles += int64(res.TotalCycles)
		return res
	}
	s.stats.L2Misses++

	outcome, evicted = s.l3.Access(addr)
	res.L3 = LevelResult{Outcome: outcome, Evicted: evicted}
	if outcome == Hit {
		s.stats.L3Hits++
		res.L3.Cycles = s.l3.Latency()
		res.TotalCycles = res.L3.Cycles
		s.stats.TotalCycles += int64(res.TotalCycles)
		return res
	}
	s.stats.L3Misses++

	res.TotalCycles = MemoryPenalty
	s.stats.TotalCycles += int64(res.TotalCycles)
	return res
}

// Stats returns a copy of the running counters.
func (s *Simulator) Stats() Stats { return s.stats }
