// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package cache_test

import (
	"testing"

	"github.com/cachetrace/cachetrace/internal/cache"
	"github.com/stretchr/testify/require"
)

func newLevel(t *testing.T, sets, ways int, policy cache.Policy) *cache.Level {
	t.Helper()
	return cache.NewLevel(cache.LevelSpec{Sets: sets, Ways: ways, Latency: 1, Policy: policy})
}

func TestTreePLRU_ColdFillNoEviction(t *testing.T) {
	l := newLevel(t, 1, 8, cache.TreePLRU{})

	for tag := uint64(0); tag < 8; tag++ {
		outcome, evicted := l.Access(tag << 12)
		require.Equal(t, cache.Miss, outcome)
		require.Equal(t, cache.AllOnes, evicted, "filling an empty way must never report an eviction")
	}

	// All 8 distinct tags must still be resident: re-accessing any of
	// them now hits.
	for tag := uint64(0); tag < 8; tag++ {
		outcome, _ := l.Access(tag << 12)
		require.Equal(t, cache.Hit, outcome)
	}
}

func TestTreePLRU_NinthMissEvictsFirstInserted(t *testing.T) {
	l := newLevel(t, 1, 8, cache.TreePLRU{})

	for tag := uint64(0); tag < 8; tag++ {
		_, evicted := l.Access(tag << 12)
		require.Equal(t, cache.AllOnes, evicted)
	}

	outcome, evicted := l.Access(uint64(8) << 12)
	require.Equal(t, cache.Miss, outcome)
	require.Equal(t, uint64(0), evicted, "a fully-filled cold set evicts the first distinct tag it received")

	// Tag 0 is gone now.
	outcome, _ = l.Access(uint64(0) << 12)
	require.Equal(t, cache.Miss, outcome)
}

func TestTreePLRU_RepeatedHitsPinWay(t *testing.T) {
	l := newLevel(t, 1, 8, cache.TreePLRU{})

	outcome, _ := l.Access(0)
	require.Equal(t, cache.Miss, outcome)

	// Hit the same address W-1 more times while other ways are still
	// empty; it must never be evicted.
	for i := 0; i < 7; i++ {
		outcome, _ := l.Access(0)
		require.Equal(t, cache.Hit, outcome)
	}

	// Fill the remaining 7 ways with distinct tags.
	for tag := uint64(1); tag < 8; tag++ {
		_, evicted := l.Access(tag << 12)
		require.Equal(t, cache.AllOnes, evicted)
	}

	outcome, _ = l.Access(0)
	require.Equal(t, cache.Hit, outcome, "the repeatedly-hit way must still be resident")
}

func TestUniqueness(t *testing.T) {
	l := newLevel(t, 1, 4, cache.QLRU_H00_M1_R2_U1)

	for tag := uint64(0); tag < 4; tag++ {
		outcome, _ := l.Access(tag << 6)
		require.Equal(t, cache.Miss, outcome)
	}
	for tag := uint64(0); tag < 4; tag++ {
		outcome, _ := l.Access(tag << 6)
		require.Equal(t, cache.Hit, outcome, "tag %d should still be resident before any eviction", tag)
	}

	// A fifth distinct tag must evict exactly one resident tag.
	outcome, evicted := l.Access(uint64(4) << 6)
	require.Equal(t, cache.Miss, outcome)
	require.NotEqual(t, cache.AllOnes, evicted)

	misses := 0
	probe := func(tag uint64) {
		outcome, _ := l.Access(tag << 6)
		if outcome == cache.Miss {
			misses++
			require.Equal(t, evicted, tag)
		}
	}
	// Probe the survivors before the evicted tag: re-installing the
	// evicted tag is itself a miss that displaces another resident.
	for tag := uint64(0); tag < 4; tag++ {
		if tag != evicted {
			probe(tag)
		}
	}
	probe(evicted)
	require.Equal(t, 1, misses, "exactly the evicted tag should now miss")
}

func TestQLRU_SaturatesAtThree(t *testing.T) {
	l := newLevel(t, 1, 4, cache.QLRU_H11_M1_R1_U2)

	l.Access(0) // miss, installs at age M1=1

	for i := 0; i < 20; i++ {
		outcome, _ := l.Access(0)
		require.Equal(t, cache.Hit, outcome)
	}
}

func TestMRU_ResetsOthersWhenAllTouched(t *testing.T) {
	l := newLevel(t, 1, 4, cache.MRU{})

	for tag := uint64(0); tag < 4; tag++ {
		_, evicted := l.Access(tag << 12)
		require.Equal(t, cache.AllOnes, evicted)
	}

	// Touching the fourth way cleared the last 1 bit, so the other three
	// ways were reset to 1; the fifth distinct tag must evict one of the
	// resident tags, never an empty way.
	outcome, evicted := l.Access(uint64(4) << 12)
	require.Equal(t, cache.Miss, outcome)
	require.NotEqual(t, cache.AllOnes, evicted)
}

func TestMRUN_BehavesLikeMRU(t *testing.T) {
	lMRU := newLevel(t, 1, 4, cache.MRU{})
	lMRUN := newLevel(t, 1, 4, cache.MRUN{})

	addrs := []uint64{0, 1 << 12, 2 << 12, 0, 3 << 12, 4 << 12, 0}
	for _, a := range addrs {
		o1, e1 := lMRU.Access(a)
		o2, e2 := lMRUN.Access(a)
		require.Equal(t, o1, o2)
		require.Equal(t, e1, e2)
	}
}
