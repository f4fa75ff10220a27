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

func TestStats_ZeroValueSnapshotHasNoDivideByZero(t *testing.T) {
	var s cache.Stats
	snap := s.Snapshot()

	require.Zero(t, snap.L1HitRate)
	require.Zero(t, snap.L2HitRate)
	require.Zero(t, snap.L3HitRate)
	require.Zero(t, snap.AvgCycles)
}

func TestStats_TruncatesNotRounds(t *testing.T) {
	s := cache.Stats{
		TotalAccesses: 3,
		L1Hits:        2, // 2/3 -> 66%, not 67%
		TotalCycles:   10,
	}
	snap := s.Snapshot()

	require.Equal(t, 66, snap.L1HitRate)
	require.Equal(t, 3, snap.AvgCycles) // 10/3 -> 3, not 3.33 rounded up
}
