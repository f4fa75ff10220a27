// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package cache

// MRU is Nehalem's L3 policy: one bit per way, 0 = most-recently-used,
// 1 = not. Cold state is all bits set to 1.
type MRU struct{}

func (MRU) ColdAge() byte { return 1 }

func (MRU) SelectVictim(tags []uint64, ages []byte) int {
	for w, t := range tags {
		if t == AllOnes || ages[w] == 1 {
			return w
		}
	}
	return 0
}

func (MRU) touch(way int, ages []byte) {
	ages[way] = 0
	for _, a := range ages {
		if a != 0 {
			return
		}
	}
	for w := range ages {
		if w != way {
			ages[w] = 1
		}
	}
}

func (m MRU) OnHit(way int, tags []uint64, ages []byte) { m.touch(way, ages) }

func (m MRU) OnMiss(way int, tags []uint64, ages []byte) { m.touch(way, ages) }

// MRUN is Sandy Bridge's L3 policy. The reverse-engineered model it
// is built from admits the same simplification as MRU: a precise
// hardware model would defer the "reset others to 1" step until the
// set is first fully populated, but the behavior this simulator
// reproduces does not make that distinction, so MRUN is MRU under a
// distinct name.
type MRUN struct{ MRU }
