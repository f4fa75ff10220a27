// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package cache

// hitTable rewrites an age on a hit; index is the age before the hit.
type hitTable [4]byte

func (t hitTable) apply(old byte) byte { return t[old] }

// Hit functions. Age 0 is youngest, 3 is oldest.
var (
	H00 = hitTable{0, 0, 0, 0}
	H10 = hitTable{0, 0, 0, 1}
	H11 = hitTable{0, 0, 1, 1}
	H20 = hitTable{0, 0, 0, 2}
	H21 = hitTable{0, 0, 1, 2}
)

// Miss functions: the age assigned to a freshly installed block.
const (
	M0 byte = 0
	M1 byte = 1
	M2 byte = 2
	M3 byte = 3
)

// victimRule picks the way to evict on a miss.
type victimRule func(tags []uint64, ages []byte) int

// R0 scans ascending, picking the first empty or age-3 way; falls
// back to way 0 if every way is live and younger than 3.
func R0(tags []uint64, ages []byte) int {
	for w := 0; w < len(tags); w++ {
		if tags[w] == AllOnes || ages[w] == 3 {
			return w
		}
	}
	return 0
}

// R1 is R0's scan order applied against a cold-age-3 pool; used by
// QLRU_H11_M1_R1_U2 and kept as a distinct value for that naming.
func R1(tags []uint64, ages []byte) int {
	return R0(tags, ages)
}

// R2 scans descending, picking the first empty or age-3 way; falls
// back to the last way if every way is live and younger than 3.
func R2(tags []uint64, ages []byte) int {
	for w := len(tags) - 1; w >= 0; w-- {
		if tags[w] == AllOnes || ages[w] == 3 {
			return w
		}
	}
	return len(tags) - 1
}

// ageUpdate is the global age rewrite applied after a hit or miss to
// the just-touched way (the hit way, or the newly filled victim way).
type ageUpdate func(ages []byte, touched int)

func maxAge(ages []byte, excluded int, exclude bool) byte {
	var max byte
	for w, a := range ages {
		if exclude && w == excluded {
			continue
		}
		if a > max {
			max = a
		}
	}
	return max
}

func bumpSaturating(ages []byte, amount byte, excluded int, exclude bool) {
	for w := range ages {
		if exclude && w == excluded {
			continue
		}
		na := int(ages[w]) + int(amount)
		if na > 3 {
			na = 3
		}
		ages[w] = byte(na)
	}
}

func anyAgeAt(ages []byte, val byte) bool {
	for _, a := range ages {
		if a == val {
			return true
		}
	}
	return false
}

// U0 raises every way (touched included) to close the gap with the
// oldest way in the set.
func U0(ages []byte, touched int) {
	inc := 3 - maxAge(ages, 0, false)
	bumpSaturating(ages, inc, 0, false)
}

// U1 raises every way except touched to close the gap with the
// oldest of the other ways.
func U1(ages []byte, touched int) {
	inc := 3 - maxAge(ages, touched, true)
	if inc == 0 {
		return
	}
	bumpSaturating(ages, inc, touched, true)
}

// U2 ages every way by one, touched included, unless some way is
// already at the saturation age.
func U2(ages []byte, touched int) {
	if anyAgeAt(ages, 3) {
		return
	}
	bumpSaturating(ages, 1, 0, false)
}

// U3 ages every way but touched by one, unless some way is already
// at the saturation age.
func U3(ages []byte, touched int) {
	if anyAgeAt(ages, 3) {
		return
	}
	bumpSaturating(ages, 1, touched, true)
}

// QLRU composes the four enumerated dimensions of the Quad-age LRU
// family into a single Policy value. Instances are plugged into a
// CpuProfile at load time — there is no per-access dispatch on an
// opaque policy ID.
type QLRU struct {
	Hit    hitTable
	Miss   byte
	Victim victimRule
	Update ageUpdate
}

func (QLRU) ColdAge() byte { return 3 }

func (q QLRU) SelectVictim(tags []uint64, ages []byte) int {
	return q.Victim(tags, ages)
}

func (q QLRU) OnHit(way int, tags []uint64, ages []byte) {
	ages[way] = q.Hit.apply(ages[way])
	q.Update(ages, way)
}

func (q QLRU) OnMiss(way int, tags []uint64, ages []byte) {
	ages[way] = q.Miss
	q.Update(ages, way)
}

// The three QLRU instances used by supported CPUs.
var (
	QLRU_H11_M1_R0_U0 = QLRU{Hit: H11, Miss: M1, Victim: R0, Update: U0}
	QLRU_H11_M1_R1_U2 = QLRU{Hit: H11, Miss: M1, Victim: R1, Update: U2}
	QLRU_H00_M1_R2_U1 = QLRU{Hit: H00, Miss: M1, Victim: R2, Update: U1}
)
