// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package cache

import "math/bits"

// TreePLRU is the pseudo-LRU tree policy used by L1 on every
// supported CPU and by L2 on pre-Haswell parts. For a W-way set it
// keeps a complete binary tree of W-1 direction bits packed
// little-endian into a single byte: ages[0] of the set. Every other
// byte in that set's age row is unused.
//
// Each bit names the subtree to evict next: 0 = left, 1 = right.
// Nodes are numbered in heap order (root = 0, children of node i are
// 2i+1 and 2i+2), so bit i of the tree byte is node i.
type TreePLRU struct{}

func (TreePLRU) ColdAge() byte { return 0 }

func (TreePLRU) SelectVictim(tags []uint64, ages []byte) int {
	ways := len(tags)
	levels := treeLevels(ways)
	tree := ages[0]

	node := 0
	for l := 0; l < levels; l++ {
		dir := (tree >> uint(node)) & 1
		node = node*2 + 1 + int(dir)
	}
	return node - (ways - 1)
}

func (t TreePLRU) OnHit(way int, tags []uint64, ages []byte) { t.touch(way, ages) }

func (t TreePLRU) OnMiss(way int, tags []uint64, ages []byte) { t.touch(way, ages) }

// touch walks root-to-leaf(way) and, at every node on the path, points
// the direction bit away from the subtree it just traversed — making
// way the most-recently-used leaf.
func (TreePLRU) touch(way int, ages []byte) {
	ways := len(ages)
	levels := treeLevels(ways)
	tree := ages[0]

	node := 0
	for l := levels - 1; l >= 0; l-- {
		dir := (way >> uint(l)) & 1
		if dir == 0 {
			tree |= 1 << uint(node)
		} else {
			tree &^= 1 << uint(node)
		}
		node = node*2 + 1 + dir
	}
	ages[0] = tree
}

// treeLevels is log2(ways): the number of direction bits to traverse
// from root to a leaf in a ways-leaf complete binary tree.
func treeLevels(ways int) int {
	return bits.Len(uint(ways)) - 1
}
