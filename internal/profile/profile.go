// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package profile enumerates the CpuProfile configurations for the
// six supported CPU generations and resolves the command-line CPU
// selector to one of them.
package profile

import (
	"strings"

	"github.com/cachetrace/cachetrace/internal/cache"
)

// CPU bundles the three cache levels a CpuProfile describes. It is
// built once from the table below and is immutable thereafter.
type CPU struct {
	Name       string
	L1, L2, L3 cache.LevelSpec
}

// DefaultSelector is the profile used when an input selector matches
// none of the known names.
const DefaultSelector = "cfl"

var (
	nehalem = CPU{
		Name: "Nehalem",
		L1:   cache.LevelSpec{Sets: 64, Ways: 8, Latency: 4, Policy: cache.TreePLRU{}},
		L2:   cache.LevelSpec{Sets: 512, Ways: 8, Latency: 12, Policy: cache.TreePLRU{}},
		L3:   cache.LevelSpec{Sets: 4096, Ways: 16, Latency: 40, Policy: cache.MRU{}},
	}
	sandyBridge = CPU{
		Name: "Sandy Bridge",
		L1:   cache.LevelSpec{Sets: 64, Ways: 8, Latency: 4, Policy: cache.TreePLRU{}},
		L2:   cache.LevelSpec{Sets: 512, Ways: 8, Latency: 12, Policy: cache.TreePLRU{}},
		L3:   cache.LevelSpec{Sets: 2048, Ways: 16, Latency: 36, Policy: cache.MRUN{}},
	}
	ivyBridge = CPU{
		Name: "Ivy Bridge",
		L1:   cache.LevelSpec{Sets: 64, Ways: 8, Latency: 4, Policy: cache.TreePLRU{}},
		L2:   cache.LevelSpec{Sets: 512, Ways: 8, Latency: 12, Policy: cache.TreePLRU{}},
		L3:   cache.LevelSpec{Sets: 2048, Ways: 16, Latency: 36, Policy: cache.QLRU_H11_M1_R1_U2},
	}
	haswell = CPU{
		Name: "Haswell",
		L1:   cache.LevelSpec{Sets: 64, Ways: 8, Latency: 4, Policy: cache.TreePLRU{}},
		L2:   cache.LevelSpec{Sets: 512, Ways: 8, Latency: 12, Policy: cache.QLRU_H00_M1_R2_U1},
		L3:   cache.LevelSpec{Sets: 2048, Ways: 16, Latency: 36, Policy: cache.QLRU_H11_M1_R1_U2},
	}
	skylake = CPU{
		Name: "Skylake",
		L1:   cache.LevelSpec{Sets: 64, Ways: 8, Latency: 4, Policy: cache.TreePLRU{}},
		L2:   cache.LevelSpec{Sets: 1024, Ways: 4, Latency: 12, Policy: cache.QLRU_H00_M1_R2_U1},
		L3:   cache.LevelSpec{Sets: 2048, Ways: 16, Latency: 42, Policy: cache.QLRU_H11_M1_R1_U2},
	}
	coffeeLake = CPU{
		Name: "Coffee Lake",
		L1:   cache.LevelSpec{Sets: 64, Ways: 8, Latency: 4, Policy: cache.TreePLRU{}},
		L2:   cache.LevelSpec{Sets: 512, Ways: 8, Latency: 12, Policy: cache.QLRU_H00_M1_R2_U1},
		L3:   cache.LevelSpec{Sets: 2048, Ways: 16, Latency: 42, Policy: cache.QLRU_H11_M1_R0_U0},
	}
)

var selectors = map[string]CPU{
	"nhm": nehalem, "nehalem": nehalem,
	"snb": sandyBridge, "sandybridge": sandyBridge,
	"ivb": ivyBridge, "ivybridge": ivyBridge,
	"hsw": haswell, "haswell": haswell,
	"skl": skylake, "skylake": skylake,
	"cfl": coffeeLake, "coffeelake": coffeeLake,
}

// Lookup resolves a CPU selector (case-insensitive, either of the two
// names in table 1) to its CpuProfile. An unrecognized selector falls
// back to Coffee Lake — this is a degradation, not an error.
func Lookup(selector string) CPU {
	if cpu, ok := selectors[strings.ToLower(strings.TrimSpace(selector))]; ok {
		return cpu
	}
	return coffeeLake
}

// NewSimulator builds a cold Simulator for cpu.
func NewSimulator(cpu CPU) *cache.Simulator {
	return cache.NewSimulator(cpu.L1, cpu.L2, cpu.L3)
}
