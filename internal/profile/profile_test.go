// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package profile_test

import (
	"testing"

	"github.com/cachetrace/cachetrace/internal/profile"
	"github.com/stretchr/testify/require"
)

func TestLookup_UnknownSelectorFallsBackToCoffeeLake(t *testing.T) {
	want := profile.Lookup("cfl")
	got := profile.Lookup("pentium")
	require.Equal(t, want, got)
	require.Equal(t, "Coffee Lake", got.Name)
}

func TestLookup_KnownSelectorsResolve(t *testing.T) {
	cases := map[string]string{
		"nhm":         "Nehalem",
		"nehalem":     "Nehalem",
		"snb":         "Sandy Bridge",
		"sandybridge": "Sandy Bridge",
		"ivb":         "Ivy Bridge",
		"ivybridge":   "Ivy Bridge",
		"hsw":         "Haswell",
		"haswell":     "Haswell",
		"skl":         "Skylake",
		"skylake":     "Skylake",
		"cfl":         "Coffee Lake",
		"coffeelake":  "Coffee Lake",
	}
	for selector, name := range cases {
		require.Equal(t, name, profile.Lookup(selector).Name, "selector %q", selector)
	}
}

func TestLookup_CaseAndWhitespaceInsensitive(t *testing.T) {
	require.Equal(t, profile.Lookup("hsw"), profile.Lookup("  HSW  "))
	require.Equal(t, profile.Lookup("skl"), profile.Lookup("SkL"))
}

func TestLookup_DefaultSelectorMatchesCoffeeLake(t *testing.T) {
	require.Equal(t, profile.Lookup("cfl"), profile.Lookup(profile.DefaultSelector))
}

func TestNewSimulator_BuildsColdSimulator(t *testing.T) {
	cpu := profile.Lookup("cfl")
	sim := profile.NewSimulator(cpu)
	require.NotNil(t, sim)

	snap := sim.Stats().Snapshot()
	require.Zero(t, snap.TotalAccesses)
}
