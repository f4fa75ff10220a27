// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package report writes the banner, per-access lines, and final
// statistics the core's result records carry — in both a
// human-readable text form and CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cachetrace/cachetrace/internal/cache"
	"github.com/cachetrace/cachetrace/internal/profile"
)

// Banner prints the selected CPU's name and per-level geometry once
// at startup.
func Banner(w io.Writer, cpu profile.CPU) {
	fmt.Fprintf(w, "cachetrace -- %s\n", cpu.Name)
	fmt.Fprintf(w, "  L1  %5d sets x %2d ways, %3d cyc\n", cpu.L1.Sets, cpu.L1.Ways, cpu.L1.Latency)
	fmt.Fprintf(w, "  L2  %5d sets x %2d ways, %3d cyc\n", cpu.L2.Sets, cpu.L2.Ways, cpu.L2.Latency)
	fmt.Fprintf(w, "  L3  %5d sets x %2d ways, %3d cyc\n", cpu.L3.Sets, cpu.L3.Ways, cpu.L3.Latency)
}

// PerAccess prints one fixed-width text line per access.
func PerAccess(w io.Writer, r cache.AccessResult) {
	fmt.Fprintf(w, "%#016x  %-4s %3s  %-4s %3s  %-4s %3s  total=%d\n",
		r.Addr,
		r.L1.Outcome, cyclesField(r.L1),
		r.L2.Outcome, cyclesField(r.L2),
		r.L3.Outcome, cyclesField(r.L3),
		r.TotalCycles)
}

func cyclesField(lr cache.LevelResult) string {
	if lr.Outcome == cache.NotAccessed {
		return "-"
	}
	return strconv.Itoa(lr.Cycles)
}

// Summary prints the terminating aggregate statistics.
func Summary(w io.Writer, s cache.Summary) {
	fmt.Fprintf(w, "accesses=%d  l1=%d/%d (%d%%)  l2=%d/%d (%d%%)  l3=%d/%d (%d%%)  cycles=%d avg=%d\n",
		s.TotalAccesses,
		s.L1Hits, s.TotalAccesses, s.L1HitRate,
		s.L2Hits, s.L1Misses, s.L2HitRate,
		s.L3Hits, s.L2Misses, s.L3HitRate,
		s.TotalCycles, s.AvgCycles)
}

// CSVRecorder renders per-access results and the closing summary as
// CSV rows onto an io.Writer.
type CSVRecorder struct {
	w *csv.Writer
}

// NewCSVRecorder writes the header row and returns a recorder ready
// for Write calls.
func NewCSVRecorder(w io.Writer) *CSVRecorder {
	cw := csv.NewWriter(w)
	cw.Write([]string{"addr", "is_write", "l1", "l1_cycles", "l2", "l2_cycles", "l3", "l3_cycles", "total_cycles"})
	return &CSVRecorder{w: cw}
}

// Write appends one access result as a CSV row.
func (r *CSVRecorder) Write(res cache.AccessResult) error {
	return r.w.Write([]string{
		fmt.Sprintf("0x%x", res.Addr),
		strconv.FormatBool(res.IsWrite),
		res.L1.Outcome.String(), strconv.Itoa(res.L1.Cycles),
		res.L2.Outcome.String(), cyclesField(res.L2),
		res.L3.Outcome.String(), cyclesField(res.L3),
		strconv.Itoa(res.TotalCycles),
	})
}

// WriteSummary appends the final aggregate row.
func (r *CSVRecorder) WriteSummary(s cache.Summary) error {
	return r.w.Write([]string{
		"SUMMARY",
		strconv.FormatInt(s.TotalAccesses, 10),
		strconv.FormatInt(s.L1Hits, 10), strconv.Itoa(s.L1HitRate),
		strconv.FormatInt(s.L2Hits, 10), strconv.Itoa(s.L2HitRate),
		strconv.FormatInt(s.L3Hits, 10), strconv.Itoa(s.L3HitRate),
		strconv.FormatInt(s.TotalCycles, 10),
	})
}

// Flush flushes buffered CSV output and returns any write error seen
// so far.
func (r *CSVRecorder) Flush() error {
	r.w.Flush()
	return r.w.Error()
}
