// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package main

import "flag"

var (
	flagCPU, flagTrace, flagFormat, flagLogLevel string
	flagLogDate, flagVersion, flagGops           bool
)

func cliInit() {
	flag.StringVar(&flagCPU, "cpu", "cfl", "CPU selector: nhm, snb, ivb, hsw, skl, cfl (unknown values fall back to cfl)")
	flag.StringVar(&flagTrace, "trace", "-", "Path to a trace file (\".gz\" is decompressed transparently), or \"-\" for stdin")
	flag.StringVar(&flagFormat, "format", "text", "Output format: text or csv")
	flag.StringVar(&flagLogLevel, "loglevel", "warn", "Logging level: debug, info, warn, error")
	flag.BoolVar(&flagLogDate, "logdate", false, "Include date/time in log output")
	flag.BoolVar(&flagVersion, "version", false, "Print version information and exit")
	flag.BoolVar(&flagGops, "gops", false, "Listen via github.com/google/gops/agent (for debugging)")
	flag.Parse()
}
