// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cachetrace/cachetrace/internal/profile"
	"github.com/cachetrace/cachetrace/internal/report"
	"github.com/cachetrace/cachetrace/internal/trace"
	"github.com/cachetrace/cachetrace/pkg/clog"
	"github.com/google/gops/agent"
	"github.com/klauspost/compress/gzip"
)

const version = "0.1.0"

func main() {
	cliInit()

	if flagVersion {
		fmt.Println("cachetrace", version)
		return
	}

	if lvl, err := clog.ParseLevel(flagLogLevel); err != nil {
		clog.SetLevel(clog.LevelWarn)
		clog.Warnf("%v, defaulting to warn", err)
	} else {
		clog.SetLevel(lvl)
	}
	clog.SetDate(flagLogDate)

	if flagGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			clog.Errorf("gops agent: %v", err)
		}
	}

	cpu := profile.Lookup(flagCPU)
	sim := profile.NewSimulator(cpu)

	r, closeTrace, err := openTrace(flagTrace)
	if err != nil {
		clog.Errorf("open trace: %v", err)
		os.Exit(1)
	}
	defer closeTrace()

	out := os.Stdout
	var csvRec *report.CSVRecorder
	if flagFormat == "csv" {
		csvRec = report.NewCSVRecorder(out)
	} else {
		report.Banner(out, cpu)
	}

	sc := trace.NewScanner(r)
	for {
		rec, ok, err := sc.Next()
		if err != nil {
			clog.Errorf("read trace: %v", err)
			os.Exit(1)
		}
		if !ok {
			break
		}

		res := sim.Access(rec.IsWrite, rec.Addr)
		if csvRec != nil {
			if err := csvRec.Write(res); err != nil {
				clog.Errorf("write csv: %v", err)
				os.Exit(1)
			}
		} else {
			report.PerAccess(out, res)
		}
	}

	summary := sim.Stats().Snapshot()
	if csvRec != nil {
		csvRec.WriteSummary(summary)
		if err := csvRec.Flush(); err != nil {
			clog.Errorf("flush csv: %v", err)
			os.Exit(1)
		}
	} else {
		report.Summary(out, summary)
	}
}

// openTrace resolves the -trace flag to a reader, transparently
// decompressing a ".gz"-suffixed path.
func openTrace(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, f.Close, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return gz, func() error {
		gz.Close()
		return f.Close()
	}, nil
}
