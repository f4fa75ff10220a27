// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clog provides a simple way of logging with different
// levels. Time/date are omitted by default (enable with SetDate) on
// the assumption that the process supervisor timestamps output for
// us.
package clog

import (
	"fmt"
	"log"
	"os"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a CLI-facing level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("clog: invalid level %q", s)
	}
}

var minLevel = LevelWarn

var (
	debugLog = log.New(os.Stderr, "<7>[DEBUG] ", 0)
	infoLog  = log.New(os.Stderr, "<6>[INFO]  ", 0)
	warnLog  = log.New(os.Stderr, "<4>[WARN]  ", 0)
	errLog   = log.New(os.Stderr, "<3>[ERROR] ", 0)
)

// SetLevel sets the minimum level that is actually written out.
func SetLevel(l Level) { minLevel = l }

// SetDate toggles date/time prefixing on every writer.
func SetDate(on bool) {
	flags := 0
	if on {
		flags = log.LstdFlags
	}
	debugLog.SetFlags(flags)
	infoLog.SetFlags(flags)
	warnLog.SetFlags(flags)
	errLog.SetFlags(flags)
}

func Debugf(format string, v ...any) {
	if minLevel <= LevelDebug {
		debugLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Infof(format string, v ...any) {
	if minLevel <= LevelInfo {
		infoLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warnf(format string, v ...any) {
	if minLevel <= LevelWarn {
		warnLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Errorf(format string, v ...any) {
	if minLevel <= LevelError {
		errLog.Output(2, fmt.Sprintf(format, v...))
	}
}
