// Copyright (C) 2026 cachetrace contributors.
// All rights reserved. This file is part of cachetrace.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package trace_test

import (
	"strings"
	"testing"

	"github.com/cachetrace/cachetrace/internal/trace"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) []trace.Record {
	t.Helper()
	sc := trace.NewScanner(strings.NewReader(input))

	var records []trace.Record
	for {
		rec, ok, err := sc.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		records = append(records, rec)
	}
	return records
}

func TestScanner_MalformedLineIsSkipped(t *testing.T) {
	records := collect(t, "R 0x1000\nGARBAGE\nR 0x1000\n")
	require.Len(t, records, 2)
	require.Equal(t, uint64(0x1000), records[0].Addr)
	require.Equal(t, uint64(0x1000), records[1].Addr)
}

func TestScanner_CaseInsensitiveHexYieldsIdenticalAddress(t *testing.T) {
	upper := collect(t, "R 0xABCDEF\n")
	lower := collect(t, "R 0xabcdef\n")
	require.Equal(t, upper, lower)
}

func TestScanner_ReadWriteFlag(t *testing.T) {
	records := collect(t, "R 0x10\nW 0x20\n")
	require.Len(t, records, 2)
	require.False(t, records[0].IsWrite)
	require.True(t, records[1].IsWrite)
}

func TestScanner_TolerantOfCRLFAndWhitespace(t *testing.T) {
	records := collect(t, "  R   0x10  \r\n\r\nW 0x20\r\n")
	require.Len(t, records, 2)
	require.Equal(t, uint64(0x10), records[0].Addr)
	require.Equal(t, uint64(0x20), records[1].Addr)
}

func TestScanner_OptionalHexPrefix(t *testing.T) {
	withPrefix := collect(t, "R 0x10\n")
	withoutPrefix := collect(t, "R 10\n")
	require.Equal(t, withPrefix, withoutPrefix)
}

func TestScanner_RejectsLowercaseDirection(t *testing.T) {
	records := collect(t, "r 0x10\nw 0x20\n")
	require.Empty(t, records, "lowercase r/w is not part of the grammar")
}

func TestScanner_RejectsOversizedHex(t *testing.T) {
	records := collect(t, "R 0x11111111111111111\n") // 17 hex digits
	require.Empty(t, records)
}

func TestScanner_AcceptsSingleHexDigit(t *testing.T) {
	records := collect(t, "R 0xF\n")
	require.Equal(t, []trace.Record{{IsWrite: false, Addr: 0xF}}, records)
}

func TestScanner_RejectsBareDirectionOrExtraFields(t *testing.T) {
	require.Empty(t, collect(t, "R\n"))
	require.Empty(t, collect(t, "R 0x10 extra\n"))
	require.Empty(t, collect(t, "X 0x10\n"))
}

func TestScanner_EmptyStreamYieldsNoRecords(t *testing.T) {
	require.Empty(t, collect(t, ""))
	require.Empty(t, collect(t, "\n\n\n"))
}
