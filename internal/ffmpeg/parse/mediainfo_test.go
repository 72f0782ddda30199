// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

import (
	"strings"
	"testing"
	"time"
)

// TestExtractMediaInfo parses the clip announcement FFmpeg prints once
// near process start.
func TestExtractMediaInfo(t *testing.T) {
	line := "  Duration: 00:01:30.05, start: 0.000000, bitrate: 1452 kb/s"

	info, ok := ExtractMediaInfo(line)
	if !ok {
		t.Fatalf("no media info extracted from %q", line)
	}
	if want := time.Minute + 30*time.Second + 50*time.Millisecond; info.Duration != want {
		t.Errorf("duration = %v, want %v", info.Duration, want)
	}
	if info.BitRateKbs != 1452 {
		t.Errorf("bitrate = %v, want 1452", info.BitRateKbs)
	}
}

// TestExtractMediaInfoRequiresBothAnchors: bitrate without Duration:
// fails, and vice versa.
func TestExtractMediaInfoRequiresBothAnchors(t *testing.T) {
	if _, ok := ExtractMediaInfo("start: 0.000000, bitrate: 1452 kb/s"); ok {
		t.Fatal("line without Duration: must not extract")
	}
	if _, ok := ExtractMediaInfo("  Duration: 00:01:30.05, start: 0.000000"); ok {
		t.Fatal("line without bitrate: must not extract")
	}
}

// TestExtractMediaInfoHardNumericFailure: a structurally matched but
// numerically unparsable value rejects the whole line, unlike the
// tolerant progress extractor.
func TestExtractMediaInfoHardNumericFailure(t *testing.T) {
	// digits that match the pattern shape but overflow the float parse
	huge := "1" + strings.Repeat("9", 400)
	if _, ok := ExtractMediaInfo("  Duration: 00:01:30.05, start: 0, bitrate: " + huge + " kb/s"); ok {
		t.Fatal("overflowing bitrate must reject the line")
	}

	if _, ok := ExtractMediaInfo("  Duration: N/A, bitrate: 1452 kb/s"); ok {
		t.Fatal("unparsable duration must reject the line")
	}
}
