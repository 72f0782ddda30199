// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

import (
	"testing"
	"time"
)

// TestExtractProgressFullLine parses a typical progress line with every
// token present.
func TestExtractProgressFullLine(t *testing.T) {
	line := "frame= 120 fps= 29.97 q=-1.0 size=    2048kB time=00:00:04.00 bitrate=4194.3kbits/s"

	p, ok := ExtractProgress(line)
	if !ok {
		t.Fatalf("no progress extracted from %q", line)
	}
	if p.Processed != 4*time.Second {
		t.Errorf("processed = %v, want 4s", p.Processed)
	}
	if p.Total != 0 {
		t.Errorf("total = %v, want zero placeholder", p.Total)
	}
	if p.Frame == nil || *p.Frame != 120 {
		t.Errorf("frame = %v, want 120", p.Frame)
	}
	if p.Fps == nil || *p.Fps != 29.97 {
		t.Errorf("fps = %v, want 29.97", p.Fps)
	}
	if p.SizeKB == nil || *p.SizeKB != 2048 {
		t.Errorf("size = %v, want 2048", p.SizeKB)
	}
	if p.BitRateKbs == nil || *p.BitRateKbs != 4194.3 {
		t.Errorf("bitrate = %v, want 4194.3", p.BitRateKbs)
	}
}

// TestExtractProgressOptionalFields: the time anchor alone is enough;
// missing tokens stay nil.
func TestExtractProgressOptionalFields(t *testing.T) {
	p, ok := ExtractProgress("time=00:01:00.50 speed=1.2x")
	if !ok {
		t.Fatal("time-only line should extract")
	}
	if p.Processed != time.Minute+500*time.Millisecond {
		t.Errorf("processed = %v", p.Processed)
	}
	if p.Frame != nil || p.Fps != nil || p.SizeKB != nil || p.BitRateKbs != nil {
		t.Errorf("optional fields should be nil: %+v", p)
	}
}

// TestExtractProgressNoAnchor: a line without time= is not a progress
// line at all.
func TestExtractProgressNoAnchor(t *testing.T) {
	if _, ok := ExtractProgress("frame= 120 fps= 29.97 size= 2048kB"); ok {
		t.Fatal("line without time= must not extract")
	}
	if _, ok := ExtractProgress("  Metadata:"); ok {
		t.Fatal("unrelated line must not extract")
	}
}

// TestExtractProgressBadTime: a matched but unparsable time token
// rejects the line.
func TestExtractProgressBadTime(t *testing.T) {
	if _, ok := ExtractProgress("frame= 10 time=N/A bitrate=N/A"); ok {
		t.Fatal("time=N/A must not extract")
	}
}

// TestExtractFinal recognizes the conversion summary line.
func TestExtractFinal(t *testing.T) {
	line := "frame=  120 fps= 30 q=-1.0 Lsize=    2048kB time=00:00:04.00 bitrate=4194.3kbits/s"
	size, ok := ExtractFinal(line)
	if !ok {
		t.Fatalf("no final size in %q", line)
	}
	if size != 2048 {
		t.Errorf("final size = %d, want 2048", size)
	}

	if _, ok := ExtractFinal("size=    2048kB time=00:00:04.00"); ok {
		t.Fatal("size= must not count as final")
	}
}
