// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

import (
	"testing"
	"time"
)

// 一次典型转码会话的 stderr 片段
var sessionLines = []string{
	"Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'clip.mp4':",
	"  Duration: 00:01:30.05, start: 0.000000, bitrate: 1452 kb/s",
	"    Stream #0:0(und): Video: h264 (High), yuv420p, 1280x720, 1319 kb/s, 29.97 fps, 29.97 tbr, 30k tbn",
	"    Stream #0:1(eng): Audio: aac, 44100 Hz, stereo, fltp, 128 kb/s",
	"Output #0, mp4, to 'out.mp4':",
	"frame=  100 fps= 29.97 q=28.0 size=    1024kB time=00:00:03.33 bitrate=2517.7kbits/s",
	"frame=  200 fps= 29.97 q=28.0 size=    2048kB time=00:00:06.67 bitrate=2515.8kbits/s",
	"frame=  210 fps= 29.97 q=-1.0 Lsize=    2150kB time=00:00:07.00 bitrate=2516.1kbits/s",
}

// TestParserSession runs a whole session through the parser and checks
// the accumulated state.
func TestParserSession(t *testing.T) {
	p := New(Config{LogLines: 50})

	for _, line := range sessionLines {
		p.Parse(line)
	}

	info, ok := p.MediaInfo()
	if !ok {
		t.Fatal("no media info after session")
	}
	if want := time.Minute + 30*time.Second + 50*time.Millisecond; info.Duration != want {
		t.Errorf("duration = %v, want %v", info.Duration, want)
	}

	prog, ok := p.Progress()
	if !ok {
		t.Fatal("no progress after session")
	}
	if prog.Frame == nil || *prog.Frame != 210 {
		t.Errorf("frame = %v, want 210 (latest line)", prog.Frame)
	}
	if prog.Total != info.Duration {
		t.Errorf("total = %v, want clip duration %v", prog.Total, info.Duration)
	}

	meta := p.Meta()
	if meta.Video == nil || meta.Video.Format != "h264 (High)" {
		t.Errorf("video meta = %+v", meta.Video)
	}
	if meta.Audio == nil || meta.Audio.SampleRate != "44100 Hz" {
		t.Errorf("audio meta = %+v", meta.Audio)
	}

	size, ok := p.Final()
	if !ok || size != 2150 {
		t.Errorf("final size = %d (%v), want 2150", size, ok)
	}

	if lines := p.Log(); len(lines) != len(sessionLines) {
		t.Errorf("log lines = %d, want %d", len(lines), len(sessionLines))
	}
}

// TestParserReturnsFrame: Parse reports the frame counter so the
// process watchdog can detect stalled output.
func TestParserReturnsFrame(t *testing.T) {
	p := New(Config{})

	if n := p.Parse("Output #0, mp4, to 'out.mp4':"); n != 0 {
		t.Errorf("non-progress line returned %d", n)
	}
	if n := p.Parse("frame=  100 fps= 29.97 size= 1024kB time=00:00:03.33 bitrate=2517.7kbits/s"); n != 100 {
		t.Errorf("progress line returned %d, want 100", n)
	}
}

// TestParserLivenessWithoutFrame: audio-only conversions emit progress
// lines without frame=; they still count as live output, otherwise the
// stale watchdog would kill a healthy transcode.
func TestParserLivenessWithoutFrame(t *testing.T) {
	p := New(Config{})

	if n := p.Parse("size=     256kB time=00:00:16.65 bitrate= 126.0kbits/s speed=33.2x"); n == 0 {
		t.Fatal("frame-less progress line reported as no progress")
	}
	// 起点行也算存活
	if n := p.Parse("size=       0kB time=00:00:00.00 bitrate=N/A speed=   0x"); n == 0 {
		t.Fatal("zero-time progress line reported as no progress")
	}
}

// TestParserReset clears session state but keeps working afterwards.
func TestParserReset(t *testing.T) {
	p := New(Config{LogLines: 10})
	for _, line := range sessionLines {
		p.Parse(line)
	}

	p.ResetStats()
	p.ResetLog()

	if _, ok := p.Progress(); ok {
		t.Error("progress survived reset")
	}
	if _, ok := p.MediaInfo(); ok {
		t.Error("media info survived reset")
	}
	if meta := p.Meta(); meta.Video != nil || meta.Audio != nil {
		t.Error("stream meta survived reset")
	}
	if lines := p.Log(); len(lines) != 0 {
		t.Errorf("log survived reset: %d lines", len(lines))
	}

	p.Parse("time=00:00:01.00 bitrate=100.0kbits/s")
	if _, ok := p.Progress(); !ok {
		t.Error("parser unusable after reset")
	}
}
