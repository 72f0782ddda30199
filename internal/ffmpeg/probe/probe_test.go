// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package probe

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

const banner = `Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'clip.mp4':
  Metadata:
    major_brand     : isom
  Duration: 00:01:30.05, start: 0.000000, bitrate: 1452 kb/s
    Stream #0:0(und): Video: h264 (High) (avc1 / 0x31637661), yuv420p, 1280x720, 1319 kb/s, 29.97 fps, 29.97 tbr, 30k tbn (default)
    Stream #0:1(eng): Audio: aac (LC) (mp4a / 0x6134706D), 44100 Hz, stereo, fltp, 128 kb/s (default)
At least one output file must be specified
`

// TestScanBanner feeds a canned "ffmpeg -i" banner through the
// extraction engine.
func TestScanBanner(t *testing.T) {
	res := scan("clip.mp4", bufio.NewScanner(strings.NewReader(banner)))

	if res.Input != "clip.mp4" {
		t.Errorf("input = %q", res.Input)
	}
	if res.Info == nil {
		t.Fatal("no media info")
	}
	if want := time.Minute + 30*time.Second + 50*time.Millisecond; res.Info.Duration != want {
		t.Errorf("duration = %v, want %v", res.Info.Duration, want)
	}
	if res.Info.BitRateKbs != 1452 {
		t.Errorf("bitrate = %v, want 1452", res.Info.BitRateKbs)
	}

	if v := res.Meta.Video; v == nil {
		t.Error("no video stream")
	} else {
		if v.Format != "h264 (High) (avc1 / 0x31637661)" {
			t.Errorf("video format = %q", v.Format)
		}
		if v.FrameSize != "1280x720" {
			t.Errorf("frame size = %q", v.FrameSize)
		}
	}

	if a := res.Meta.Audio; a == nil {
		t.Error("no audio stream")
	} else {
		if a.SampleRate != "44100 Hz" {
			t.Errorf("sample rate = %q", a.SampleRate)
		}
		if a.BitRateKbs != 128 {
			t.Errorf("audio bitrate = %d, want 128", a.BitRateKbs)
		}
	}
}

// TestScanEmpty yields nothing on unrelated output.
func TestScanEmpty(t *testing.T) {
	res := scan("x", bufio.NewScanner(strings.NewReader("x: No such file or directory\n")))
	if res.Info != nil || res.Meta.Video != nil || res.Meta.Audio != nil {
		t.Fatalf("unexpected extraction: %+v", res)
	}
}
