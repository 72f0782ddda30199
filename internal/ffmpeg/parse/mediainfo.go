// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

import (
	"strings"
	"time"
)

// MediaInfo is the static clip metadata FFmpeg announces once near
// process start ("Duration: 00:01:23.45, start: 0.000000, bitrate: 1234 kb/s").
type MediaInfo struct {
	Duration   time.Duration
	BitRateKbs float64
}

// ExtractMediaInfo reads one stderr line as clip metadata. Both the
// Duration: and the bitrate: anchors must be present. Unlike the
// progress extractor, a numeric failure after a structural match is
// still a hard failure here: a matched but unparsable bitrate (or
// duration) rejects the whole line.
func ExtractMediaInfo(line string) (*MediaInfo, bool) {
	mb := Pattern(ClipBitrate).FindStringSubmatch(line)
	md := Pattern(Duration).FindStringSubmatch(line)
	if mb == nil || md == nil {
		return nil, false
	}

	duration, ok := ParseTimecode(strings.TrimSpace(md[1]))
	if !ok {
		return nil, false
	}
	bitrate := parseFloat(mb[1])
	if bitrate == nil {
		return nil, false
	}

	return &MediaInfo{Duration: duration, BitRateKbs: *bitrate}, true
}
