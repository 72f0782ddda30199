// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

import "time"

// Progress is one progress report taken from a single stderr line.
// Optional fields are nil when the line did not carry them or the value
// did not parse. The record is never mutated after construction.
type Progress struct {
	// Processed is the position in the output timeline (the time= field).
	Processed time.Duration
	// Total is the clip duration. The extractor leaves it zero; the
	// session that knows the clip's media info fills it in.
	Total time.Duration

	Frame      *int64
	Fps        *float64
	SizeKB     *int64
	BitRateKbs *float64
}

// ExtractProgress reads one stderr line as a progress report. The time=
// field is the anchor: without it the line is not a progress line and
// (nil, false) is returned. Every other field is best effort; a missing
// or unparsable token simply stays nil.
func ExtractProgress(line string) (*Progress, bool) {
	m := Pattern(ConvertProgressTime).FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	processed, ok := ParseTimecode(m[1])
	if !ok {
		return nil, false
	}

	p := &Progress{Processed: processed}
	if m := Pattern(ConvertProgressFrame).FindStringSubmatch(line); m != nil {
		p.Frame = parseInt(m[1])
	}
	if m := Pattern(ConvertProgressFps).FindStringSubmatch(line); m != nil {
		p.Fps = parseFloat(m[1])
	}
	if m := Pattern(ConvertProgressSize).FindStringSubmatch(line); m != nil {
		p.SizeKB = parseInt(m[1])
	}
	if m := Pattern(ConvertProgressBitrate).FindStringSubmatch(line); m != nil {
		p.BitRateKbs = parseFloat(m[1])
	}
	return p, true
}

// ExtractFinal recognizes the summary line FFmpeg prints when a
// conversion ends and reports the final encoded size in kB.
func ExtractFinal(line string) (int64, bool) {
	m := Pattern(ConvertProgressFinished).FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n := parseInt(m[1])
	if n == nil {
		return 0, false
	}
	return *n, true
}
