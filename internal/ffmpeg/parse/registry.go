// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理
//
// Package parse extracts typed facts from the diagnostic text FFmpeg
// writes to stderr: clip metadata announced near process start and the
// recurring progress reports emitted during a conversion.

package parse

import (
	"fmt"
	"regexp"
)

// Find identifies one extraction intent. The set is closed; every tag
// owns exactly one compiled pattern for the process lifetime.
type Find int

const (
	BitRate Find = iota
	ClipBitrate
	Duration
	ConvertProgressFrame
	ConvertProgressFps
	ConvertProgressSize
	ConvertProgressFinished
	ConvertProgressTime
	ConvertProgressBitrate
	MetaAudio
	AudioFormatHzChannel
	MetaVideo
	VideoFormatColorSize
	VideoFps

	findCount
)

// 模式表与 Find 常量一一对应,进程启动时编译一次,之后只读。
// 字面锚点 (frame=, time=, Duration:, kb/s ...) 是 FFmpeg 输出的
// wire contract,不能改动。
var patterns = [findCount]*regexp.Regexp{
	BitRate:                 regexp.MustCompile(`([0-9]+)\s*kb/s`),
	ClipBitrate:             regexp.MustCompile(`bitrate:\s*([0-9]+)\s*kb/s`), // kb/s 常落在行尾,不要求尾随空格
	Duration:                regexp.MustCompile(`Duration:\s*([^,]+),`),
	ConvertProgressFrame:    regexp.MustCompile(`frame=\s*([0-9]+)`),
	ConvertProgressFps:      regexp.MustCompile(`fps=\s*([0-9]+\.?[0-9]*)`),
	ConvertProgressSize:     regexp.MustCompile(`size=\s*([0-9]+)kB`),
	ConvertProgressFinished: regexp.MustCompile(`Lsize=\s*([0-9]+)kB`),
	ConvertProgressTime:     regexp.MustCompile(`time=\s*([^ ]+)`),
	ConvertProgressBitrate:  regexp.MustCompile(`bitrate=\s*([0-9]+\.?[0-9]*)kbits/s`),
	MetaAudio:               regexp.MustCompile(`(Stream\s*#[0-9]+:[0-9]+.*:\s*Audio:.*)`),
	AudioFormatHzChannel:    regexp.MustCompile(`Audio:\s*([^,]+),\s*([^,]+),\s*([^,]+)`),
	MetaVideo:               regexp.MustCompile(`(Stream\s*#[0-9]+:[0-9]+.*:\s*Video:.*)`),
	// 色彩描述自身可以带逗号和括号组 (yuv420p(tv, bt709)),中间组
	// 用惰性匹配,digits-x-digits 的尺寸充当右边界
	VideoFormatColorSize: regexp.MustCompile(`Video:\s*([^,]+),\s*(.+?),\s*([0-9]+x[0-9]+)`),
	VideoFps:             regexp.MustCompile(`([0-9.]+)\s*tbr`),
}

func init() {
	for f, re := range patterns {
		if re == nil {
			panic(fmt.Sprintf("parse: no pattern compiled for tag %d", f))
		}
	}
}

// Pattern returns the compiled pattern for a tag. Asking for a tag
// outside the closed set is a programming error, not a runtime
// condition, and panics.
func Pattern(f Find) *regexp.Regexp {
	if f < 0 || f >= findCount {
		panic(fmt.Sprintf("parse: unknown pattern tag %d", f))
	}
	return patterns[f]
}
