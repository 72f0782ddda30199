// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package process

import "time"

// Parser consumes process output line by line (FFmpeg writes everything
// of interest to stderr). Parse returns a liveness hint used to detect
// stalled output; any non-zero value marks live progress, 0 means the
// line carried none.
type Parser interface {
	Parse(line string) uint64
	ResetStats()
	ResetLog()
	Log() []Line
}

// Line is a timestamped log line
type Line struct {
	Timestamp time.Time
	Data      string
}
