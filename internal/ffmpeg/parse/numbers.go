// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

import (
	"strconv"
	"strings"
	"time"
)

// parseInt 宽容的整数解析: 允许千位分隔符/前导符号/两侧空白,
// 解析失败返回 nil 而不是错误。
func parseInt(s string) *int64 {
	s = normalizeNumber(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// parseFloat is the real-number sibling of parseInt.
func parseFloat(s string) *float64 {
	s = normalizeNumber(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, ",", "")
}

// ParseTimecode parses an FFmpeg H:MM:SS[.fff] timecode. There is no day
// component and hours may exceed 23. The seconds part always carries a
// period decimal separator (FFmpeg emits it that way whatever the system
// locale is), so it is parsed with the fixed-point strconv convention and
// rounded to the nearest millisecond. Malformed input yields (0, false).
func ParseTimecode(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)

	i := strings.IndexByte(s, ':')
	if i < 0 {
		return 0, false
	}
	hours, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}

	rest := s[i+1:]
	j := strings.IndexByte(rest, ':')
	if j < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(rest[:j])
	if err != nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(rest[j+1:], 64)
	if err != nil {
		return 0, false
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return d.Round(time.Millisecond), true
}
