// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理
//
// Package probe runs "ffmpeg -i" against an input and feeds the banner
// FFmpeg prints through the extraction engine, yielding the clip's
// media info and stream metadata without transcoding anything.

package probe

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg/parse"
)

// Result of probing one input.
type Result struct {
	Input string
	Info  *parse.MediaInfo
	Meta  parse.MetaData
}

// Run probes an input file or address.
func Run(ctx context.Context, binary, input string) (Result, error) {
	cmd := exec.CommandContext(ctx, binary, "-hide_banner", "-i", input)
	cmd.Env = []string{}

	// ffmpeg -i 没有输出文件必然以非零退出,信息仍在 stderr 里
	out, err := cmd.CombinedOutput()
	if len(out) == 0 {
		if err != nil {
			return Result{}, fmt.Errorf("probe %s: %w", input, err)
		}
		return Result{}, fmt.Errorf("probe %s: no output", input)
	}

	res := scan(input, bufio.NewScanner(bytes.NewReader(out)))
	if res.Info == nil && res.Meta.Video == nil && res.Meta.Audio == nil {
		return res, fmt.Errorf("probe %s: no media recognized", input)
	}
	return res, nil
}

func scan(input string, scanner *bufio.Scanner) Result {
	res := Result{Input: input}
	for scanner.Scan() {
		line := scanner.Text()
		if res.Info == nil {
			if info, ok := parse.ExtractMediaInfo(line); ok {
				res.Info = info
			}
		}
		parse.ExtractAudioMeta(line, &res.Meta)
		parse.ExtractVideoMeta(line, &res.Meta)
	}
	return res
}
