// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package probe

import (
	"fmt"
	"os/exec"
	"regexp"
)

// Library is a linked av library
type Library struct {
	Name     string
	Compiled string
	Linked   string
}

// VersionInfo describes the FFmpeg build in use.
type VersionInfo struct {
	Version       string
	Compiler      string
	Configuration string
	Libraries     []Library
}

// Version runs "ffmpeg -version" and parses the banner.
func Version(binary string) (VersionInfo, error) {
	cmd := exec.Command(binary, "-version")
	cmd.Env = []string{}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return VersionInfo{}, fmt.Errorf("run %s -version: %w", binary, err)
	}
	v := parseVersion(out)
	if v.Version == "" {
		return VersionInfo{}, fmt.Errorf("can't parse ffmpeg version")
	}
	return v, nil
}

var (
	reVersion       = regexp.MustCompile(`^ffmpeg version ([0-9]+\.[0-9]+(\.[0-9]+)?)`)
	reCompiler      = regexp.MustCompile(`(?m)^\s*built with (.*)$`)
	reConfiguration = regexp.MustCompile(`(?m)^\s*configuration: (.*)$`)
	reLibrary       = regexp.MustCompile(`(?m)^\s*(lib(?:[a-z]+))\s+([0-9]+\.\s*[0-9]+\.\s*[0-9]+) /\s+([0-9]+\.\s*[0-9]+\.\s*[0-9]+)`)
)

func parseVersion(data []byte) VersionInfo {
	v := VersionInfo{}

	if m := reVersion.FindSubmatch(data); m != nil {
		v.Version = string(m[1])
		if len(m[2]) == 0 {
			v.Version += ".0"
		}
	}
	if m := reCompiler.FindSubmatch(data); m != nil {
		v.Compiler = string(m[1])
	}
	if m := reConfiguration.FindSubmatch(data); m != nil {
		v.Configuration = string(m[1])
	}
	for _, m := range reLibrary.FindAllSubmatch(data, -1) {
		v.Libraries = append(v.Libraries, Library{
			Name:     string(m[1]),
			Compiled: string(m[2]),
			Linked:   string(m[3]),
		})
	}
	return v
}
