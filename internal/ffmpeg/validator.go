// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator decides whether an address may be used as FFmpeg input or
// output. Block rules win over allow rules; an empty allow list allows
// everything not blocked.
type Validator interface {
	IsValid(text string) bool
}

type validator struct {
	allow []*regexp.Regexp
	block []*regexp.Regexp
}

// NewValidator creates a new Validator. Empty expressions are ignored.
func NewValidator(allow, block []string) (Validator, error) {
	allowRe, err := compileAll(allow)
	if err != nil {
		return nil, fmt.Errorf("invalid allow expression: %w", err)
	}
	blockRe, err := compileAll(block)
	if err != nil {
		return nil, fmt.Errorf("invalid block expression: %w", err)
	}
	return &validator{allow: allowRe, block: blockRe}, nil
}

func compileAll(exprs []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp
	for _, exp := range exprs {
		exp = strings.TrimSpace(exp)
		if exp == "" {
			continue
		}
		re, err := regexp.Compile(exp)
		if err != nil {
			return nil, fmt.Errorf("'%s': %w", exp, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func (v *validator) IsValid(text string) bool {
	for _, e := range v.block {
		if e.MatchString(text) {
			return false
		}
	}
	if len(v.allow) == 0 {
		return true
	}
	for _, e := range v.allow {
		if e.MatchString(text) {
			return true
		}
	}
	return false
}
