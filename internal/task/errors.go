// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package task

import "errors"

var (
	ErrNotFound             = errors.New("task not found")
	ErrTaskExists           = errors.New("task already exists")
	ErrInvalidConfig        = errors.New("invalid config: need at least one input and one output")
	ErrInvalidInputAddress  = errors.New("invalid input address")
	ErrInvalidOutputAddress = errors.New("invalid output address")
)
