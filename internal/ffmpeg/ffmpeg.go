// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg/parse"
	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg/probe"
	"github.com/onionware-github/FFmpeg.NET/internal/process"
)

// FFmpeg manages the FFmpeg binary: conversion processes, session
// parsers and input probing.
type FFmpeg interface {
	New(config ProcessConfig) (process.Process, error)
	NewParser() parse.Parser
	Probe(ctx context.Context, input string) (probe.Result, error)
	ValidateInput(address string) bool
	ValidateOutput(address string) bool
	Version() probe.VersionInfo
}

// ProcessConfig for creating a process
type ProcessConfig struct {
	StaleTimeout  time.Duration
	Command       []string
	Parser        process.Parser
	Logger        process.Logger
	OnExit        func()
	OnStart       func()
	OnStateChange func(from, to string)
}

// Config for FFmpeg
type Config struct {
	Binary          string
	MaxLogLines     int
	ProbeTimeout    time.Duration
	ValidatorInput  Validator
	ValidatorOutput Validator
}

type ffmpeg struct {
	binary       string
	validatorIn  Validator
	validatorOut Validator
	version      probe.VersionInfo
	logLines     int
	probeTimeout time.Duration
}

// New creates FFmpeg
func New(config Config) (FFmpeg, error) {
	binary, err := exec.LookPath(config.Binary)
	if err != nil {
		return nil, fmt.Errorf("invalid ffmpeg binary: %w", err)
	}

	f := &ffmpeg{
		binary:       binary,
		logLines:     config.MaxLogLines,
		probeTimeout: config.ProbeTimeout,
	}

	if f.logLines <= 0 {
		f.logLines = 100
	}
	if f.probeTimeout <= 0 {
		f.probeTimeout = 15 * time.Second
	}

	if config.ValidatorInput != nil {
		f.validatorIn = config.ValidatorInput
	} else {
		f.validatorIn, _ = NewValidator(nil, nil)
	}
	if config.ValidatorOutput != nil {
		f.validatorOut = config.ValidatorOutput
	} else {
		f.validatorOut, _ = NewValidator(nil, nil)
	}

	v, err := probe.Version(binary)
	if err != nil {
		return nil, fmt.Errorf("invalid ffmpeg: %w", err)
	}
	f.version = v

	return f, nil
}

func (f *ffmpeg) New(config ProcessConfig) (process.Process, error) {
	return process.New(process.Config{
		Binary:        f.binary,
		Args:          config.Command,
		StaleTimeout:  config.StaleTimeout,
		Parser:        config.Parser,
		Logger:        config.Logger,
		OnStart:       config.OnStart,
		OnExit:        config.OnExit,
		OnStateChange: config.OnStateChange,
	})
}

func (f *ffmpeg) NewParser() parse.Parser {
	return parse.New(parse.Config{LogLines: f.logLines})
}

func (f *ffmpeg) Probe(ctx context.Context, input string) (probe.Result, error) {
	cctx, cancel := context.WithTimeout(ctx, f.probeTimeout)
	defer cancel()
	return probe.Run(cctx, f.binary, input)
}

func (f *ffmpeg) ValidateInput(address string) bool {
	return f.validatorIn.IsValid(address)
}

func (f *ffmpeg) ValidateOutput(address string) bool {
	return f.validatorOut.IsValid(address)
}

func (f *ffmpeg) Version() probe.VersionInfo {
	return f.version
}
