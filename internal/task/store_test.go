// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package task

import (
	"context"
	"strings"
	"testing"

	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg"
	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg/parse"
	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg/probe"
	"github.com/onionware-github/FFmpeg.NET/internal/logger"
	"github.com/onionware-github/FFmpeg.NET/internal/process"
)

type stubFFmpeg struct {
	blockInput string
}

func (s *stubFFmpeg) New(config ffmpeg.ProcessConfig) (process.Process, error) {
	return &stubProcess{}, nil
}

func (s *stubFFmpeg) NewParser() parse.Parser {
	return parse.New(parse.Config{LogLines: 10})
}

func (s *stubFFmpeg) Probe(ctx context.Context, input string) (probe.Result, error) {
	return probe.Result{Input: input}, nil
}

func (s *stubFFmpeg) ValidateInput(address string) bool {
	return s.blockInput == "" || !strings.Contains(address, s.blockInput)
}

func (s *stubFFmpeg) ValidateOutput(address string) bool { return true }

func (s *stubFFmpeg) Version() probe.VersionInfo {
	return probe.VersionInfo{Version: "6.1.1"}
}

type stubProcess struct {
	running bool
}

func (p *stubProcess) Status() process.Status { return process.Status{State: "created"} }
func (p *stubProcess) Start() error           { p.running = true; return nil }
func (p *stubProcess) Stop(wait bool) error   { p.running = false; return nil }
func (p *stubProcess) IsRunning() bool        { return p.running }

func testConfig(id string) *Config {
	return &Config{
		ID:     id,
		Input:  []ConfigIO{{Address: "/data/in.mp4"}},
		Output: []ConfigIO{{Address: "/data/out.mp4"}},
	}
}

// TestStoreAdd creates a task and assigns an ID when none is given.
func TestStoreAdd(t *testing.T) {
	s := NewStore(&stubFFmpeg{}, logger.New("test"))

	task, err := s.Add(testConfig(""))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task.ID == "" {
		t.Fatal("no ID assigned")
	}

	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != task {
		t.Fatal("Get returned a different task")
	}
}

// TestStoreAddDuplicate rejects an existing ID.
func TestStoreAddDuplicate(t *testing.T) {
	s := NewStore(&stubFFmpeg{}, logger.New("test"))

	if _, err := s.Add(testConfig("dup")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(testConfig("dup")); err != ErrTaskExists {
		t.Fatalf("second Add error = %v, want %v", err, ErrTaskExists)
	}
}

// TestStoreAddValidation rejects incomplete or blocked configs.
func TestStoreAddValidation(t *testing.T) {
	s := NewStore(&stubFFmpeg{blockInput: ".avi"}, logger.New("test"))

	if _, err := s.Add(&Config{}); err != ErrInvalidConfig {
		t.Fatalf("empty config error = %v, want %v", err, ErrInvalidConfig)
	}

	cfg := testConfig("")
	cfg.Input[0].Address = "/data/in.avi"
	if _, err := s.Add(cfg); err != ErrInvalidInputAddress {
		t.Fatalf("blocked input error = %v, want %v", err, ErrInvalidInputAddress)
	}
}

// TestStoreListFilters filters by reference and ids.
func TestStoreListFilters(t *testing.T) {
	s := NewStore(&stubFFmpeg{}, logger.New("test"))

	a := testConfig("a")
	a.Reference = "movie"
	b := testConfig("b")
	b.Reference = "show"
	for _, cfg := range []*Config{a, b} {
		if _, err := s.Add(cfg); err != nil {
			t.Fatalf("Add %s: %v", cfg.ID, err)
		}
	}

	if got := s.List(nil, ""); len(got) != 2 {
		t.Errorf("List all = %d, want 2", len(got))
	}
	if got := s.List(nil, "movie"); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("List by reference = %v", got)
	}
	if got := s.List([]string{"b"}, ""); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("List by id = %v", got)
	}
}

// TestStoreDelete stops and removes the task.
func TestStoreDelete(t *testing.T) {
	s := NewStore(&stubFFmpeg{}, logger.New("test"))

	task, err := s.Add(testConfig("del"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Delete(task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(task.ID); err != ErrNotFound {
		t.Fatalf("Get after delete = %v, want %v", err, ErrNotFound)
	}
	if err := s.Delete(task.ID); err != ErrNotFound {
		t.Fatalf("second Delete = %v, want %v", err, ErrNotFound)
	}
}

// TestStoreCommands drive the process through the store.
func TestStoreCommands(t *testing.T) {
	s := NewStore(&stubFFmpeg{}, logger.New("test"))

	task, err := s.Add(testConfig("cmd"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := s.Start(task.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !task.IsRunning() {
		t.Fatal("task not running after Start")
	}
	if err := s.Stop(task.ID); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if task.IsRunning() {
		t.Fatal("task running after Stop")
	}
	if err := s.Start("missing"); err != ErrNotFound {
		t.Fatalf("Start missing = %v, want %v", err, ErrNotFound)
	}
}
