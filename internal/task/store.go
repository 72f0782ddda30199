// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package task

import (
	"sync"
	"time"

	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg"
	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg/parse"
	"github.com/onionware-github/FFmpeg.NET/internal/logger"
	"github.com/onionware-github/FFmpeg.NET/internal/process"

	"github.com/lithammer/shortuuid/v4"
)

// Task is one conversion session: a process plus the parser holding its
// extracted state.
type Task struct {
	ID        string
	Reference string
	Config    *Config
	CreatedAt int64
	UpdatedAt int64

	proc   process.Process
	parser parse.Parser
}

// Status returns process status
func (t *Task) Status() process.Status {
	return t.proc.Status()
}

// Progress returns the latest extracted progress report.
func (t *Task) Progress() (parse.Progress, bool) {
	if t.parser == nil {
		return parse.Progress{}, false
	}
	return t.parser.Progress()
}

// MediaInfo returns the clip metadata once FFmpeg announced it.
func (t *Task) MediaInfo() (parse.MediaInfo, bool) {
	if t.parser == nil {
		return parse.MediaInfo{}, false
	}
	return t.parser.MediaInfo()
}

// Meta returns the stream metadata accumulated for this session.
func (t *Task) Meta() parse.MetaData {
	if t.parser == nil {
		return parse.MetaData{}
	}
	return t.parser.Meta()
}

// Final returns the final encoded size in kB, once the conversion ended.
func (t *Task) Final() (int64, bool) {
	if t.parser == nil {
		return 0, false
	}
	return t.parser.Final()
}

// Log returns the captured stderr lines
func (t *Task) Log() []process.Line {
	if t.parser == nil {
		return nil
	}
	return t.parser.Log()
}

// IsRunning returns whether the process is running
func (t *Task) IsRunning() bool {
	return t.proc.IsRunning()
}

// Store manages tasks in memory
type Store interface {
	Add(config *Config) (*Task, error)
	Get(id string) (*Task, error)
	List(ids []string, reference string) []*Task
	Update(id string, config *Config) (*Task, error)
	Delete(id string) error
	Start(id string) error
	Stop(id string) error
	Restart(id string) error
}

type store struct {
	ffmpeg ffmpeg.FFmpeg
	logger logger.Logger
	tasks  map[string]*Task
	mu     sync.RWMutex
}

// NewStore creates a task store
func NewStore(ff ffmpeg.FFmpeg, log logger.Logger) Store {
	if log == nil {
		log = logger.New("task")
	}
	return &store{
		ffmpeg: ff,
		logger: log,
		tasks:  make(map[string]*Task),
	}
}

func (s *store) validate(config *Config) error {
	if len(config.Input) == 0 || len(config.Output) == 0 {
		return ErrInvalidConfig
	}
	for _, in := range config.Input {
		if !s.ffmpeg.ValidateInput(in.Address) {
			return ErrInvalidInputAddress
		}
	}
	for _, out := range config.Output {
		if !s.ffmpeg.ValidateOutput(out.Address) {
			return ErrInvalidOutputAddress
		}
	}
	return nil
}

func (s *store) build(config *Config) (process.Process, parse.Parser, error) {
	parser := s.ffmpeg.NewParser()

	proc, err := s.ffmpeg.New(ffmpeg.ProcessConfig{
		StaleTimeout: time.Duration(config.StaleTimeout) * time.Second,
		Command:      config.CreateCommand(),
		Parser:       parser,
		Logger:       s.logger,
		OnStateChange: func(from, to string) {
			s.logger.Info("task %s state %s -> %s", config.ID, from, to)
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return proc, parser, nil
}

func (s *store) Add(config *Config) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(config.ID) == 0 {
		config.ID = shortuuid.New()
	}
	if _, exists := s.tasks[config.ID]; exists {
		return nil, ErrTaskExists
	}
	if err := s.validate(config); err != nil {
		return nil, err
	}

	proc, parser, err := s.build(config)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	task := &Task{
		ID:        config.ID,
		Reference: config.Reference,
		Config:    config,
		CreatedAt: now,
		UpdatedAt: now,
		proc:      proc,
		parser:    parser,
	}
	s.tasks[config.ID] = task

	if config.Autostart {
		go task.proc.Start()
	}

	return task, nil
}

func (s *store) Get(id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *store) List(ids []string, reference string) []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Task
	for _, t := range s.tasks {
		if len(reference) > 0 && t.Reference != reference {
			continue
		}
		if len(ids) > 0 && !contains(ids, t.ID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (s *store) Update(id string, config *Config) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	config.ID = id
	config.Reference = t.Reference

	if err := s.validate(config); err != nil {
		return nil, err
	}

	wasRunning := t.proc.IsRunning()
	if wasRunning {
		t.proc.Stop(true)
	}

	proc, parser, err := s.build(config)
	if err != nil {
		return nil, err
	}

	t.Config = config
	t.UpdatedAt = time.Now().Unix()
	t.proc = proc
	t.parser = parser

	if wasRunning || config.Autostart {
		go t.proc.Start()
	}

	return t, nil
}

func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}

	t.proc.Stop(true)
	delete(s.tasks, id)
	return nil
}

func (s *store) Start(id string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	return t.proc.Start()
}

func (s *store) Stop(id string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	return t.proc.Stop(true)
}

func (s *store) Restart(id string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	t.proc.Stop(true)
	return t.proc.Start()
}
