// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理
//
// Package process wraps exec.Cmd for one FFmpeg conversion run and
// streams its stderr lines into a Parser.

package process

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"syscall"
	"time"
	"unicode/utf8"
)

// Process is one controllable FFmpeg run.
type Process interface {
	Status() Status
	Start() error
	Stop(wait bool) error
	IsRunning() bool
}

// Config for a process
type Config struct {
	Binary        string
	Args          []string
	StaleTimeout  time.Duration
	Parser        Parser
	Logger        Logger
	OnStart       func()
	OnExit        func()
	OnStateChange func(from, to string)
}

// Status of a process
type Status struct {
	State    string
	Duration time.Duration
	Time     time.Time
	CPU      float64
	Memory   uint64
}

// Logger interface
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

type stateType string

const (
	stateCreated   stateType = "created"
	stateStarting  stateType = "starting"
	stateRunning   stateType = "running"
	stateFinishing stateType = "finishing"
	stateFinished  stateType = "finished"
	stateFailed    stateType = "failed"
	stateKilled    stateType = "killed"
)

func (s stateType) String() string { return string(s) }

func (s stateType) IsRunning() bool {
	return s == stateStarting || s == stateRunning || s == stateFinishing
}

// 合法的状态迁移,非法迁移直接报错
var transitions = map[stateType][]stateType{
	stateCreated:   {stateStarting},
	stateStarting:  {stateRunning, stateFinishing, stateFailed},
	stateRunning:   {stateFinishing, stateFinished, stateFailed, stateKilled},
	stateFinishing: {stateFinished, stateFailed, stateKilled},
	stateFinished:  {stateStarting},
	stateFailed:    {stateStarting},
	stateKilled:    {stateStarting},
}

type process struct {
	binary string
	args   []string

	cmd    *exec.Cmd
	stderr io.ReadCloser
	done   chan struct{}

	state struct {
		state stateType
		time  time.Time
		lock  sync.Mutex
	}

	stale struct {
		last    time.Time
		timeout time.Duration
		cancel  context.CancelFunc
		lock    sync.Mutex
	}

	killTimer     *time.Timer
	killTimerLock sync.Mutex

	parser  Parser
	logger  Logger
	monitor Monitor

	callbacks struct {
		onStart       func()
		onExit        func()
		onStateChange func(from, to string)
	}

	lock sync.Mutex
}

// New creates a new process
func New(config Config) (Process, error) {
	if len(config.Binary) == 0 {
		return nil, fmt.Errorf("no valid binary given")
	}

	p := &process{
		binary:  config.Binary,
		args:    config.Args,
		parser:  config.Parser,
		logger:  config.Logger,
		monitor: NewSysMonitor(),
	}

	if p.parser == nil {
		p.parser = &nullParser{}
	}
	if p.logger == nil {
		p.logger = &nopLogger{}
	}

	p.state.state = stateCreated
	p.state.time = time.Now()
	p.stale.timeout = config.StaleTimeout
	p.callbacks.onStart = config.OnStart
	p.callbacks.onExit = config.OnExit
	p.callbacks.onStateChange = config.OnStateChange

	return p, nil
}

func (p *process) setState(state stateType) error {
	p.state.lock.Lock()
	prev := p.state.state

	allowed := false
	for _, next := range transitions[prev] {
		if next == state {
			allowed = true
			break
		}
	}
	if !allowed {
		p.state.lock.Unlock()
		return fmt.Errorf("can't change from %s to %s", prev, state)
	}

	p.state.state = state
	p.state.time = time.Now()
	p.state.lock.Unlock()

	if p.callbacks.onStateChange != nil {
		go p.callbacks.onStateChange(prev.String(), state.String())
	}
	return nil
}

func (p *process) getState() stateType {
	p.state.lock.Lock()
	defer p.state.lock.Unlock()
	return p.state.state
}

func (p *process) IsRunning() bool {
	return p.getState().IsRunning()
}

func (p *process) Status() Status {
	cpu, memory := p.monitor.Current()

	p.state.lock.Lock()
	s := Status{
		State:  p.state.state.String(),
		Time:   p.state.time,
		CPU:    cpu,
		Memory: memory,
	}
	s.Duration = time.Since(s.Time)
	p.state.lock.Unlock()

	return s
}

func (p *process) Start() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.IsRunning() {
		return nil
	}

	if err := p.setState(stateStarting); err != nil {
		return err
	}

	p.cmd = exec.Command(p.binary, p.args...)
	p.cmd.Env = []string{}

	var err error
	p.stderr, err = p.cmd.StderrPipe()
	if err != nil {
		p.setState(stateFailed)
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := p.cmd.Start(); err != nil {
		p.setState(stateFailed)
		return fmt.Errorf("start %s: %w", p.binary, err)
	}

	p.logger.Debug("started %s (pid %d)", p.binary, p.cmd.Process.Pid)
	p.monitor.Start(p.cmd.Process.Pid)
	p.setState(stateRunning)

	if p.callbacks.onStart != nil {
		go p.callbacks.onStart()
	}

	p.done = make(chan struct{})
	go p.reader(p.done)

	if p.stale.timeout != 0 {
		p.stale.lock.Lock()
		ctx, cancel := context.WithCancel(context.Background())
		p.stale.cancel = cancel
		p.stale.lock.Unlock()
		go p.staler(ctx)
	}

	return nil
}

func (p *process) Stop(wait bool) error {
	p.lock.Lock()
	if !p.IsRunning() || p.getState() == stateFinishing {
		p.lock.Unlock()
		return nil
	}

	p.setState(stateFinishing)
	done := p.done

	var err error
	if runtime.GOOS == "windows" {
		err = p.cmd.Process.Kill()
	} else {
		// 先 SIGINT 让 FFmpeg 写完尾部,超时再 SIGKILL
		err = p.cmd.Process.Signal(os.Interrupt)
		if err != nil {
			err = p.cmd.Process.Kill()
		} else {
			p.killTimerLock.Lock()
			p.killTimer = time.AfterFunc(5*time.Second, func() {
				p.cmd.Process.Kill()
			})
			p.killTimerLock.Unlock()
		}
	}
	p.lock.Unlock()

	if err != nil {
		p.setState(stateFailed)
		return err
	}

	if wait && done != nil {
		<-done
	}
	return nil
}

func (p *process) staler(ctx context.Context) {
	p.stale.lock.Lock()
	p.stale.last = time.Now()
	p.stale.lock.Unlock()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			p.stale.lock.Lock()
			last := p.stale.last
			timeout := p.stale.timeout
			p.stale.lock.Unlock()

			if t.Sub(last) > timeout {
				p.logger.Error("no progress for %s, stopping", timeout)
				p.Stop(false)
				return
			}
		}
	}
}

func (p *process) reader(done chan struct{}) {
	scanner := bufio.NewScanner(p.stderr)
	scanner.Split(scanLine)

	p.parser.ResetStats()
	p.parser.ResetLog()

	for scanner.Scan() {
		if n := p.parser.Parse(scanner.Text()); n != 0 {
			p.stale.lock.Lock()
			p.stale.last = time.Now()
			p.stale.lock.Unlock()
		}
	}

	p.waiter(done)
}

func (p *process) waiter(done chan struct{}) {
	err := p.cmd.Wait()

	state := stateFinished
	if err != nil {
		state = stateFailed
		if exiterr, ok := err.(*exec.ExitError); ok {
			if status, ok := exiterr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				state = stateKilled
			}
		}
	}
	if p.getState() == stateFinishing && state == stateFailed {
		// 人为中断导致的非零退出码按 killed 处理
		state = stateKilled
	}
	p.setState(state)

	p.monitor.Stop()

	p.killTimerLock.Lock()
	if p.killTimer != nil {
		p.killTimer.Stop()
		p.killTimer = nil
	}
	p.killTimerLock.Unlock()

	p.stale.lock.Lock()
	if p.stale.cancel != nil {
		p.stale.cancel()
		p.stale.cancel = nil
	}
	p.stale.lock.Unlock()

	if p.callbacks.onExit != nil {
		go p.callbacks.onExit()
	}

	close(done)
}

// scanLine splits on both LF and CR. FFmpeg rewrites its progress line
// in place with a bare CR, so a plain line scanner would sit on one
// giant token until the process exits.
func scanLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, w := utf8.DecodeRune(data[start:])
		if r != '\n' && r != '\r' {
			break
		}
		start += w
	}

	for i := start; i < len(data); {
		r, w := utf8.DecodeRune(data[i:])
		if r == '\n' || r == '\r' {
			return i + w, data[start:i], nil
		}
		i += w
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

type nullParser struct{}

func (p *nullParser) Parse(line string) uint64 { return 1 }
func (p *nullParser) ResetStats()              {}
func (p *nullParser) ResetLog()                {}
func (p *nullParser) Log() []Line              { return nil }

type nopLogger struct{}

func (l *nopLogger) Info(format string, args ...interface{})  {}
func (l *nopLogger) Error(format string, args ...interface{}) {}
func (l *nopLogger) Debug(format string, args ...interface{}) {}
