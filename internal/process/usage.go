// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package process

import (
	"sync"

	gopsutilprocess "github.com/shirou/gopsutil/v3/process"
)

// Monitor samples CPU and memory usage of a running process.
type Monitor interface {
	Start(pid int) error
	Stop()
	Current() (cpu float64, memory uint64)
}

type nullMonitor struct{}

// NewNullMonitor returns a monitor that reports nothing.
func NewNullMonitor() Monitor {
	return &nullMonitor{}
}

func (m *nullMonitor) Start(pid int) error        { return nil }
func (m *nullMonitor) Stop()                      {}
func (m *nullMonitor) Current() (float64, uint64) { return 0, 0 }

// sysMonitor 使用 gopsutil 采集进程 CPU 和内存
type sysMonitor struct {
	mu   sync.RWMutex
	proc *gopsutilprocess.Process
}

// NewSysMonitor creates a Monitor backed by system calls.
func NewSysMonitor() Monitor {
	return &sysMonitor{}
}

func (m *sysMonitor) Start(pid int) error {
	proc, err := gopsutilprocess.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.proc = proc
	m.mu.Unlock()
	return nil
}

func (m *sysMonitor) Stop() {
	m.mu.Lock()
	m.proc = nil
	m.mu.Unlock()
}

func (m *sysMonitor) Current() (cpu float64, memory uint64) {
	m.mu.RLock()
	proc := m.proc
	m.mu.RUnlock()
	if proc == nil {
		return 0, 0
	}
	if cpuPct, err := proc.CPUPercent(); err == nil {
		cpu = cpuPct
	}
	if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
		memory = memInfo.RSS
	}
	return cpu, memory
}
