// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package parse

import (
	"container/ring"
	"sync"
	"time"

	"github.com/onionware-github/FFmpeg.NET/internal/process"
)

// Parser implements process.Parser and feeds every FFmpeg stderr line
// through the extraction engine, keeping the latest state of one
// conversion session: clip media info, stream metadata, the most recent
// progress report and the final size once the conversion ends.
type Parser interface {
	process.Parser
	Progress() (Progress, bool)
	MediaInfo() (MediaInfo, bool)
	Meta() MetaData
	Final() (int64, bool)
}

type parser struct {
	log      *ring.Ring
	logLines int
	logStart time.Time

	progress  *Progress
	media     *MediaInfo
	meta      MetaData
	finalSize *int64
	lock      sync.RWMutex
}

// Config for the parser
type Config struct {
	LogLines int
}

// New creates a Parser for one conversion session.
func New(config Config) Parser {
	p := &parser{
		logLines: config.LogLines,
	}
	if p.logLines <= 0 {
		p.logLines = 100
	}
	p.log = ring.New(p.logLines)
	p.logStart = time.Now()
	return p
}

// Parse consumes one stderr line. Any line that yields a progress
// report returns a non-zero liveness hint so the process watchdog can
// tell live progress from stalled output: the frame counter when the
// line carries one, the elapsed milliseconds otherwise (frame= is
// optional, audio-only conversions never emit it).
// Parse 只会被进程的 reader goroutine 串行调用,MetaData 的
// check-then-set 因此无需额外同步。
func (p *parser) Parse(line string) uint64 {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.log.Value = process.Line{Timestamp: time.Now(), Data: line}
	p.log = p.log.Next()

	// 静态元数据只在开头出现一次
	if p.media == nil {
		if info, ok := ExtractMediaInfo(line); ok {
			p.media = info
		}
	}
	ExtractAudioMeta(line, &p.meta)
	ExtractVideoMeta(line, &p.meta)

	if size, ok := ExtractFinal(line); ok {
		p.finalSize = &size
	}

	prog, ok := ExtractProgress(line)
	if !ok {
		return 0
	}
	if p.media != nil {
		prog.Total = p.media.Duration
	}
	p.progress = prog

	if prog.Frame != nil && *prog.Frame > 0 {
		return uint64(*prog.Frame)
	}
	if ms := prog.Processed / time.Millisecond; ms > 0 {
		return uint64(ms)
	}
	return 1
}

func (p *parser) ResetStats() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.progress = nil
	p.media = nil
	p.meta = MetaData{}
	p.finalSize = nil
}

func (p *parser) ResetLog() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.log = ring.New(p.logLines)
	p.logStart = time.Now()
}

func (p *parser) Log() []process.Line {
	var out []process.Line
	p.lock.RLock()
	p.log.Do(func(v interface{}) {
		if v != nil {
			out = append(out, v.(process.Line))
		}
	})
	p.lock.RUnlock()
	return out
}

// Progress returns the latest progress report, if any line produced one.
func (p *parser) Progress() (Progress, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.progress == nil {
		return Progress{}, false
	}
	return *p.progress, true
}

// MediaInfo returns the clip metadata, if announced.
func (p *parser) MediaInfo() (MediaInfo, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.media == nil {
		return MediaInfo{}, false
	}
	return *p.media, true
}

// Meta returns a snapshot of the stream metadata accumulator.
func (p *parser) Meta() MetaData {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.meta
}

// Final returns the encoded size in kB once the conversion has ended.
func (p *parser) Final() (int64, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if p.finalSize == nil {
		return 0, false
	}
	return *p.finalSize, true
}
