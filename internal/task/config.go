// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package task

// ConfigIO is input/output config
type ConfigIO struct {
	ID      string   `json:"id"`
	Address string   `json:"address"`
	Options []string `json:"options"`
}

// Config for a conversion task
type Config struct {
	ID           string     `json:"id"`
	Reference    string     `json:"reference"`
	Input        []ConfigIO `json:"input"`
	Output       []ConfigIO `json:"output"`
	Options      []string   `json:"options"`
	Autostart    bool       `json:"autostart"`
	StaleTimeout uint64     `json:"stale_timeout_seconds"`
}

// CreateCommand builds FFmpeg args from config. Global options come
// first, then per-input options before each -i, then per-output options
// before each output address (FFmpeg's positional convention).
func (c *Config) CreateCommand() []string {
	var cmd []string
	cmd = append(cmd, c.Options...)
	for _, in := range c.Input {
		cmd = append(cmd, in.Options...)
		cmd = append(cmd, "-i", in.Address)
	}
	for _, out := range c.Output {
		cmd = append(cmd, out.Options...)
		cmd = append(cmd, out.Address)
	}
	return cmd
}
