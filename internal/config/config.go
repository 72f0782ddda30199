// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	FFmpeg FFmpegConfig `yaml:"ffmpeg"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Bind string `yaml:"bind"`
}

// FFmpegConfig FFmpeg 配置
type FFmpegConfig struct {
	Path                string   `yaml:"path"`
	MaxLogLines         int      `yaml:"max_log_lines"`
	ProbeTimeoutSeconds uint64   `yaml:"probe_timeout_seconds"`
	AllowInput          []string `yaml:"allow_input"`
	BlockInput          []string `yaml:"block_input"`
	AllowOutput         []string `yaml:"allow_output"`
	BlockOutput         []string `yaml:"block_output"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{Bind: ":8080"},
		FFmpeg: FFmpegConfig{
			Path:                "ffmpeg",
			MaxLogLines:         100,
			ProbeTimeoutSeconds: 15,
		},
	}
}

// Load 从 YAML 文件加载配置,文件不存在时回落默认值
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// 填充空值
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = ":8080"
	}
	if cfg.FFmpeg.Path == "" {
		cfg.FFmpeg.Path = "ffmpeg"
	}
	if cfg.FFmpeg.MaxLogLines <= 0 {
		cfg.FFmpeg.MaxLogLines = 100
	}
	if cfg.FFmpeg.ProbeTimeoutSeconds == 0 {
		cfg.FFmpeg.ProbeTimeoutSeconds = 15
	}

	return cfg, nil
}
