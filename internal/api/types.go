// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package api

// ProcessConfigIO is API input/output
type ProcessConfigIO struct {
	ID      string   `json:"id"`
	Address string   `json:"address"`
	Options []string `json:"options"`
}

// ProcessConfigRequest for Add/Update
type ProcessConfigRequest struct {
	ID           string            `json:"id"`
	Reference    string            `json:"reference"`
	Input        []ProcessConfigIO `json:"input" binding:"required"`
	Output       []ProcessConfigIO `json:"output" binding:"required"`
	Options      []string          `json:"options"`
	Autostart    bool              `json:"autostart"`
	StaleTimeout uint64            `json:"stale_timeout_seconds"`
}

// Process represents a task in API response
type Process struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Reference string         `json:"reference"`
	CreatedAt int64          `json:"created_at"`
	UpdatedAt int64          `json:"updated_at"`
	Config    *ProcessConfig `json:"config,omitempty"`
	State     *ProcessState  `json:"state,omitempty"`
}

// ProcessConfig in API format
type ProcessConfig struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Reference    string            `json:"reference"`
	Input        []ProcessConfigIO `json:"input"`
	Output       []ProcessConfigIO `json:"output"`
	Options      []string          `json:"options"`
	Autostart    bool              `json:"autostart"`
	StaleTimeout uint64            `json:"stale_timeout_seconds"`
}

// ProcessState for API
type ProcessState struct {
	State    string     `json:"exec"`
	Runtime  int64      `json:"runtime_seconds"`
	Progress *Progress  `json:"progress"`
	Media    *MediaInfo `json:"media"`
	Streams  *Streams   `json:"streams"`
	Memory   uint64     `json:"memory_bytes"`
	CPU      float64    `json:"cpu_usage"`
	Command  []string   `json:"command"`
}

// Progress is the latest extracted progress report. Optional fields are
// null when the corresponding token was missing from the output.
type Progress struct {
	TimeSeconds  float64  `json:"time_seconds"`
	TotalSeconds float64  `json:"total_seconds"`
	Percent      *float64 `json:"percent"`
	Frame        *int64   `json:"frame"`
	Fps          *float64 `json:"fps"`
	SizeKB       *int64   `json:"size_kb"`
	BitrateKbps  *float64 `json:"bitrate_kbps"`
	FinalSizeKB  *int64   `json:"final_size_kb"`
}

// MediaInfo is the clip metadata announced by FFmpeg.
type MediaInfo struct {
	DurationSeconds float64 `json:"duration_seconds"`
	BitrateKbps     float64 `json:"bitrate_kbps"`
}

// Streams carries the first announced stream of each kind.
type Streams struct {
	Video *VideoStream `json:"video"`
	Audio *AudioStream `json:"audio"`
}

// VideoStream for API
type VideoStream struct {
	Format      string   `json:"format"`
	ColorModel  string   `json:"color_model"`
	FrameSize   string   `json:"frame_size"`
	Fps         float64  `json:"fps"`
	BitrateKbps *float64 `json:"bitrate_kbps"`
}

// AudioStream for API
type AudioStream struct {
	Format        string `json:"format"`
	SampleRate    string `json:"sample_rate"`
	ChannelLayout string `json:"channel_layout"`
	BitrateKbps   int64  `json:"bitrate_kbps"`
}

// ProbeRequest for POST /probe
type ProbeRequest struct {
	Input string `json:"input" binding:"required"`
}

// ProbeResponse for POST /probe
type ProbeResponse struct {
	Input   string     `json:"input"`
	Media   *MediaInfo `json:"media"`
	Streams *Streams   `json:"streams"`
}

// Version for GET /version
type Version struct {
	Version       string   `json:"version"`
	Compiler      string   `json:"compiler"`
	Configuration string   `json:"configuration"`
	Libraries     []string `json:"libraries"`
}

// ProcessReport for logs
type ProcessReport struct {
	CreatedAt int64       `json:"created_at"`
	Log       [][2]string `json:"log"`
}

// CommandRequest for start/stop/restart
type CommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// ErrorResponse for API errors
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
