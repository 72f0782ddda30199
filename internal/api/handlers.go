// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg"
	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg/parse"
	"github.com/onionware-github/FFmpeg.NET/internal/task"
)

// Handler holds dependencies
type Handler struct {
	store  task.Store
	ffmpeg ffmpeg.FFmpeg
}

// NewHandler creates API handler
func NewHandler(store task.Store, ff ffmpeg.FFmpeg) *Handler {
	return &Handler{store: store, ffmpeg: ff}
}

func errResp(c *gin.Context, code int, msg, detail string) {
	c.JSON(code, ErrorResponse{Code: code, Message: msg, Detail: detail})
}

// Version GET /api/v3/version
func (h *Handler) Version(c *gin.Context) {
	v := h.ffmpeg.Version()
	out := Version{
		Version:       v.Version,
		Compiler:      v.Compiler,
		Configuration: v.Configuration,
	}
	for _, lib := range v.Libraries {
		out.Libraries = append(out.Libraries, lib.Name)
	}
	c.JSON(http.StatusOK, out)
}

// Probe POST /api/v3/probe
func (h *Handler) Probe(c *gin.Context) {
	var req ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	if !h.ffmpeg.ValidateInput(req.Input) {
		errResp(c, http.StatusBadRequest, "Invalid address", task.ErrInvalidInputAddress.Error())
		return
	}

	res, err := h.ffmpeg.Probe(c.Request.Context(), req.Input)
	if err != nil {
		errResp(c, http.StatusBadRequest, "Probe failed", err.Error())
		return
	}

	out := ProbeResponse{
		Input:   res.Input,
		Streams: streamsToAPI(res.Meta),
	}
	if res.Info != nil {
		out.Media = &MediaInfo{
			DurationSeconds: res.Info.Duration.Seconds(),
			BitrateKbps:     res.Info.BitRateKbs,
		}
	}
	c.JSON(http.StatusOK, out)
}

// AddProcess POST /api/v3/process
func (h *Handler) AddProcess(c *gin.Context) {
	var req ProcessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	t, err := h.store.Add(requestToConfig(&req))
	if err != nil {
		if errors.Is(err, task.ErrTaskExists) {
			errResp(c, http.StatusBadRequest, "Task exists", err.Error())
			return
		}
		errResp(c, http.StatusBadRequest, "Invalid config", err.Error())
		return
	}

	c.JSON(http.StatusOK, taskToProcessConfig(t))
}

// ListProcesses GET /api/v3/process
func (h *Handler) ListProcesses(c *gin.Context) {
	reference := c.DefaultQuery("reference", "")
	idStr := c.DefaultQuery("id", "")

	var ids []string
	if idStr != "" {
		ids = strings.FieldsFunc(idStr, func(r rune) bool { return r == ',' })
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
		}
	}

	tasks := h.store.List(ids, reference)
	procs := make([]Process, 0, len(tasks))
	for _, t := range tasks {
		procs = append(procs, taskToProcess(t))
	}

	c.JSON(http.StatusOK, procs)
}

// GetProcess GET /api/v3/process/:id
func (h *Handler) GetProcess(c *gin.Context) {
	t, err := h.store.Get(c.Param("id"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown process ID", err.Error())
		return
	}

	c.JSON(http.StatusOK, taskToProcess(t))
}

// DeleteProcess DELETE /api/v3/process/:id
func (h *Handler) DeleteProcess(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Stop(id); err != nil {
		errResp(c, http.StatusNotFound, "Unknown process ID", err.Error())
		return
	}
	if err := h.store.Delete(id); err != nil {
		errResp(c, http.StatusInternalServerError, "Delete failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, "OK")
}

// UpdateProcess PUT /api/v3/process/:id
func (h *Handler) UpdateProcess(c *gin.Context) {
	id := c.Param("id")

	var req ProcessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	cfg := requestToConfig(&req)
	cfg.ID = id

	t, err := h.store.Update(id, cfg)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			errResp(c, http.StatusNotFound, "Unknown process ID", err.Error())
			return
		}
		errResp(c, http.StatusBadRequest, "Invalid config", err.Error())
		return
	}

	c.JSON(http.StatusOK, taskToProcessConfig(t))
}

// GetConfig GET /api/v3/process/:id/config
func (h *Handler) GetConfig(c *gin.Context) {
	t, err := h.store.Get(c.Param("id"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown process ID", err.Error())
		return
	}

	c.JSON(http.StatusOK, taskToProcessConfig(t))
}

// GetState GET /api/v3/process/:id/state
func (h *Handler) GetState(c *gin.Context) {
	t, err := h.store.Get(c.Param("id"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown process ID", err.Error())
		return
	}

	c.JSON(http.StatusOK, taskToState(t))
}

// GetReport GET /api/v3/process/:id/report
func (h *Handler) GetReport(c *gin.Context) {
	t, err := h.store.Get(c.Param("id"))
	if err != nil {
		errResp(c, http.StatusNotFound, "Unknown process ID", err.Error())
		return
	}

	report := ProcessReport{CreatedAt: t.CreatedAt}
	lines := t.Log()
	report.Log = make([][2]string, len(lines))
	for i, line := range lines {
		report.Log[i] = [2]string{
			line.Timestamp.Format("2006-01-02 15:04:05.000"),
			line.Data,
		}
	}

	c.JSON(http.StatusOK, report)
}

// Command PUT /api/v3/process/:id/command
func (h *Handler) Command(c *gin.Context) {
	id := c.Param("id")

	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errResp(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	var err error
	switch req.Command {
	case "start":
		err = h.store.Start(id)
	case "stop":
		err = h.store.Stop(id)
	case "restart":
		err = h.store.Restart(id)
	default:
		errResp(c, http.StatusBadRequest, "Unknown command", "Known: start, stop, restart")
		return
	}

	if err != nil {
		errResp(c, http.StatusBadRequest, "Command failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, "OK")
}

func requestToConfig(req *ProcessConfigRequest) *task.Config {
	cfg := &task.Config{
		ID:           req.ID,
		Reference:    req.Reference,
		Options:      req.Options,
		Autostart:    req.Autostart,
		StaleTimeout: req.StaleTimeout,
	}
	for _, io := range req.Input {
		cfg.Input = append(cfg.Input, task.ConfigIO{ID: io.ID, Address: io.Address, Options: io.Options})
	}
	for _, io := range req.Output {
		cfg.Output = append(cfg.Output, task.ConfigIO{ID: io.ID, Address: io.Address, Options: io.Options})
	}
	return cfg
}

func taskToProcessConfig(t *task.Task) *ProcessConfig {
	cfg := &ProcessConfig{
		ID:           t.ID,
		Type:         "ffmpeg",
		Reference:    t.Reference,
		Options:      t.Config.Options,
		Autostart:    t.Config.Autostart,
		StaleTimeout: t.Config.StaleTimeout,
	}
	for _, io := range t.Config.Input {
		cfg.Input = append(cfg.Input, ProcessConfigIO{ID: io.ID, Address: io.Address, Options: io.Options})
	}
	for _, io := range t.Config.Output {
		cfg.Output = append(cfg.Output, ProcessConfigIO{ID: io.ID, Address: io.Address, Options: io.Options})
	}
	return cfg
}

func taskToProcess(t *task.Task) Process {
	return Process{
		ID:        t.ID,
		Type:      "ffmpeg",
		Reference: t.Reference,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Config:    taskToProcessConfig(t),
		State:     taskToState(t),
	}
}

func taskToState(t *task.Task) *ProcessState {
	status := t.Status()

	state := &ProcessState{
		State:   status.State,
		Runtime: int64(status.Duration.Seconds()),
		Memory:  status.Memory,
		CPU:     status.CPU,
		Command: t.Config.CreateCommand(),
		Streams: streamsToAPI(t.Meta()),
	}

	if info, ok := t.MediaInfo(); ok {
		state.Media = &MediaInfo{
			DurationSeconds: info.Duration.Seconds(),
			BitrateKbps:     info.BitRateKbs,
		}
	}

	if prog, ok := t.Progress(); ok {
		p := &Progress{
			TimeSeconds:  prog.Processed.Seconds(),
			TotalSeconds: prog.Total.Seconds(),
			Frame:        prog.Frame,
			Fps:          prog.Fps,
			SizeKB:       prog.SizeKB,
			BitrateKbps:  prog.BitRateKbs,
		}
		if prog.Total > 0 {
			pct := prog.Processed.Seconds() / prog.Total.Seconds() * 100
			p.Percent = &pct
		}
		if size, ok := t.Final(); ok {
			p.FinalSizeKB = &size
		}
		state.Progress = p
	}

	return state
}

func streamsToAPI(meta parse.MetaData) *Streams {
	if meta.Video == nil && meta.Audio == nil {
		return nil
	}
	s := &Streams{}
	if v := meta.Video; v != nil {
		s.Video = &VideoStream{
			Format:      v.Format,
			ColorModel:  v.ColorModel,
			FrameSize:   v.FrameSize,
			Fps:         v.Fps,
			BitrateKbps: v.BitRateKbs,
		}
	}
	if a := meta.Audio; a != nil {
		s.Audio = &AudioStream{
			Format:        a.Format,
			SampleRate:    a.SampleRate,
			ChannelLayout: a.ChannelLayout,
			BitrateKbps:   a.BitRateKbs,
		}
	}
	return s
}
