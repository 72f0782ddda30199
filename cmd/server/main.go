// Copyright (c) 2026 Onionware. All rights reserved.
// Use of this source code is governed by the MIT License.
//
// FFmpeg.NET - FFmpeg 输出解析引擎与转码进程管理

package main

import (
	"flag"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/onionware-github/FFmpeg.NET/internal/api"
	"github.com/onionware-github/FFmpeg.NET/internal/config"
	"github.com/onionware-github/FFmpeg.NET/internal/ffmpeg"
	"github.com/onionware-github/FFmpeg.NET/internal/logger"
	"github.com/onionware-github/FFmpeg.NET/internal/task"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	bind := flag.String("bind", "", "Bind address (overrides config)")
	ffmpegBin := flag.String("ffmpeg", "", "FFmpeg binary path (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Load config: %v", err)
		}
	}

	bindAddr := cfg.Server.Bind
	if *bind != "" {
		bindAddr = *bind
	}
	ffmpegPath := cfg.FFmpeg.Path
	if *ffmpegBin != "" {
		ffmpegPath = *ffmpegBin
	}

	logger := logger.New("ffmpeg.net")

	validatorIn, err := ffmpeg.NewValidator(cfg.FFmpeg.AllowInput, cfg.FFmpeg.BlockInput)
	if err != nil {
		log.Fatalf("Input validator: %v", err)
	}
	validatorOut, err := ffmpeg.NewValidator(cfg.FFmpeg.AllowOutput, cfg.FFmpeg.BlockOutput)
	if err != nil {
		log.Fatalf("Output validator: %v", err)
	}

	ff, err := ffmpeg.New(ffmpeg.Config{
		Binary:          ffmpegPath,
		MaxLogLines:     cfg.FFmpeg.MaxLogLines,
		ProbeTimeout:    time.Duration(cfg.FFmpeg.ProbeTimeoutSeconds) * time.Second,
		ValidatorInput:  validatorIn,
		ValidatorOutput: validatorOut,
	})
	if err != nil {
		log.Fatalf("FFmpeg init: %v", err)
	}

	store := task.NewStore(ff, logger)
	handler := api.NewHandler(store, ff)

	r := gin.Default()
	r.Use(gin.Recovery(), cors.Default())

	v3 := r.Group("/api/v3")
	{
		v3.GET("/version", handler.Version)
		v3.POST("/probe", handler.Probe)

		v3.GET("/process", handler.ListProcesses)
		v3.POST("/process", handler.AddProcess)
		v3.GET("/process/:id", handler.GetProcess)
		v3.PUT("/process/:id", handler.UpdateProcess)
		v3.DELETE("/process/:id", handler.DeleteProcess)
		v3.GET("/process/:id/config", handler.GetConfig)
		v3.GET("/process/:id/state", handler.GetState)
		v3.GET("/process/:id/report", handler.GetReport)
		v3.PUT("/process/:id/command", handler.Command)
	}

	log.Printf("FFmpeg %s, listening on %s", ff.Version().Version, bindAddr)
	if err := r.Run(bindAddr); err != nil {
		log.Fatalf("Server: %v", err)
	}
}
