package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/df07/go-raykernel/internal/logger"
	"github.com/df07/go-raykernel/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory of .yaml scene files")
	debug := flag.Bool("debug", false, "Log every request")
	logFile := flag.String("log-file", "", "Also write logs to this file")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	logger.Init(level, *logFile)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("web server config",
		zap.Int("port", *port),
		zap.String("scenes", *sceneDir),
		zap.String("log_file", *logFile))
	if _, err := os.Stat(*sceneDir); err != nil {
		logger.Warn("scene directory unavailable, serving built-in scenes only",
			zap.String("scenes", *sceneDir), zap.Error(err))
	}

	webServer := server.NewServer(*port, *sceneDir, logger.Log)
	if err := webServer.Start(ctx); err != nil {
		logger.Error("web server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("web server shut down")
}
