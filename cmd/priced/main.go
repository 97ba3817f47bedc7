package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"priced/internal/common/fsutil"
	"priced/internal/config"
	"priced/internal/httpapi"
	"priced/internal/predictor"
)

func main() {
	// Flags with environment variable defaults. PORT keeps compatibility
	// with platform-style deployments; PRICED_ADDR wins when both are set.
	defaultAddr := ":5000"
	if v := os.Getenv("PORT"); v != "" {
		defaultAddr = ":" + v
	}
	if v := os.Getenv("PRICED_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultModel := "./models/car_price.json"
	if v := os.Getenv("PRICED_MODEL"); v != "" {
		defaultModel = v
	}

	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :5000")
	modelPath := flag.String("model", defaultModel, "Path to the trained model artifact")
	cfgPath := flag.String("config", "", "Optional config file (yaml/json/toml)")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	flag.Parse()

	var cfg config.Config
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			errLogger := zerolog.New(os.Stderr)
			errLogger.Fatal().Err(err).Str("config", *cfgPath).Msg("failed to load config")
		}
	}
	// Explicitly set flags override the config file; unset config fields
	// take the flag defaults.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if cfg.Addr == "" || set["addr"] {
		cfg.Addr = *addr
	}
	if cfg.ModelPath == "" || set["model"] {
		cfg.ModelPath = *modelPath
	}
	if cfg.Log.Level == "" || set["log-level"] {
		cfg.Log.Level = *logLevel
	}

	logger := newLogger(cfg.Log)

	path, err := fsutil.ExpandHome(cfg.ModelPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolve model path")
	}
	// Startup is fail-fast: no usable artifact, no server.
	pred, err := predictor.Load(path, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("artifact", path).Msg("failed to load price model")
	}

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(!cfg.CORS.Disabled, cfg.CORS.Origins, nil, nil)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpapi.NewMux(pred),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("artifact", path).Msg("priced listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 50
		}
		maxBackups := cfg.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}
		w = zerolog.MultiLevelWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		})
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
