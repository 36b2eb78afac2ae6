package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.lost.host/meutraa/ycore/internal/config"
	"git.lost.host/meutraa/ycore/internal/logging"
	"git.lost.host/meutraa/ycore/internal/parser"
	"git.lost.host/meutraa/ycore/internal/score"
	"git.lost.host/meutraa/ycore/internal/theme"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if nil != err {
		return ""
	}
	return filepath.Join(dir, "ycore")
}

func run(args []string) error {
	cfg, err := config.Load(args, configDir())
	if nil != err {
		return err
	}

	// The terminal belongs to the renderer, so logs go to a file.
	logFile, err := logging.Open(cfg.LogDir, time.Now())
	if nil != err {
		return err
	}
	defer logFile.Close()
	log := logging.New(logFile, cfg.LogLevel)

	// Ensure our Default implementations are used as interfaces
	p := &Program{
		Config: cfg,
		Log:    log,
		Parser: &parser.DefaultParser{},
		Scorer: &score.DefaultScorer{Path: cfg.Database, Log: log},
		Theme:  &theme.DefaultTheme{},
		Out:    os.Stdout,
	}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("command", cfg.Command).Str("chart", p.chartFile).Msg("starting")
	switch cfg.Command {
	case "play":
		return p.Play(ctx)
	case "replay":
		return p.Replay(ctx)
	case "scores":
		return p.Scores(ctx)
	case "charts":
		return p.Charts()
	}
	return fmt.Errorf("unknown command %v", cfg.Command)
}
