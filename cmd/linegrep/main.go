package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/a2y-d5l/linegrep/internal/config"
	"github.com/a2y-d5l/linegrep/internal/logger"
	"github.com/a2y-d5l/linegrep/internal/scan"
	"go.uber.org/zap"
)

const (
	exitOK          = 0
	exitBadArgs     = 1
	exitOutput      = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	errLog := log.New(stderr, "linegrep: ", 0)

	cfg, err := config.ParseFlags(stdout, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		// User-supplied flags are invalid → exit 1
		errLog.Print(err)
		return exitBadArgs
	}

	zl, err := logger.New(cfg.Verbose)
	if err != nil {
		errLog.Print(err)
		return exitBadArgs
	}
	defer func() { _ = zl.Sync() }()

	zl.Debug("config parsed",
		zap.String("pattern", cfg.Pattern),
		zap.Strings("files", cfg.Files),
		zap.Bool("line_number", cfg.ShowLineNumber),
		zap.Bool("file_name_only", cfg.FileNameOnly),
		zap.Bool("case_insensitive", cfg.CaseInsensitive),
		zap.Bool("invert", cfg.InvertMode),
		zap.Bool("entire_line", cfg.EntireLineOnly),
		zap.Int("max_procs", cfg.MaxProcs),
		zap.String("config_file", cfg.ConfigFile),
	)

	if err := scan.Run(ctx, stdout, cfg, zl); err != nil {
		errLog.Print(err)
		if ctx.Err() != nil {
			return exitInterrupted
		}
		// Output failure → exit 2
		return exitOutput
	}
	return exitOK
}
