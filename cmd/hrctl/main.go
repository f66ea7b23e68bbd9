package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-hrdash/internal/app"
	"go-hrdash/internal/cli"
	"go-hrdash/internal/config"
	"go-hrdash/internal/shared/apperror"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// hrctl output goes to the terminal; keep zap quiet unless asked
	if os.Getenv("HRCTL_VERBOSE") != "" {
		if logger, err := app.NewLogger(cfg); err == nil {
			defer logger.Sync()
		}
	}
	apperror.Init()

	if err := cli.RootCmd(cli.DefaultOpener(cfg), time.Now).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
