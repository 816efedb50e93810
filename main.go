package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/sozluk/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// Cancel on Ctrl+C or SIGTERM so serve can shut down gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		logrus.WithError(err).Error("Command failed")
		stop()
		os.Exit(1)
	}
}
