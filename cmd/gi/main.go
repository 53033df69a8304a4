// Command gi adds .gitignore templates from gitignore.io to a project.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/gi/cmd"
	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/internal/iocache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute(ctx)

	stop()
	iocache.CloseCaching()
	cmd.SyncLogger()
	if err != nil {
		contract.LogFatal("gi failed", err)
	}
}
