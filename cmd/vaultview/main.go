package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/karandattani71/vaultview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override vaultview config path (optional)")
	apiBind := flag.String("api", "", "vault catalog address host:port (optional)")
	pollSeconds := flag.Int("poll", 0, "background revalidation interval in seconds (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, APIBind: *apiBind}
	if poll := *pollSeconds; poll > 0 {
		opts.PollSeconds = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "vaultview: %v\n", err)
		return 1
	}
	return 0
}
