package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/credkeeper/internal/cli"
	"github.com/dmitrijs2005/credkeeper/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(args)
	if err != nil {
		log.Printf("%v", err)
		return 2
	}

	app, err := cli.NewApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Printf("%v", err)
		return cli.ExitCode(err)
	}

	if err := app.Run(ctx, args); err != nil {
		code := cli.ExitCode(err)
		if code > 1 {
			log.Printf("%v", err)
		}
		return code
	}
	return 0
}
