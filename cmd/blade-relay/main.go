package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/faridridwanto/blade-clone/internal/config"
	"github.com/faridridwanto/blade-clone/internal/web"
)

func main() {
	addr := flag.String("addr", "", "listen address (default from config, else :8080)")
	configPath := flag.String("config", "", "path to blade.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Relay.Addr = *addr
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv := web.NewServer(logger)
	if err := srv.ListenAndServe(cfg.Relay.Addr); err != nil {
		logger.Error("relay stopped", zap.Error(err))
		os.Exit(1)
	}
}
