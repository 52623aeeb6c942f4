package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/faridridwanto/blade-clone/internal/config"
	blademcp "github.com/faridridwanto/blade-clone/internal/mcp"
)

func main() {
	seed := flag.Int64("seed", 0, "default shuffle seed for start_game (0 = clock)")
	configPath := flag.String("config", "", "path to blade.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Match.Seed = *seed
	}

	h := blademcp.NewHandler(blademcp.SessionConfig{
		Seed:          cfg.Match.Seed,
		MaxTurns:      cfg.Match.MaxTurns,
		MaxRejections: cfg.Match.MaxRejections,
	})
	defer h.Close()

	s := server.NewMCPServer("blade", "1.0.0")
	h.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
