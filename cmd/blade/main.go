package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/faridridwanto/blade-clone/internal/bot"
	"github.com/faridridwanto/blade-clone/internal/config"
	"github.com/faridridwanto/blade-clone/internal/game"
	"github.com/faridridwanto/blade-clone/internal/log"
	"github.com/faridridwanto/blade-clone/internal/match"
	bladenet "github.com/faridridwanto/blade-clone/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "join":
		err = runJoin(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  blade play [--seed N] [--log FILE] [--config FILE]")
	fmt.Println("  blade join [--url URL] [--seed N] [--log FILE] [--config FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play against the CPU in this terminal")
	fmt.Println("  join    Find an opponent through the relay and play online")
}

// setup loads the config, applies flag overrides and opens the event log.
type setup struct {
	cfg    config.File
	logger *zap.Logger
	events log.EventLogger
	close  func()
}

func newSetup(configPath string, seed int64, logFile string) (*setup, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		cfg.Match.Seed = seed
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return nil, err
	}
	s := &setup{cfg: cfg, logger: logger, events: log.NewMemoryLogger(), close: func() { logger.Sync() }}

	if cfg.Log.File != "" {
		f, err := os.Create(cfg.Log.File)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		s.events = log.NewTextLogger(f)
		s.close = func() {
			f.Close()
			logger.Sync()
		}
	}
	return s, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Int64("seed", 0, "shuffle seed (0 = from config, else clock)")
	logFile := fs.String("log", "", "write the event log to FILE")
	configPath := fs.String("config", "", "path to blade.yaml")
	fs.Parse(args)

	s, err := newSetup(*configPath, *seed, *logFile)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := signalContext()
	defer cancel()

	engine := game.NewSeeded(s.cfg.Match.Seed)
	human := bladenet.NewTerminalController(os.Stdin, os.Stdout)
	m := match.New(match.Config{
		Logger:        s.events,
		Engine:        engine,
		MaxTurns:      s.cfg.Match.MaxTurns,
		MaxRejections: s.cfg.Match.MaxRejections,
	}, human, bot.NewController(engine.Rand()))

	s.logger.Debug("match started", zap.Int64("seed", s.cfg.Match.Seed))
	winner, err := m.Run(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Println("\nGame abandoned.")
			return nil
		}
		return err
	}
	s.logger.Debug("match finished", zap.Int("winner", winner), zap.String("result", m.Result))
	human.ShowResult(winner == 0, m.Result)
	return nil
}

func runJoin(args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	url := fs.String("url", "", "relay websocket URL (default from config)")
	seed := fs.Int64("seed", 0, "shuffle seed used if this side deals")
	logFile := fs.String("log", "", "write the event log to FILE")
	configPath := fs.String("config", "", "path to blade.yaml")
	fs.Parse(args)

	s, err := newSetup(*configPath, *seed, *logFile)
	if err != nil {
		return err
	}
	defer s.close()
	if *url != "" {
		s.cfg.Relay.URL = *url
	}

	ctx, cancel := signalContext()
	defer cancel()

	sess, err := bladenet.Dial(ctx, s.cfg.Relay.URL)
	if err != nil {
		return err
	}
	defer sess.Close()
	s.logger.Info("connected to relay", zap.String("url", s.cfg.Relay.URL), zap.String("conn_id", sess.ConnectionID))

	fmt.Println("Waiting for an opponent...")
	if err := sess.FindMatch(ctx); err != nil {
		return err
	}
	s.logger.Info("match found", zap.String("session_id", sess.SessionID), zap.Bool("player_1", sess.IsPlayer1))

	human := bladenet.NewTerminalController(os.Stdin, os.Stdout)
	p := &bladenet.Peer{
		Session:       sess,
		Local:         human,
		Engine:        game.NewSeeded(s.cfg.Match.Seed),
		Logger:        s.events,
		MaxRejections: s.cfg.Match.MaxRejections,
	}
	out, err := p.PlayOnline(ctx)
	if err != nil {
		return err
	}
	human.ShowResult(out.Winner == 0, out.Result)
	return nil
}
