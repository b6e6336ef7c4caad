package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-drift/postboard/pkg/log"
	"github.com/go-drift/postboard/pkg/postsapi"
)

type serveFlags struct {
	Dir     string        `arg:"--dir" help:"directory holding postboard.yaml (default: project root)"`
	Listen  string        `arg:"--listen" help:"listen address (default from config)"`
	Seed    int           `arg:"--seed" help:"number of seeded posts, -1 uses the config value"`
	Latency time.Duration `arg:"--latency" help:"delay every response, e.g. 800ms"`
	Data    string        `arg:"--data" help:"zstd snapshot file to load on start and save on exit"`
}

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve a local posts API",
		Long: `Serve a JSONPlaceholder-compatible posts API.

GET /posts?_limit=N lists posts, GET /posts/{id} returns one, and
POST /posts creates one. Created posts are kept in memory and appear in
later listings. With --data the posts are loaded from and saved to a
zstd-compressed snapshot.`,
		Usage: "postboard serve [--listen ADDR] [--seed N] [--latency D] [--data FILE]",
		Flags: func() any { return &serveFlags{Seed: -1} },
		Run:   runServe,
	})
}

func runServe(args []string) error {
	flags := serveFlags{Seed: -1}
	if err := parseFlags("postboard serve", &flags, args); err != nil {
		return err
	}
	cfg, err := resolveConfig(flags.Dir)
	if err != nil {
		return err
	}
	if flags.Listen != "" {
		cfg.Listen = flags.Listen
	}
	if flags.Seed >= 0 {
		cfg.Seed = flags.Seed
	}
	if flags.Data != "" {
		cfg.DataFile = flags.Data
	}

	store, err := openStore(cfg.Seed, cfg.DataFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := postsapi.NewHandler(store, postsapi.Options{Latency: flags.Latency})
	serveErr := postsapi.Serve(ctx, cfg.Listen, handler)

	if cfg.DataFile != "" {
		if err := store.SaveFile(cfg.DataFile); err != nil {
			return errors.Join(serveErr, fmt.Errorf("save %s: %w", cfg.DataFile, err))
		}
		log.I.F("saved %d posts to %s", store.Len(), cfg.DataFile)
	}
	return serveErr
}

// openStore seeds a store, then overlays the snapshot at path if it exists.
func openStore(seed int, path string) (*postsapi.Store, error) {
	store := postsapi.NewSeededStore(seed)
	if path == "" {
		return store, nil
	}
	err := store.LoadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.I.F("no snapshot at %s, starting with %d seeded posts", path, seed)
	case err != nil:
		return nil, fmt.Errorf("load %s: %w", path, err)
	default:
		log.I.F("loaded %s, %d posts", path, store.Len())
	}
	return store, nil
}
