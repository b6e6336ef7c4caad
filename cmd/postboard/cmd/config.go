package cmd

import (
	"fmt"

	"github.com/go-drift/postboard/cmd/postboard/internal/config"
)

type configFlags struct {
	Dir string `arg:"--dir" help:"directory holding postboard.yaml (default: project root)"`
}

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show resolved configuration",
		Long: `Show the configuration postboard would use.

Values come from postboard.yaml in the project root (or the XDG config
directory), then POSTBOARD_* environment variables, then defaults.`,
		Usage: "postboard config [--dir DIR]",
		Flags: func() any { return &configFlags{} },
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	var flags configFlags
	if err := parseFlags("postboard config", &flags, args); err != nil {
		return err
	}
	cfg, err := resolveConfig(flags.Dir)
	if err != nil {
		return err
	}
	printResolved(cfg)
	return nil
}

func printResolved(cfg *config.Resolved) {
	source := cfg.ConfigFile
	if source == "" {
		source = "(none)"
	}
	fmt.Fprintf(stdout, "Project: %s (%s)\n", cfg.AppName, cfg.AppID)
	fmt.Fprintf(stdout, "Config:  %s\n", source)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "API:")
	fmt.Fprintf(stdout, "  %-14s %s\n", "base_url:", cfg.BaseURL)
	fmt.Fprintf(stdout, "  %-14s %s\n", "timeout:", cfg.Timeout)
	fmt.Fprintf(stdout, "  %-14s %d\n", "initial_limit:", cfg.InitialLimit)
	fmt.Fprintf(stdout, "  %-14s %d\n", "refresh_limit:", cfg.RefreshLimit)
	fmt.Fprintln(stdout, "Serve:")
	fmt.Fprintf(stdout, "  %-14s %s\n", "listen:", cfg.Listen)
	fmt.Fprintf(stdout, "  %-14s %d\n", "seed:", cfg.Seed)
	fmt.Fprintf(stdout, "  %-14s %s\n", "data:", cfg.DataFile)
	fmt.Fprintln(stdout, "Log:")
	fmt.Fprintf(stdout, "  %-14s %s\n", "level:", cfg.LogLevel)
}
