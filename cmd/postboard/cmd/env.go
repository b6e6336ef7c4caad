package cmd

import "github.com/go-drift/postboard/cmd/postboard/internal/config"

func init() {
	RegisterCommand(&Command{
		Name:  "env",
		Short: "List environment overrides",
		Long: `List the POSTBOARD_* environment variables.

Set variables override postboard.yaml. Flags override both.`,
		Usage: "postboard env",
		Run: func(args []string) error {
			config.PrintUsage(stdout)
			return nil
		},
	})
}
