package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var apiURL string

	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Terminal client for the account manager API",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "base URL of the backend API")

	rootCmd.AddCommand(newViewCommand(&apiURL))
	rootCmd.AddCommand(newImportCommand(&apiURL))
	rootCmd.AddCommand(newRecommendCommand(&apiURL))

	return rootCmd
}
