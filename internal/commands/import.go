package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/account-manager/backend/internal/client"
	"github.com/account-manager/backend/internal/dashboard"
	"github.com/account-manager/backend/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCommand(apiURL *string) *cobra.Command {
	var importType string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV file of balances or transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			orchestrator := dashboard.New(client.New(*apiURL))
			err = orchestrator.ImportCSV(cmd.Context(), file, filepath.Base(args[0]), importType)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}

			cmd.Println("Import submitted.")
			return nil
		},
	}

	cmd.Flags().StringVar(&importType, "type", importer.TypeBalances, "import type: balances or transactions")

	return cmd
}
