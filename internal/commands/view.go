package commands

import (
	"fmt"

	"github.com/account-manager/backend/internal/client"
	"github.com/account-manager/backend/internal/dashboard"
	"github.com/spf13/cobra"
)

func newViewCommand(apiURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator := dashboard.New(client.New(*apiURL))
			err := orchestrator.Reload(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading dashboard: %w", err)
			}

			render(cmd, orchestrator.Snapshot())
			return nil
		},
	}
}

func render(cmd *cobra.Command, snapshot dashboard.Snapshot) {
	cmd.Printf("Cash           %s\n", dashboard.FormatUSD(snapshot.Summary.TotalCash))
	cmd.Printf("Investments    %s\n", dashboard.FormatUSD(snapshot.Summary.TotalInvestments))
	cmd.Printf("Card debt      %s\n", dashboard.FormatUSD(snapshot.Summary.TotalCardDebt))
	cmd.Printf("Upcoming dues  %d\n", snapshot.Summary.UpcomingDueCount)

	if len(snapshot.Accounts) > 0 {
		cmd.Println("\nAccounts")
		for _, account := range snapshot.Accounts {
			cmd.Printf("  %-30s %-12s %s\n", account.Name, account.AccountType, dashboard.FormatUSD(account.CurrentBalance))
		}
	}

	if len(snapshot.DueDates) > 0 {
		cmd.Println("\nDue dates")
		for _, due := range snapshot.DueDates {
			cmd.Printf("  %-30s %s  in %d days  min %s\n", due.CardName, due.DueDate, due.DaysRemaining, dashboard.FormatUSD(due.MinPaymentDue))
		}
	}
}
