package commands

import (
	"fmt"

	"github.com/account-manager/backend/internal/client"
	"github.com/account-manager/backend/internal/dashboard"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRecommendCommand(apiURL *string) *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "recommend <category>",
		Short: "Show the best card for a spending category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			recommendation, err := client.New(*apiURL).BestCard(cmd.Context(), args[0], value)
			if err != nil {
				return err
			}

			cmd.Printf("%s for %s on %s\n", recommendation.CardName, dashboard.FormatUSD(recommendation.ExpectedReturn), recommendation.Category)
			cmd.Println(recommendation.Rationale)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "100", "purchase amount")

	return cmd
}
