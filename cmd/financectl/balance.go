package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/services"
)

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show or update bank balances",
	}
	cmd.AddCommand(balanceShowCmd())
	cmd.AddCommand(balanceSetCmd())
	cmd.AddCommand(balanceAdjustCmd())
	return cmd
}

type balanceLine struct {
	Bank    string  `json:"bank"`
	Key     string  `json:"key"`
	Balance float64 `json:"balance"`
}

type balanceOutput struct {
	Balances []balanceLine           `json:"balances"`
	Total    float64                 `json:"total"`
	Findings []core.BreakdownFinding `json:"findings,omitempty"`
}

func balanceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List all bank balances with their total",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
				balances, err := svc.Balances(ctx)
				if err != nil {
					return err
				}

				lines := make([]balanceLine, 0, len(balances))
				for raw, b := range balances {
					lines = append(lines, balanceLine{
						Bank:    core.CanonicalBankName(raw),
						Key:     core.BankKey(raw),
						Balance: b.Total(),
					})
				}
				sort.Slice(lines, func(i, j int) bool { return lines[i].Key < lines[j].Key })

				return printJSON(balanceOutput{
					Balances: lines,
					Total:    core.TotalBalances(balances),
					Findings: core.CheckBreakdowns(balances),
				})
			})
		},
	}
}

func balanceSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <bank> <amount>",
		Short: "Overwrite a bank's balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
				if err := svc.SetBalance(ctx, args[0], amount, "cli"); err != nil {
					return err
				}
				cmd.Printf("balance for %s set to %.2f\n", core.CanonicalBankName(args[0]), amount)
				return nil
			})
		},
	}
}

func balanceAdjustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <bank> <delta>",
		Short: "Move a bank's balance by a signed amount",
		Example: `  financectl balance adjust الراجحي 250
  financectl balance adjust stc -- -54.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}

			return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
				balance, err := svc.AdjustBalance(ctx, args[0], delta, "cli")
				if err != nil {
					return err
				}
				cmd.Printf("balance for %s is now %.2f\n", core.CanonicalBankName(args[0]), balance)
				return nil
			})
		},
	}
}
