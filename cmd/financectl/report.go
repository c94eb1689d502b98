package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/services"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "report [daily|weekly|monthly|comparison]",
		Short:     "Build a spending report over the full ledger",
		Long:      "Builds the requested report and prints it as JSON. The comparison report sets the current month's spending against the previous one, rolling over the year boundary in January.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"daily", "weekly", "monthly", "comparison"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := core.ParseReportKind(args[0])
			if err != nil {
				return err
			}

			return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
				records, err := svc.Transactions(ctx)
				if err != nil {
					return err
				}

				report, err := core.BuildReport(kind, records, time.Now())
				if err != nil {
					return err
				}
				return printJSON(report)
			})
		},
	}
}
