package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/services"
)

func validateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Audit the ledger for data quality problems",
		Long: `Walks the full ledger and reports records the classifier cannot place,
missing or unusable timestamps and amounts, banks outside the known alias
vocabulary, and balance breakdowns that disagree with their stated totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
				report, err := svc.Audit(ctx)
				if err != nil {
					return err
				}
				if err := printJSON(report); err != nil {
					return err
				}
				if strict && !report.Clean() {
					return errors.New("ledger audit found problems")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the audit finds problems")
	return cmd
}
