package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/FerasMahmoud/firas-finance-dashboard/internal/core"
	"github.com/FerasMahmoud/firas-finance-dashboard/internal/services"
)

func addCmd() *cobra.Command {
	var (
		bank            string
		amount          float64
		merchant        string
		category        string
		classification  string
		transactionType string
		note            string
		timestamp       string
		adjustBalance   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a transaction to the ledger",
		Example: `  financectl add --bank الراجحي --amount 54.5 --merchant "مطعم البيك" \
      --category طعام --type صرف
  financectl add --bank stc --amount 5000 --type دخل --adjust-balance`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec := core.TransactionRecord{
				Bank:            strings.TrimSpace(bank),
				Amount:          amount,
				Merchant:        strings.TrimSpace(merchant),
				Category:        strings.TrimSpace(category),
				Classification:  strings.TrimSpace(classification),
				TransactionType: strings.TrimSpace(transactionType),
				Note:            strings.TrimSpace(note),
				Confirmed:       true,
			}

			if timestamp != "" {
				ts, err := time.Parse(time.RFC3339, timestamp)
				if err != nil {
					return fmt.Errorf("invalid --timestamp %q: %w", timestamp, err)
				}
				rec.Timestamp = ts
			}

			return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
				saved, err := svc.AddTransaction(ctx, rec, "cli")
				if err != nil {
					return err
				}

				// Income raises the bank balance, expenses lower it.
				// Transfers and unclassified rows leave it alone.
				if adjustBalance {
					if delta := balanceDelta(saved); delta != 0 {
						balance, err := svc.AdjustBalance(ctx, saved.Bank, delta, "cli")
						if err != nil {
							return fmt.Errorf("transaction saved but balance update failed: %w", err)
						}
						cmd.Printf("balance for %s is now %.2f\n", core.CanonicalBankName(saved.Bank), balance)
					}
				}

				return printJSON(saved)
			})
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank the transaction belongs to (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount (required)")
	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant or counterparty")
	cmd.Flags().StringVar(&category, "category", "", "spending category")
	cmd.Flags().StringVar(&classification, "classification", "", "personal or business classification")
	cmd.Flags().StringVar(&transactionType, "type", "", "transaction type tag (دخل, صرف, تحويل)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "RFC3339 timestamp (default: now)")
	cmd.Flags().BoolVar(&adjustBalance, "adjust-balance", false, "also move the bank balance by the transaction amount")
	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func balanceDelta(rec core.TransactionRecord) float64 {
	switch core.Classify(rec) {
	case core.KindIncome:
		return rec.Magnitude()
	case core.KindExpense:
		return -rec.Magnitude()
	default:
		return 0
	}
}
