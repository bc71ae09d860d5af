package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyup-dev/tallyup/internal/model"
	"github.com/tallyup-dev/tallyup/internal/report"
)

func newReportCommand() *cobra.Command {
	var dataDir string
	var month string
	var view string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show totals and rollups for the stored ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dataDir)
			if err != nil {
				return err
			}
			txns, err := e.ledger.Load()
			if err != nil {
				return err
			}
			runReport(txns, month, report.View(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "dir", ".", "data directory")
	cmd.Flags().StringVar(&month, "month", "", "limit to a month (YYYY-MM)")
	cmd.Flags().StringVar(&view, "view", "all", "view: all, expense or income")

	return cmd
}

func runReport(txns []model.Transaction, month string, view report.View) {
	inMonth := report.FilterMonth(txns, month)
	filtered := report.FilterView(inMonth, view)
	totals := report.ComputeTotals(inMonth)

	fmt.Printf("Transactions: %d\n", len(inMonth))
	fmt.Printf("Income:  %s\n", totals.Income.StringFixed(2))
	fmt.Printf("Expense: %s\n", totals.Expense.StringFixed(2))
	fmt.Printf("Net:     %s\n", totals.Net.StringFixed(2))

	if byCat := report.ByCategory(filtered); len(byCat) > 0 {
		fmt.Println("\nBy category:")
		for _, row := range byCat {
			fmt.Printf("  %-20s %12s\n", row.Name, row.Amount.StringFixed(2))
		}
	}

	if byAcc := report.ByAccount(inMonth); len(byAcc) > 0 {
		fmt.Println("\nBy account:")
		for _, row := range byAcc {
			fmt.Printf("  %-20s %12s\n", row.Name, row.Amount.StringFixed(2))
		}
	}

	if top := report.TopMerchants(filtered, view); len(top) > 0 {
		fmt.Println("\nTop merchants:")
		for _, row := range top {
			fmt.Printf("  %-20s %12s\n", row.Name, row.Amount.StringFixed(2))
		}
	}

	if monthly := report.Monthly(txns); month == "" && len(monthly) > 0 {
		fmt.Println("\nMonthly:")
		for _, m := range monthly {
			fmt.Printf("  %s  income %12s  expense %12s  net %12s\n",
				m.Month, m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Net.StringFixed(2))
		}
	}
}
