package commands

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	from      string
	to        string
	opening   string
	dividends string
	output    string
}

func newReportCommand(cfg func() *config.Config, d deps) *cobra.Command {
	var flags reportFlags

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print a financial statement",
	}
	reportCmd.PersistentFlags().StringVar(&flags.from, "from", "", "start date, YYYY-MM-DD")
	reportCmd.PersistentFlags().StringVar(&flags.to, "to", "", "end date, YYYY-MM-DD (inclusive)")
	reportCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "table", "output format: table, json or yaml")

	type generator func(cmd *cobra.Command, svc portssvc.ReportingService, r domain.DateRange) (any, error)
	add := func(use, short string, gen generator) *cobra.Command {
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if !validFormat(flags.output) {
					return fmt.Errorf("unknown output format %q", flags.output)
				}
				r, err := domain.ParseDateRange(flags.from, flags.to)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using an open range\n", err)
				}

				svc, release, err := d.reporting(cmd.Context(), cfg())
				if err != nil {
					return err
				}
				defer release()

				report, err := gen(cmd, svc, r)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), report, flags.output)
			},
		}
		reportCmd.AddCommand(c)
		return c
	}

	add("trial-balance", "Every account's ending balance in debit and credit columns",
		func(cmd *cobra.Command, svc portssvc.ReportingService, r domain.DateRange) (any, error) {
			tb, err := svc.TrialBalance(cmd.Context(), r)
			if err == nil && !tb.Balanced {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: trial balance is off by %s\n", tb.Difference)
			}
			return tb, err
		})
	add("income-statement", "Revenue, expenses and net income",
		func(cmd *cobra.Command, svc portssvc.ReportingService, r domain.DateRange) (any, error) {
			return svc.IncomeStatement(cmd.Context(), r)
		})

	bs := add("balance-sheet", "Assets against liabilities and equity",
		func(cmd *cobra.Command, svc portssvc.ReportingService, r domain.DateRange) (any, error) {
			opening, err := parseAmount("opening", flags.opening)
			if err != nil {
				return nil, err
			}
			return svc.BalanceSheet(cmd.Context(), r, opening)
		})
	bs.Flags().StringVar(&flags.opening, "opening", "", "retained earnings carried into the period")

	re := add("retained-earnings", "Retained earnings rolled forward",
		func(cmd *cobra.Command, svc portssvc.ReportingService, r domain.DateRange) (any, error) {
			opening, err := parseAmount("opening", flags.opening)
			if err != nil {
				return nil, err
			}
			dividends, err := parseAmount("dividends", flags.dividends)
			if err != nil {
				return nil, err
			}
			return svc.RetainedEarnings(cmd.Context(), r, opening, dividends)
		})
	re.Flags().StringVar(&flags.opening, "opening", "", "opening retained earnings")
	re.Flags().StringVar(&flags.dividends, "dividends", "", "dividends declared in the period")

	return reportCmd
}

// parseAmount treats an empty flag as zero and rejects malformed amounts.
func parseAmount(name, value string) (domain.Money, error) {
	if value == "" {
		return domain.Money{}, nil
	}
	m, err := domain.ParseMoneyStrict(value)
	if err != nil {
		return domain.Money{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return m, nil
}
