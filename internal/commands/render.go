package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"gopkg.in/yaml.v3"
)

func validFormat(format string) bool {
	switch format {
	case "table", "json", "yaml":
		return true
	}
	return false
}

// render writes report to w in the requested format.
func render(w io.Writer, report any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		return renderTable(w, report)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderTable(w io.Writer, report any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	switch r := report.(type) {
	case *domain.TrialBalance:
		fmt.Fprintln(tw, "NUMBER\tACCOUNT\tDEBIT\tCREDIT\t")
		for _, row := range r.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.AccountNumber, row.AccountName, blankZero(row.Debit), blankZero(row.Credit))
		}
		fmt.Fprintf(tw, "\tTotal\t%s\t%s\t\n", r.TotalDebit.Format(), r.TotalCredit.Format())
		if !r.Balanced {
			fmt.Fprintf(tw, "\tDifference\t%s\t\t\n", r.Difference.Format())
		}
	case *domain.IncomeStatement:
		section(tw, "Revenue", r.RevenueAccounts, r.Revenue)
		section(tw, "Expenses", r.ExpenseAccounts, r.Expenses)
		fmt.Fprintf(tw, "\tNet income\t%s\t\n", r.NetIncome.Format())
	case *domain.BalanceSheet:
		section(tw, "Assets", r.AssetAccounts, r.Assets)
		section(tw, "Liabilities", r.LiabilityAccounts, r.Liabilities)
		section(tw, "Equity", r.EquityAccounts, r.Equity)
		fmt.Fprintf(tw, "\tRetained earnings\t%s\t\n", r.RetainedEarnings.Format())
		fmt.Fprintf(tw, "\tTotal equity\t%s\t\n", r.EquityTotal.Format())
		fmt.Fprintf(tw, "\tLiabilities and equity\t%s\t\n", r.LiabilitiesAndEquity.Format())
	case *domain.RetainedEarningsStatement:
		fmt.Fprintf(tw, "Opening\t%s\t\n", r.Opening.Format())
		fmt.Fprintf(tw, "Net income\t%s\t\n", r.NetIncome.Format())
		fmt.Fprintf(tw, "Dividends\t%s\t\n", r.Dividends.Neg().Format())
		fmt.Fprintf(tw, "Ending\t%s\t\n", r.Ending.Format())
	default:
		return fmt.Errorf("no table layout for %T", report)
	}
	return tw.Flush()
}

func section(tw io.Writer, title string, items []domain.AccountAmount, total domain.Money) {
	fmt.Fprintf(tw, "%s\t\t\t\n", title)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", it.Number, it.Name, it.Amount.Format())
	}
	fmt.Fprintf(tw, "\tTotal %s\t%s\t\n", title, total.Format())
}

func blankZero(m domain.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.Format()
}
