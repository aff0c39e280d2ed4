package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/financellm/financellm/internal/period"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show net totals",
	}

	cmd.AddCommand(
		newSummaryMonthlyCommand(opts),
		newSummaryCategoriesCommand(opts),
	)

	return cmd
}

func newSummaryMonthlyCommand(opts *rootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Net amount per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			months, err := a.store.MonthlyNet(cmd.Context(), year)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "MONTH\tNET\t")
			for _, m := range months {
				fmt.Fprintf(tw, "%s\t%s\t\n", m.Month, m.Net.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "only this year")

	return cmd
}

func newSummaryCategoriesCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Net amount per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" {
				if _, _, err := period.ParseMonth(month); err != nil {
					return err
				}
			}

			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			cats, err := a.store.CategoryNet(cmd.Context(), month)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "CATEGORY\tNET\t")
			for _, c := range cats {
				fmt.Fprintf(tw, "%s\t%s\t\n", c.Category, c.Net.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "only this month (YYYY-MM)")

	return cmd
}
