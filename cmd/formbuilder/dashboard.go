package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/dashboard"
	"github.com/goliatone/go-formbuilder/pkg/gateway"
)

func newDashboardCmd(a *app) *cobra.Command {
	var remove string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print form and submission totals for the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := gateway.New(a.cfg.APIURL, gateway.WithLogger(a.logger))
			if err != nil {
				return err
			}
			board := dashboard.New(client, dashboard.WithLogger(a.logger))
			summary, err := board.Load(ctx)
			if err != nil {
				return err
			}
			if remove != "" {
				if err := board.Delete(ctx, remove); err != nil {
					return err
				}
				summary = board.Summary()
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n\n", remove)
			}
			return printSummary(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVar(&remove, "delete", "", "delete the form with this id before printing")
	return cmd
}

func printSummary(w io.Writer, summary dashboard.Summary) error {
	fmt.Fprintf(w, "Total forms:        %d\n", summary.TotalForms)
	fmt.Fprintf(w, "Total submissions:  %d\n", summary.TotalSubmissions)
	fmt.Fprintf(w, "Submissions today:  %d\n\n", summary.SubmissionsToday)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FORM ID\tNAME\tSUBMISSIONS\tCREATED")
	for _, row := range summary.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", row.FormID, row.FormName, row.TotalSubmissions, row.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}
