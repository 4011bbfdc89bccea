package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories of the board",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), globalConfig.HTTPTimeout)
	defer cancel()

	categories, err := globalService.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPINNED\tDESCRIPTION")
	for _, c := range categories {
		pinned := "-"
		if c.PinPost != nil {
			pinned = fmt.Sprintf("%d", c.PinPost.ID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Title, pinned, c.Description)
	}
	return w.Flush()
}
