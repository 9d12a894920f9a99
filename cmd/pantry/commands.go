package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pantry/internal/export"
	"pantry/internal/model"
	"pantry/internal/notify"
	"pantry/internal/query"
	"pantry/internal/service"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var in model.RecordInput
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item",
		Example: `  pantry add Milk --qty 2 --category Dairy --expires 2024-06-04
  pantry add "Basmati rice" --purchased 2024-05-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			rec, err := opts.app.Records.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s (%s)\n", rec.Name, rec.ID)
			if days, ok := notify.ShouldAlert(*rec, opts.app.Now()); ok {
				fmt.Fprintln(out, notify.NewAlert(*rec, days).Toast())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Qty, "qty", "", "Quantity (default 1)")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category (default Other)")
	cmd.Flags().StringVar(&in.PurchaseDate, "purchased", "", "Purchase date YYYY-MM-DD")
	cmd.Flags().StringVar(&in.ExpiryDate, "expires", "", "Expiry date YYYY-MM-DD")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var text, filter, sortMode string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show items with their freshness",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := opts.app.Records.View(cmd.Context(), query.Query{
				Text:   text,
				Filter: query.ParseFilter(filter),
				Sort:   query.ParseSort(sortMode),
			})
			return renderView(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&text, "search", "q", "", "Match name or category")
	cmd.Flags().StringVar(&filter, "filter", "all", "all, near, expired or consumed")
	cmd.Flags().StringVar(&sortMode, "sort", "soonest", "soonest, newest or name")
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var name, qty, category, purchased, expires string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an item's fields",
		Long: `Only the flags given are changed. An empty or invalid name, quantity or
category keeps the old value; an empty date clears it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.RecordPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("qty") {
				patch.Qty = &qty
			}
			if flags.Changed("category") {
				patch.Category = &category
			}
			if flags.Changed("purchased") {
				patch.PurchaseDate = &purchased
			}
			if flags.Changed("expires") {
				patch.ExpiryDate = &expires
			}
			rec, err := opts.app.Records.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", rec.Name, rec.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&qty, "qty", "", "Quantity")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&purchased, "purchased", "", "Purchase date YYYY-MM-DD")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiry date YYYY-MM-DD")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark an item consumed, or undo it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := opts.app.Records.ToggleConsumed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "not consumed"
			if rec.Consumed {
				state = "consumed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", rec.Name, state)
			return nil
		},
	}
}

func newRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.app.Records.Remove(cmd.Context(), args[0])
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string
	var share bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all items as CSV",
		Long: `Writes every item, regardless of filters, as CSV. With --share the file is
uploaded to the configured object store and a temporary link is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if share {
				url, err := opts.app.Export.Share(ctx, opts.app.Config.ExportShareTTL)
				if errors.Is(err, service.ErrNothingToExport) {
					fmt.Fprintln(out, "No items to export.")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, url)
				return nil
			}

			data, err := opts.app.Export.CSV(ctx)
			if errors.Is(err, service.ErrNothingToExport) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No items to export.")
				return nil
			}
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(out, "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", export.Filename, `Output file, "-" for stdout`)
	cmd.Flags().BoolVar(&share, "share", false, "Upload and print a download link")
	return cmd
}
