// Command pantry manages the grocery inventory from the terminal. It shares
// the slot drivers and configuration of the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pantry/internal/app"
	"pantry/internal/config"
	"pantry/internal/logging"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	driver  string
	slotKey string
	slotDir string
	verbose bool

	app *app.App
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "pantry",
		Short: "Track groceries and what expires soon",
		Long: `pantry keeps a list of grocery items with purchase and expiry dates,
classifies each as safe, near (7 days or less), expired or consumed,
and exports the list as CSV.

Storage is chosen with --driver or SLOT_DRIVER (file, memory, sqlite,
postgres, minio, s3).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "Slot driver (default from SLOT_DRIVER)")
	root.PersistentFlags().StringVar(&opts.slotKey, "slot-key", "", "Slot key (default from SLOT_KEY)")
	root.PersistentFlags().StringVar(&opts.slotDir, "slot-dir", "", "Directory for the file driver (default from SLOT_DIR)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newEditCmd(opts),
		newToggleCmd(opts),
		newRmCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func (o *rootOptions) open(ctx context.Context) error {
	cfg := config.Load()
	if o.driver != "" {
		cfg.Slot.Driver = o.driver
	}
	if o.slotKey != "" {
		cfg.Slot.Key = o.slotKey
	}
	if o.slotDir != "" {
		cfg.Slot.Dir = o.slotDir
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Location())
	if err != nil {
		logger = zap.NewNop()
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	o.app = a
	return nil
}

func (o *rootOptions) close() error {
	if o.app == nil {
		return nil
	}
	err := o.app.Close()
	_ = o.app.Logger.Sync()
	o.app = nil
	return err
}

// execute runs root and then closes the app, whether or not the command failed.
// Cobra skips post-run hooks after a RunE error, so closing happens here.
func execute(ctx context.Context, root *cobra.Command, opts *rootOptions) error {
	err := root.ExecuteContext(ctx)
	return errors.Join(err, opts.close())
}

func main() {
	opts := &rootOptions{}
	if err := execute(context.Background(), newRootCmd(opts), opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
