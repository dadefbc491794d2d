package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/store/gremlin"
)

var (
	serverURL string
	dryRun    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Load the type graph into a Gremlin server",
	Long: `Writes a vertex per type def with subtype_of, relationship and classifies edges
between them. Vertices from an earlier export of the same archive are dropped first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := loadAccessor()
		if err != nil {
			return err
		}

		if dryRun {
			for _, statement := range gremlin.Build(acc) {
				fmt.Fprintln(cmd.OutOrStdout(), statement)
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		exporter, err := gremlin.NewLocalServer(ctx, serverURL, gremlin.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", serverURL, err)
		}

		n, err := exporter.Export(ctx, acc)
		if err != nil {
			return err
		}

		logger.Info("exported archive",
			zap.Stringer("guid", acc.Properties().GUID),
			zap.Int("statements", n),
		)

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&serverURL, "server-url", "ws://127.0.0.1:8182", "websocket url of the Gremlin server")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the statements instead of sending them")

	rootCmd.AddCommand(exportCmd)
}
