package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/svelle/mattermost-integration-migration/pkg/cliconfig"
	"github.com/svelle/mattermost-integration-migration/pkg/migrate"
	"github.com/svelle/mattermost-integration-migration/pkg/snapshot"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export webhooks and bot accounts to a snapshot file",
	Long: `Export reads all incoming webhooks, outgoing webhooks, and bot accounts
from the configured server and writes them to a snapshot file. The file
format follows the output extension: .yaml/.yml writes YAML, anything
else writes JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		exporter := migrate.NewExporter(client, migrate.WithLogger(log))
		snap, err := exporter.Run()
		if err != nil {
			return err
		}

		if err := snapshot.WriteFile(exportOutput, snap); err != nil {
			log.Error("failed to write snapshot", "path", exportOutput, "error", err)
			return fmt.Errorf("failed to save export file: %w", err)
		}

		fmt.Printf("✓ Export completed: %d items saved to %s\n", snap.TotalItems(), exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", cliconfig.DefaultExportFile, "Output file path")
}
