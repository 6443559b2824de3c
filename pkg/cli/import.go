package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/svelle/mattermost-integration-migration/pkg/migrate"
	"github.com/svelle/mattermost-integration-migration/pkg/snapshot"
)

var (
	importInput  string
	importDryRun bool
	importYes    bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import webhooks and bot accounts from a snapshot file",
	Long: `Import re-creates the records of a snapshot file on the configured
server. Server-assigned fields are dropped, webhooks whose display name
collides with an existing one are renamed, and every description gains a
note recording the import time.

Individual failures do not abort the run; the final summary reports how
many items made it. Use --dry-run to preview without changing anything.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The snapshot is read and validated before touching the network so
		// a malformed file never causes a half-done import.
		snap, err := snapshot.ReadFile(importInput)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		if !importDryRun && !importYes {
			if err := confirmImport(snap.TotalItems(), client.ServerURL()); err != nil {
				return err
			}
		}

		importer := migrate.NewImporter(client,
			migrate.WithLogger(log),
			migrate.WithDryRun(importDryRun),
		)
		// A partial run is still a successful run; only fatal errors (bad
		// snapshot shape) reach here.
		_, err = importer.Run(snap)
		return err
	},
}

// confirmImport asks before a live import. Aborting is reported as an
// error so the process exits non-zero without having changed anything.
func confirmImport(items int, serverURL string) error {
	var proceed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Import %d items into %s?", items, serverURL)).
				Description("Use --dry-run to preview first, or --yes to skip this prompt.").
				Value(&proceed),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("confirmation required (pass --yes to skip the prompt): %w", err)
	}
	if !proceed {
		return fmt.Errorf("import aborted")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Input file path (required)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Preview the import without making changes")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation prompt")
	_ = importCmd.MarkFlagRequired("input")
}
