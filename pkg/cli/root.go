package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/svelle/mattermost-integration-migration/pkg/cliconfig"
	"github.com/svelle/mattermost-integration-migration/pkg/logging"
	"github.com/svelle/mattermost-integration-migration/pkg/mmclient"
)

var (
	// verbose is the persistent -v/--verbose flag.
	verbose bool

	// log is the run-wide logger, set up in PersistentPreRunE. Commands
	// can use it unconditionally; before setup it discards.
	log      *slog.Logger = logging.Nop()
	logClose io.Closer

	// Version, Commit and BuildDate are injected during build.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mmigrate",
	Short: "Export and import Mattermost integrations",
	Long: `mmigrate exports and imports Mattermost integration objects (incoming
webhooks, outgoing webhooks, and bot accounts) through the REST API. Use it
to migrate integrations between server instances or to keep a backup.

Configuration comes from the environment:
  MATTERMOST_SERVER_URL    Mattermost server URL (required)
  MATTERMOST_TOKEN         Personal access token or bot token (required)

Examples:
  mmigrate export -o backup.json
  mmigrate import -i backup.json --dry-run
  mmigrate import -i backup.json`,
	SilenceUsage:  true,
	SilenceErrors: true, // errors are handled in Execute
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, closer, err := logging.FileLogger(cliconfig.DefaultLogFile, verbose)
		if err != nil {
			return err
		}
		log = logger
		logClose = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logClose != nil {
			_ = logClose.Close()
		}
	},
}

// Execute runs the root command. Called by main; exits non-zero on any
// fatal error.
func Execute() {
	go watchInterrupt()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

// watchInterrupt exits on SIGINT/SIGTERM. Already-created remote objects
// stay in place; there is no compensating rollback.
func watchInterrupt() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
	os.Exit(1)
}

// newClient resolves the environment configuration and builds the API
// client. A missing variable surfaces as a fatal, actionable error.
func newClient() (*mmclient.Client, error) {
	cfg, err := cliconfig.Load()
	if err != nil {
		return nil, err
	}
	return mmclient.New(cfg.ServerURL, cfg.Token), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
