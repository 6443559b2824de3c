package migrate

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/svelle/mattermost-integration-migration/pkg/logging"
	"github.com/svelle/mattermost-integration-migration/pkg/mmclient"
)

// API is the slice of the Mattermost client the export and import engines
// depend on. *mmclient.Client satisfies it; tests substitute fakes.
type API interface {
	ServerURL() string
	GetMe() (*mmclient.User, error)
	ListIncomingWebhooks() ([]mmclient.IncomingWebhook, error)
	CreateIncomingWebhook(*mmclient.IncomingWebhook) (*mmclient.IncomingWebhook, error)
	ListOutgoingWebhooks() ([]mmclient.OutgoingWebhook, error)
	CreateOutgoingWebhook(*mmclient.OutgoingWebhook) (*mmclient.OutgoingWebhook, error)
	ListBots() ([]mmclient.Bot, error)
	CreateBot(*mmclient.Bot) (*mmclient.Bot, error)
}

// config holds the knobs shared by the Exporter and Importer.
type config struct {
	log    *slog.Logger
	out    io.Writer
	now    func() time.Time
	dryRun bool
}

func defaultConfig() config {
	return config{
		log: logging.Nop(),
		out: os.Stdout,
		now: time.Now,
	}
}

// Option configures an Exporter or Importer.
type Option func(*config)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithOutput sets the writer for user-facing status lines. Defaults to
// os.Stdout.
func WithOutput(out io.Writer) Option {
	return func(c *config) {
		if out != nil {
			c.out = out
		}
	}
}

// WithClock overrides the time source used for export metadata and
// provenance notes. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDryRun puts the Importer in simulation mode: no collision pre-fetch,
// no creation calls, same accounting. It has no effect on the Exporter.
func WithDryRun(dryRun bool) Option {
	return func(c *config) {
		c.dryRun = dryRun
	}
}
