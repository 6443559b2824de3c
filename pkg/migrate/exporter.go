package migrate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/svelle/mattermost-integration-migration/pkg/mmclient"
	"github.com/svelle/mattermost-integration-migration/pkg/snapshot"
)

// Exporter reads the three integration collections off a server and builds
// a snapshot. A kind whose fetch fails is reported and exported empty;
// the other kinds still proceed.
type Exporter struct {
	client API
	config
}

// NewExporter creates an export engine for the given client.
func NewExporter(client API, opts ...Option) *Exporter {
	e := &Exporter{client: client, config: defaultConfig()}
	for _, opt := range opts {
		opt(&e.config)
	}
	return e
}

// Run probes connectivity, fetches the three collections sequentially, and
// returns the snapshot. The probe failing is fatal. If all three
// collections come back empty a second probe distinguishes a legitimately
// empty server from a connection that silently went away mid-run; a failed
// re-probe makes the empty export fatal too.
func (e *Exporter) Run() (*snapshot.Snapshot, error) {
	e.log.Info("starting export", "server", e.client.ServerURL())
	fmt.Fprintf(e.out, "Starting export from %s...\n", e.client.ServerURL())

	me, err := e.client.GetMe()
	if err != nil {
		e.log.Error("connectivity probe failed", "error", err)
		return nil, fmt.Errorf("unable to connect to %s: %w", e.client.ServerURL(), err)
	}
	fmt.Fprintf(e.out, "✓ Connected as: %s\n", me.Username)

	snap := &snapshot.Snapshot{
		Metadata: snapshot.Metadata{
			ExportDate: e.now().Format(time.RFC3339),
			ExportID:   uuid.NewString(),
			ServerURL:  e.client.ServerURL(),
			Version:    snapshot.FormatVersion,
		},
		IncomingWebhooks: exportKind(e, "incoming webhook", e.client.ListIncomingWebhooks, incomingLabel),
		OutgoingWebhooks: exportKind(e, "outgoing webhook", e.client.ListOutgoingWebhooks, outgoingLabel),
		Bots:             exportKind(e, "bot account", e.client.ListBots, botLabel),
	}

	// An entirely empty result can mean an empty server or a connection
	// that died after the probe. Re-probe to tell the two apart.
	if snap.TotalItems() == 0 {
		if _, err := e.client.GetMe(); err != nil {
			e.log.Error("empty export and re-probe failed", "error", err)
			return nil, fmt.Errorf("connection issues prevented data retrieval: %w", err)
		}
	}

	e.log.Info("export finished", "items", snap.TotalItems())
	return snap, nil
}

// exportKind fetches one collection, printing the count and each item. A
// fetch failure yields an empty list so the remaining kinds still export.
func exportKind[T any](e *Exporter, label string, fetch func() ([]T, error), name func(T) string) []T {
	e.log.Info("exporting collection", "kind", label)

	items, err := fetch()
	if err != nil {
		e.log.Error("failed to export collection", "kind", label, "error", err)
		fmt.Fprintf(e.out, "✗ Failed to export %ss: %v\n", label, err)
		return make([]T, 0)
	}

	e.log.Info("collection exported", "kind", label, "count", len(items))
	fmt.Fprintf(e.out, "Found %d %s(s)\n", len(items), label)
	for _, item := range items {
		fmt.Fprintf(e.out, "  ✓ %s\n", name(item))
	}

	if items == nil {
		// Snapshot collections must encode as [], never null.
		items = make([]T, 0)
	}
	return items
}

func incomingLabel(w mmclient.IncomingWebhook) string {
	if w.DisplayName == "" {
		return "Unnamed"
	}
	return w.DisplayName
}

func outgoingLabel(w mmclient.OutgoingWebhook) string {
	if w.DisplayName == "" {
		return "Unnamed"
	}
	return w.DisplayName
}

func botLabel(b mmclient.Bot) string {
	username := b.Username
	if username == "" {
		username = "Unnamed"
	}
	if b.DisplayName != "" && b.DisplayName != b.Username {
		return fmt.Sprintf("%s (%s)", username, b.DisplayName)
	}
	return username
}
