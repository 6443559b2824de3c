package migrate

import (
	"fmt"

	"github.com/svelle/mattermost-integration-migration/pkg/mmclient"
	"github.com/svelle/mattermost-integration-migration/pkg/snapshot"
)

// renamedSuffix is appended to a display name that collides with an
// existing remote webhook.
const renamedSuffix = " (imported)"

// provenanceTimeLayout is the timestamp format used in the description
// annotation added to every imported record.
const provenanceTimeLayout = "2006-01-02 15:04:05"

// Importer re-creates the records of a snapshot on a target server. The
// three collections are processed sequentially in a fixed order (incoming
// webhooks, outgoing webhooks, bots) and every record is handled
// independently: one failed creation never aborts its siblings. There is no
// rollback; records created before a failure remain on the server.
type Importer struct {
	client API
	config
}

// NewImporter creates an import engine for the given client.
func NewImporter(client API, opts ...Option) *Importer {
	imp := &Importer{client: client, config: defaultConfig()}
	for _, opt := range opts {
		opt(&imp.config)
	}
	return imp
}

// Run validates the snapshot shape and imports all three collections,
// returning the aggregated per-kind accounting. Validation failures are
// fatal and happen before any network activity.
func (imp *Importer) Run(snap *snapshot.Snapshot) (Report, error) {
	if err := snap.Validate(); err != nil {
		return Report{}, err
	}

	imp.log.Info("starting import", "items", snap.TotalItems(), "dry_run", imp.dryRun)
	if imp.dryRun {
		fmt.Fprintln(imp.out, "Dry run mode - no changes will be made")
	}

	report := Report{DryRun: imp.dryRun}
	report.Incoming = imp.ImportIncomingWebhooks(snap.IncomingWebhooks)
	report.Outgoing = imp.ImportOutgoingWebhooks(snap.OutgoingWebhooks)
	report.Bots = imp.ImportBots(snap.Bots)

	if imp.dryRun {
		fmt.Fprintf(imp.out, "Dry run completed: %d/%d items would be imported\n", report.Succeeded(), report.Total())
	} else {
		fmt.Fprintf(imp.out, "Import completed: %d/%d items imported successfully\n", report.Succeeded(), report.Total())
	}
	imp.log.Info("import finished", "succeeded", report.Succeeded(), "total", report.Total())
	return report, nil
}

// ImportIncomingWebhooks imports incoming webhooks, renaming on display
// name collision with the target server.
func (imp *Importer) ImportIncomingWebhooks(hooks []mmclient.IncomingWebhook) Outcome {
	return importWebhooks(imp, webhookKind[mmclient.IncomingWebhook]{
		label:    "incoming webhook",
		existing: imp.client.ListIncomingWebhooks,
		create: func(w mmclient.IncomingWebhook) error {
			_, err := imp.client.CreateIncomingWebhook(&w)
			return err
		},
		name: func(w mmclient.IncomingWebhook) string { return w.DisplayName },
		rename: func(w mmclient.IncomingWebhook, name string) mmclient.IncomingWebhook {
			w.DisplayName = name
			return w
		},
		describe: func(w mmclient.IncomingWebhook) string { return w.Description },
		redesc: func(w mmclient.IncomingWebhook, desc string) mmclient.IncomingWebhook {
			w.Description = desc
			return w
		},
		strip: mmclient.IncomingWebhook.Stripped,
	}, hooks)
}

// ImportOutgoingWebhooks imports outgoing webhooks. The snapshot's secret
// tokens are dropped; the target server issues fresh ones.
func (imp *Importer) ImportOutgoingWebhooks(hooks []mmclient.OutgoingWebhook) Outcome {
	return importWebhooks(imp, webhookKind[mmclient.OutgoingWebhook]{
		label:    "outgoing webhook",
		existing: imp.client.ListOutgoingWebhooks,
		create: func(w mmclient.OutgoingWebhook) error {
			_, err := imp.client.CreateOutgoingWebhook(&w)
			return err
		},
		name: func(w mmclient.OutgoingWebhook) string { return w.DisplayName },
		rename: func(w mmclient.OutgoingWebhook, name string) mmclient.OutgoingWebhook {
			w.DisplayName = name
			return w
		},
		describe: func(w mmclient.OutgoingWebhook) string { return w.Description },
		redesc: func(w mmclient.OutgoingWebhook, desc string) mmclient.OutgoingWebhook {
			w.Description = desc
			return w
		},
		strip: mmclient.OutgoingWebhook.Stripped,
	}, hooks)
}

// ImportBots imports bot accounts. Bots have no collision handling: the
// server enforces username uniqueness itself and rejects duplicates with a
// conflict status.
func (imp *Importer) ImportBots(bots []mmclient.Bot) Outcome {
	outcome := Outcome{Kind: "bot account"}
	if len(bots) == 0 {
		return outcome
	}
	outcome.Total = len(bots)

	imp.log.Info("importing bot accounts", "count", len(bots), "dry_run", imp.dryRun)
	fmt.Fprintf(imp.out, "Importing %d bot account(s)...\n", len(bots))

	for _, bot := range bots {
		name := bot.Username
		if name == "" {
			name = "Unnamed"
		}

		payload := bot.Stripped()
		payload.Description = annotate(payload.Description, imp.provenanceNote())

		if !imp.dryRun {
			if _, err := imp.client.CreateBot(&payload); err != nil {
				reason := classifyBotError(err)
				outcome.Items = append(outcome.Items, ItemResult{Name: name, Reason: reason})
				fmt.Fprintf(imp.out, "  ✗ %s - %s\n", name, reason)
				imp.log.Error("failed to import bot account", "name", name, "error", err)
				continue
			}
		}

		outcome.Succeeded++
		outcome.Items = append(outcome.Items, ItemResult{Name: name, Succeeded: true})
		fmt.Fprintf(imp.out, "  ✓ %s\n", name)
		imp.log.Debug("imported bot account", "name", name)
	}

	imp.log.Info("bot account import finished", "succeeded", outcome.Succeeded, "total", outcome.Total)
	return outcome
}

// webhookKind carries the kind-specific pieces of the webhook import
// pipeline so incoming and outgoing webhooks share one implementation
// while keeping their different field-strip lists.
type webhookKind[T any] struct {
	label    string
	existing func() ([]T, error)
	create   func(T) error
	name     func(T) string
	rename   func(T, string) T
	describe func(T) string
	redesc   func(T, string) T
	strip    func(T) T
}

// importWebhooks runs the per-kind reconciliation procedure: build a
// collision index over remote display names, then for each snapshot record
// strip server-assigned fields, rename on collision, annotate provenance,
// and create. In dry-run mode neither the collision pre-fetch nor the
// creation call happens, so no record is ever reported renamed; the
// accounting still matches what a live run would attempt.
func importWebhooks[T any](imp *Importer, kind webhookKind[T], hooks []T) Outcome {
	outcome := Outcome{Kind: kind.label}
	if len(hooks) == 0 {
		return outcome
	}
	outcome.Total = len(hooks)

	imp.log.Info("importing webhooks", "kind", kind.label, "count", len(hooks), "dry_run", imp.dryRun)
	fmt.Fprintf(imp.out, "Importing %d %s(s)...\n", len(hooks), kind.label)

	// Collision detection is best-effort: a failed fetch of the remote
	// collection downgrades to an empty index, never aborts the import.
	taken := make(map[string]bool)
	if !imp.dryRun {
		existing, err := kind.existing()
		if err != nil {
			imp.log.Warn("could not fetch existing webhooks for collision check", "kind", kind.label, "error", err)
		} else {
			for _, hook := range existing {
				taken[kind.name(hook)] = true
			}
		}
	}

	for _, hook := range hooks {
		originalName := kind.name(hook)
		name := originalName
		payload := kind.strip(hook)

		renamed := false
		if taken[originalName] {
			name = originalName + renamedSuffix
			payload = kind.rename(payload, name)
			renamed = true
		}

		payload = kind.redesc(payload, annotate(kind.describe(payload), imp.provenanceNote()))

		displayName := name
		if displayName == "" {
			displayName = "Unnamed"
		}

		if !imp.dryRun {
			if err := kind.create(payload); err != nil {
				outcome.Items = append(outcome.Items, ItemResult{Name: name, Renamed: renamed, Reason: err.Error()})
				fmt.Fprintf(imp.out, "  ✗ %s - %v\n", displayName, err)
				imp.log.Error("failed to import webhook", "kind", kind.label, "name", name, "error", err)
				continue
			}
		}

		outcome.Succeeded++
		outcome.Items = append(outcome.Items, ItemResult{Name: name, Renamed: renamed, Succeeded: true})
		status := "  ✓ " + displayName
		if renamed {
			status += " (renamed to avoid conflict)"
		}
		fmt.Fprintln(imp.out, status)
		imp.log.Debug("imported webhook", "kind", kind.label, "name", name)
	}

	imp.log.Info("webhook import finished", "kind", kind.label, "succeeded", outcome.Succeeded, "total", outcome.Total)
	return outcome
}

// provenanceNote returns the annotation recording when a record was
// imported, e.g. "[Imported on 2026-08-27 14:03:11]".
func (imp *Importer) provenanceNote() string {
	return fmt.Sprintf("[Imported on %s]", imp.now().Format(provenanceTimeLayout))
}

// annotate appends the provenance note to an existing description,
// separated by a blank line. With no existing description the note becomes
// the whole description.
func annotate(desc, note string) string {
	if desc == "" {
		return note
	}
	return desc + "\n\n" + note
}

// classifyBotError maps common bot creation failures to actionable text.
func classifyBotError(err error) string {
	if apiErr := mmclient.AsAPIError(err); apiErr != nil {
		switch {
		case apiErr.IsPermission():
			return "Insufficient permissions to create bots"
		case apiErr.IsConflict():
			return "Bot already exists"
		}
	}
	return err.Error()
}
