// Package migrate implements the export and import engines for Mattermost
// integration objects (incoming webhooks, outgoing webhooks, bot accounts).
//
// The Exporter reads the three collections off a server and builds a
// snapshot; a kind whose fetch fails exports empty while the others
// proceed. The Importer is the reconciliation engine: it re-creates a
// snapshot's records on a (possibly different) target server, stripping
// server-assigned fields, renaming webhooks whose display name collides
// with an existing remote webhook, annotating each description with an
// import timestamp, and tallying per-item success without ever letting one
// failed record abort its siblings.
//
// Execution is single-threaded and sequential throughout: one API call in
// flight at a time, kinds in a fixed order. The operation is a bounded
// administrative task and concurrent creation would race against the
// collision index.
//
// In dry-run mode the Importer performs no mutating calls and skips the
// collision pre-fetch entirely, so no record is reported renamed; the
// totals still match what a live run would attempt.
package migrate
