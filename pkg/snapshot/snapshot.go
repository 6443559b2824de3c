// Package snapshot defines the export file format: a JSON (or YAML)
// envelope holding the three integration collections plus metadata about
// the export run. Import accepts any file with the three collection keys
// present, regardless of the producing tool version.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/svelle/mattermost-integration-migration/pkg/mmclient"
)

// FormatVersion is the snapshot format version written by this tool.
const FormatVersion = "1.0"

// ErrMissingSection marks a snapshot that lacks one of the required
// collection keys. An empty collection is valid; an absent one is not.
var ErrMissingSection = errors.New("missing required section")

// Metadata describes the export run that produced a snapshot.
type Metadata struct {
	ExportDate string `json:"export_date" yaml:"export_date"`
	ExportID   string `json:"export_id,omitempty" yaml:"export_id,omitempty"`
	ServerURL  string `json:"server_url" yaml:"server_url"`
	Version    string `json:"version" yaml:"version"`
}

// Snapshot is the durable interchange format between export and import
// runs. All three collection keys must be present for a file to be a valid
// import source, even when their lists are empty.
type Snapshot struct {
	Metadata         Metadata                   `json:"metadata" yaml:"metadata"`
	IncomingWebhooks []mmclient.IncomingWebhook `json:"incoming_webhooks" yaml:"incoming_webhooks"`
	OutgoingWebhooks []mmclient.OutgoingWebhook `json:"outgoing_webhooks" yaml:"outgoing_webhooks"`
	Bots             []mmclient.Bot             `json:"bots" yaml:"bots"`
}

// TotalItems returns the number of records across all three collections.
func (s *Snapshot) TotalItems() int {
	return len(s.IncomingWebhooks) + len(s.OutgoingWebhooks) + len(s.Bots)
}

// Validate checks the envelope shape. Decoding leaves a collection nil when
// its key was absent from the file, which is a fatal format error; an empty
// list decodes to a non-nil empty slice and passes.
func (s *Snapshot) Validate() error {
	if s.IncomingWebhooks == nil {
		return fmt.Errorf("%w %q", ErrMissingSection, "incoming_webhooks")
	}
	if s.OutgoingWebhooks == nil {
		return fmt.Errorf("%w %q", ErrMissingSection, "outgoing_webhooks")
	}
	if s.Bots == nil {
		return fmt.Errorf("%w %q", ErrMissingSection, "bots")
	}
	return nil
}

// Decode parses snapshot data and validates its shape. JSON is detected by
// a leading brace; anything else is parsed as YAML.
func Decode(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)

	var snap Snapshot
	var parseErr error
	if len(trimmed) > 0 && trimmed[0] == '{' {
		parseErr = json.Unmarshal(data, &snap)
	} else {
		parseErr = yaml.Unmarshal(data, &snap)
	}
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", parseErr)
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Encode serializes a snapshot. JSON output is human-indented; pass
// asYAML=true for YAML output.
func Encode(snap *Snapshot, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(snap)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReadFile loads and validates a snapshot file.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return Decode(data)
}

// WriteFile persists a snapshot. The format follows the file extension:
// .yaml/.yml writes YAML, everything else writes indented JSON.
//
// The data goes to a temporary file in the target directory first and is
// renamed into place, so an interrupt mid-write never leaves a truncated
// snapshot at path.
func WriteFile(path string, snap *Snapshot) error {
	ext := strings.ToLower(filepath.Ext(path))
	data, err := Encode(snap, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}
