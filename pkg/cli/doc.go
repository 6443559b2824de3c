// Package cli wires the mmigrate command tree: export, import, and
// version, with server address and credentials resolved from the
// environment and a persistent log file next to the binary.
package cli
