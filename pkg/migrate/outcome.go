package migrate

// ItemResult records what happened to a single snapshot record during
// import. Name is the display name actually used, post-rename when a
// collision forced one.
type ItemResult struct {
	Name      string
	Renamed   bool
	Succeeded bool
	Reason    string // failure detail for display, empty on success
}

// Outcome is the per-kind import tally.
type Outcome struct {
	Kind      string
	Succeeded int
	Total     int
	Items     []ItemResult
}

// Report aggregates the three kind outcomes of an import run.
type Report struct {
	Incoming Outcome
	Outgoing Outcome
	Bots     Outcome
	DryRun   bool
}

// Succeeded returns the number of successfully imported items across kinds.
func (r Report) Succeeded() int {
	return r.Incoming.Succeeded + r.Outgoing.Succeeded + r.Bots.Succeeded
}

// Total returns the number of attempted items across kinds.
func (r Report) Total() int {
	return r.Incoming.Total + r.Outgoing.Total + r.Bots.Total
}
