// Package reconcile turns a desired description of league entities into the
// minimal set of store mutations. Bulk reconciliation is additive (insert
// missing rows, update changed ones, never delete); single-field admin
// edits apply one targeted update with derived fields kept consistent.
package reconcile

import "fmt"

// Result tracks counts from a reconciliation run.
type Result struct {
	TeamsInserted   int
	TeamsUpdated    int
	PlayersInserted int
	PlayersUpdated  int
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.TeamsInserted += other.TeamsInserted
	r.TeamsUpdated += other.TeamsUpdated
	r.PlayersInserted += other.PlayersInserted
	r.PlayersUpdated += other.PlayersUpdated
}

// Empty reports whether the run changed nothing. A repeat run against an
// already-reconciled store is empty.
func (r *Result) Empty() bool {
	return r.TeamsInserted == 0 && r.TeamsUpdated == 0 &&
		r.PlayersInserted == 0 && r.PlayersUpdated == 0
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"teams_inserted=%d teams_updated=%d players_inserted=%d players_updated=%d",
		r.TeamsInserted, r.TeamsUpdated, r.PlayersInserted, r.PlayersUpdated,
	)
}
