// Package propagation computes new store snapshots for edits that reach
// beyond a single record: forward-filled category and budget edits, cascade
// deletes, and year materialization. Every function takes a snapshot by value
// and returns a fresh one; the input is never modified.
package propagation

import (
	"github.com/shopspring/decimal"

	"budgetpro/internal/core"
)

// CategoryEdit describes an edit to a category of ProjectID. An empty
// CategoryID adds a new recurring category instead.
type CategoryEdit struct {
	ProjectID  string
	CategoryID string
	Name       string
	Emoji      string
	Budget     decimal.Decimal
}

// scope decides which projects an edit made on origin reaches: for a
// month-based origin every month-based project at or after its period, for
// a freeform origin only the origin itself.
type scope struct {
	originID string
	period   core.Period
	monthly  bool
}

func newScope(origin core.Project) scope {
	p, ok := origin.Period()
	return scope{originID: origin.ID, period: p, monthly: ok}
}

func (sc scope) reaches(p core.Project) bool {
	if !sc.monthly {
		return p.ID == sc.originID
	}
	per, ok := p.Period()
	return ok && !per.Before(sc.period)
}

// projectsInScope returns the ids of the projects reached from origin, in
// store order.
func projectsInScope(s core.Store, sc scope) map[string]bool {
	out := make(map[string]bool)
	for _, p := range s.Projects {
		if sc.reaches(p) {
			out[p.ID] = true
		}
	}
	return out
}
