// Package memory is an in-process stats exporter used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "budgetpro/internal/sheets"
)

var _ ports.StatsExporter = (*Exporter)(nil)

type Exporter struct {
	mu      sync.Mutex
	rows    [][]any
	reports map[string]ports.ProjectReport
}

func New() *Exporter {
	return &Exporter{reports: make(map[string]ports.ProjectReport)}
}

func (e *Exporter) ExportProjectStats(_ context.Context, r ports.ProjectReport) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := len(e.rows) + 1
	e.rows = append(e.rows, ports.Rows(r)...)
	e.reports[r.Project.ID] = r
	return fmt.Sprintf("mem:%d-%d", start, len(e.rows)), nil
}

// Rows returns a copy of every row written so far.
func (e *Exporter) Rows() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]any(nil), e.rows...)
}

// Latest returns the last report exported for a project.
func (e *Exporter) Latest(projectID string) (ports.ProjectReport, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.reports[projectID]
	return r, ok
}
