// Package dashboard sequences the three resource fetches of one page load and
// folds the results into per-section display states. Each resource is fetched
// once, sequentially, with no caching between loads.
package dashboard

import (
	"context"

	"github.com/shhan95/firecode-watch/internal/report"
)

// Fetcher retrieves one named JSON resource. internal/feed.Client satisfies
// it; tests inject stubs.
type Fetcher interface {
	FetchJSON(ctx context.Context, path string, v any) error
}

// RunState classifies the run panel.
type RunState int

const (
	// RunOK: a record is present and rendered.
	RunOK RunState = iota
	// RunNoData: the run log fetched cleanly but holds zero records. A soft
	// condition, distinct from failure.
	RunNoData
	// RunFailed: the run-log fetch itself failed.
	RunFailed
)

// Paths names the three resources, relative to the fetcher's base.
type Paths struct {
	RunLog string
	NFPC   string
	NFTC   string
}

// DefaultPaths matches the producer's output layout.
func DefaultPaths() Paths {
	return Paths{
		RunLog: "data.json",
		NFPC:   "standards_nfpc.json",
		NFTC:   "standards_nftc.json",
	}
}

// RunSection is the run panel's state. Record is non-nil only when State is
// RunOK; Err is non-nil only when State is RunFailed.
type RunSection struct {
	State   RunState
	Record  *report.RunRecord
	Message string
	Err     error
}

// OK reports a rendered record.
func (s RunSection) OK() bool { return s.State == RunOK }

// NoData reports the soft zero-records condition.
func (s RunSection) NoData() bool { return s.State == RunNoData }

// Failed reports a hard fetch failure.
func (s RunSection) Failed() bool { return s.State == RunFailed }

// InventorySection is one standards list. A failed fetch is section-local and
// does not abort the rest of the load.
type InventorySection struct {
	Title string
	Items []report.InventoryItem
	Err   error
}

// PageView is everything one page load produced.
type PageView struct {
	Run  RunSection
	NFPC InventorySection
	NFTC InventorySection
}

// Controller owns the load sequence. It holds no mutable state between loads.
type Controller struct {
	fetcher Fetcher
	paths   Paths
}

// NewController wires a controller to a fetcher.
func NewController(fetcher Fetcher, paths Paths) *Controller {
	return &Controller{fetcher: fetcher, paths: paths}
}

// Load fetches the run log and both inventories, strictly in that order, and
// returns the assembled view. Failures stay local to their section: a broken
// inventory file does not blank an otherwise valid run report.
func (c *Controller) Load(ctx context.Context) *PageView {
	view := &PageView{
		NFPC: InventorySection{Title: "NFPC (performance codes)"},
		NFTC: InventorySection{Title: "NFTC (technical codes)"},
	}

	view.Run = c.loadRun(ctx)
	c.loadInventory(ctx, c.paths.NFPC, &view.NFPC)
	c.loadInventory(ctx, c.paths.NFTC, &view.NFTC)

	return view
}

func (c *Controller) loadRun(ctx context.Context) RunSection {
	var log report.RunLog
	if err := c.fetcher.FetchJSON(ctx, c.paths.RunLog, &log); err != nil {
		return RunSection{
			State:   RunFailed,
			Message: err.Error(),
			Err:     err,
		}
	}
	rec, ok := log.Latest()
	if !ok {
		return RunSection{
			State:   RunNoData,
			Message: "No run records yet. The monitoring job has not produced data.",
		}
	}
	return RunSection{State: RunOK, Record: rec}
}

func (c *Controller) loadInventory(ctx context.Context, path string, sec *InventorySection) {
	var inv report.Inventory
	if err := c.fetcher.FetchJSON(ctx, path, &inv); err != nil {
		sec.Err = err
		return
	}
	sec.Items = inv.Items
}
