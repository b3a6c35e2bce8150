// Package render turns run records and inventories into HTML fragments. All
// rendering goes through html/template so every interpolated field is escaped;
// no fragment is ever assembled by string concatenation of data.
package render

import (
	"fmt"

	"github.com/shhan95/firecode-watch/internal/report"
)

// State classifies a pill for presentation.
type State string

const (
	StateNeutral   State = "neutral"
	StateAttention State = "attention"
	StateCritical  State = "critical"
)

// Pill is a short status indicator: a label plus a presentation state.
type Pill struct {
	Label string
	State State
}

// ModePill reports whether the record came from a live check or mock data.
func ModePill(rec *report.RunRecord) Pill {
	if rec.Meta.Mock {
		return Pill{Label: "mock", State: StateAttention}
	}
	return Pill{Label: "live", State: StateNeutral}
}

// ChangesPill reports the detected-change count. Any change warrants attention.
func ChangesPill(rec *report.RunRecord) Pill {
	n := len(rec.Changes)
	p := Pill{Label: fmt.Sprintf("changes %d", n), State: StateNeutral}
	if n > 0 {
		p.State = StateAttention
	}
	return p
}

// ErrorsPill reports the diagnostic count. Any error is critical.
func ErrorsPill(rec *report.RunRecord) Pill {
	n := len(rec.Errors)
	p := Pill{Label: fmt.Sprintf("errors %d", n), State: StateNeutral}
	if n > 0 {
		p.State = StateCritical
	}
	return p
}

// Pills returns the three record-level pills in display order.
func Pills(rec *report.RunRecord) []Pill {
	return []Pill{ModePill(rec), ChangesPill(rec), ErrorsPill(rec)}
}
