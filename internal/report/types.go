// Package report defines the JSON contract between the monitoring job and the
// dashboard: the run log, per-run change/error entries, and the standards
// inventories.
package report

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RunLog is the top-level shape of the run-log resource. The dashboard only
// consults Records[0]; older records exist for the producer's own dedup.
type RunLog struct {
	LastRun string      `json:"lastRun"`
	Records []RunRecord `json:"records"`
}

// Latest returns the newest run record, if any.
func (l *RunLog) Latest() (*RunRecord, bool) {
	if len(l.Records) == 0 {
		return nil, false
	}
	return &l.Records[0], true
}

// RunRecord is one dated snapshot of the monitoring job's outcome.
type RunRecord struct {
	ID      string        `json:"id"`
	Date    string        `json:"date"`
	Scope   string        `json:"scope,omitempty"`
	Result  string        `json:"result"`
	Summary string        `json:"summary,omitempty"`
	Changes []ChangeEntry `json:"changes,omitempty"`
	Errors  []ErrorEntry  `json:"errors,omitempty"`
	Refs    []Ref         `json:"refs,omitempty"`
	Meta    Meta          `json:"meta,omitempty"`
}

// Meta carries run provenance. Mock means the record was synthesized without
// calling the live API.
type Meta struct {
	Mock  bool   `json:"mock"`
	RunID string `json:"runId,omitempty"`
}

// ChangeEntry is one detected modification to a monitored standard.
type ChangeEntry struct {
	Code          string   `json:"code,omitempty"`
	Title         string   `json:"title,omitempty"`
	NoticeNo      string   `json:"noticeNo,omitempty"`
	AnnounceDate  string   `json:"announceDate,omitempty"`
	EffectiveDate string   `json:"effectiveDate,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	Supplementary string   `json:"supplementary,omitempty"`
	Impact        []string `json:"impact,omitempty"`
	Refs          []Ref    `json:"refs,omitempty"`
}

// Ref is a link back to the source document.
type Ref struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url,omitempty"`
}

// ErrorEntry is one diagnostic recorded while checking a standard.
type ErrorEntry struct {
	Code        string     `json:"code,omitempty"`
	Title       string     `json:"title,omitempty"`
	Where       string     `json:"where,omitempty"`
	Kind        string     `json:"kind,omitempty"`
	Status      StatusCode `json:"status,omitempty"`
	ContentType string     `json:"contentType,omitempty"`
	Head        string     `json:"head,omitempty"`
	URL         string     `json:"url,omitempty"`
	Query       string     `json:"query,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// StatusCode is an HTTP-like status. The producer writes numbers but older
// records and hand-edited files carry labels, so both decode.
type StatusCode string

func (s *StatusCode) UnmarshalJSON(data []byte) error {
	d := strings.TrimSpace(string(data))
	if d == "null" {
		*s = ""
		return nil
	}
	if len(d) > 0 && d[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StatusCode(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = StatusCode(n.String())
	return nil
}

func (s StatusCode) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(s)); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(s))
}

// Inventory is the top-level shape of a standards inventory resource.
type Inventory struct {
	Items []InventoryItem `json:"items"`
}

// InventoryItem describes one monitored standard. Knd and OrgName steer the
// producer's search; the dashboard only shows code/title/query.
type InventoryItem struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Query   string `json:"query,omitempty"`
	Knd     int    `json:"knd,omitempty"`
	OrgName string `json:"orgName,omitempty"`
}

// SearchQuery returns the query to send for this item, falling back through
// title and code the way the producer always has.
func (it InventoryItem) SearchQuery() string {
	if it.Query != "" {
		return it.Query
	}
	if it.Title != "" {
		return it.Title
	}
	return it.Code
}
