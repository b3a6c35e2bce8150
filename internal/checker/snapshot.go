package checker

import (
	"crypto/sha256"
	"encoding/hex"
)

// Snapshot is the producer's memory between runs: per tab (nfpc/nftc), the
// last known state of each standard keyed by code. Change detection is a
// field-by-field diff against it.
type Snapshot struct {
	NFPC map[string]Entry `json:"nfpc"`
	NFTC map[string]Entry `json:"nftc"`
}

// NewSnapshot returns an empty snapshot with both tabs allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		NFPC: make(map[string]Entry),
		NFTC: make(map[string]Entry),
	}
}

// Tab returns the entry map for a tab key, allocating it if a hand-edited
// snapshot file dropped one.
func (s *Snapshot) Tab(key string) map[string]Entry {
	switch key {
	case "nfpc":
		if s.NFPC == nil {
			s.NFPC = make(map[string]Entry)
		}
		return s.NFPC
	default:
		if s.NFTC == nil {
			s.NFTC = make(map[string]Entry)
		}
		return s.NFTC
	}
}

// Entry is one standard's last observed state.
type Entry struct {
	Code          string      `json:"code,omitempty"`
	Title         string      `json:"title,omitempty"`
	CheckedAt     string      `json:"checkedAt,omitempty"`
	LawgoID       string      `json:"lawgoId,omitempty"`
	NoticeNo      string      `json:"noticeNo,omitempty"`
	AnnounceDate  string      `json:"announceDate,omitempty"`
	EffectiveDate string      `json:"effectiveDate,omitempty"`
	RevisionType  string      `json:"revisionType,omitempty"`
	OrgName       string      `json:"orgName,omitempty"`
	RuleName      string      `json:"ruleName,omitempty"`
	HTMLURL       string      `json:"htmlUrl,omitempty"`
	BodyHash      string      `json:"bodyHash,omitempty"`
	SuppHash      string      `json:"suppHash,omitempty"`
	Error         *EntryError `json:"error,omitempty"`
}

// EntryError is a structured diagnostic attached to an entry whose check
// failed. Its fields flow into the run record's errors table.
type EntryError struct {
	Where       string `json:"where,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Status      int    `json:"status,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Head        string `json:"head,omitempty"`
	URL         string `json:"url,omitempty"`
	Query       string `json:"query,omitempty"`
	Message     string `json:"message,omitempty"`
}

func (e *EntryError) equal(other *EntryError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return *e == *other
}

// diffKeys are the fields whose drift constitutes a detected change.
var diffKeys = []string{"noticeNo", "announceDate", "effectiveDate", "revisionType", "bodyHash", "suppHash"}

func (e Entry) field(key string) string {
	switch key {
	case "noticeNo":
		return e.NoticeNo
	case "announceDate":
		return e.AnnounceDate
	case "effectiveDate":
		return e.EffectiveDate
	case "revisionType":
		return e.RevisionType
	case "bodyHash":
		return e.BodyHash
	case "suppHash":
		return e.SuppHash
	}
	return ""
}

// detectChange compares the previous and current entry for one standard.
// A first observation (empty prev) is never a change. When either side carries
// an error, only an error transition counts; tracked-field diffs are reported
// by name otherwise.
func detectChange(prev, cur Entry) (bool, []string) {
	if prev == (Entry{}) {
		return false, nil
	}
	if prev.Error != nil || cur.Error != nil {
		if !prev.Error.equal(cur.Error) {
			return true, []string{"error"}
		}
		return false, nil
	}

	var diffs []string
	for _, k := range diffKeys {
		if prev.field(k) != cur.field(k) {
			diffs = append(diffs, k)
		}
	}
	return len(diffs) > 0, diffs
}

// hashText fingerprints rule body text so content edits surface even when the
// notice metadata is unchanged.
func hashText(t string) string {
	sum := sha256.Sum256([]byte(t))
	return hex.EncodeToString(sum[:])
}

// ymdToDot converts the API's yyyymmdd dates to yyyy.mm.dd; anything that is
// not exactly eight digits passes through untouched.
func ymdToDot(v string) string {
	if len(v) != 8 {
		return v
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return v
		}
	}
	return v[0:4] + "." + v[4:6] + "." + v[6:8]
}
