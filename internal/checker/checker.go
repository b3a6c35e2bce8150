// Package checker is the monitoring job: it scans the registered NFPC/NFTC
// standards against the law.go.kr API, diffs the results against the previous
// snapshot, and writes the run log and snapshot the dashboard consumes.
package checker

import (
	"context"
	"fmt"
	stdlog "log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shhan95/firecode-watch/internal/lawgo"
	"github.com/shhan95/firecode-watch/internal/notify"
	"github.com/shhan95/firecode-watch/internal/report"
)

// kst pins run dates to Korean standard time regardless of where the job runs.
var kst = time.FixedZone("KST", 9*60*60)

// Paths names the checker's input and output files.
type Paths struct {
	RunLog   string
	Snapshot string
	NFPC     string
	NFTC     string
}

// Checker runs one scan over all registered standards.
type Checker struct {
	API         *lawgo.Client
	Paths       Paths
	Concurrency int
	Notifier    notify.Notifier

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// New creates a checker with sane defaults.
func New(api *lawgo.Client, paths Paths) *Checker {
	return &Checker{
		API:         api,
		Paths:       paths,
		Concurrency: 4,
		Notifier:    notify.NoopNotifier{},
		Now:         time.Now,
	}
}

func (c *Checker) today() string {
	return c.Now().In(kst).Format("2006-01-02")
}

// Run performs one full check and persists the results. A missing credential
// without mock mode degrades to an error record rather than a hard failure,
// mirroring how the job behaves under a scheduler that must always produce a
// resource for the dashboard.
func (c *Checker) Run(ctx context.Context) (*report.RunRecord, error) {
	today := c.today()

	log, err := LoadRunLog(c.Paths.RunLog)
	if err != nil {
		return nil, err
	}

	if !c.API.Mock && c.API.OC == "" {
		rec := report.RunRecord{
			ID:      today,
			Date:    today,
			Scope:   "NFPC / NFTC (법제처 OPEN API: 행정규칙)",
			Result:  "오류",
			Summary: "LAWGO_OC 미설정 (mock 모드 또는 OC 키 필요)",
			Errors: []report.ErrorEntry{{
				Kind:    "missing_secret",
				Where:   "runtime",
				Message: "LAWGO_OC empty",
			}},
			Meta: report.Meta{Mock: false, RunID: uuid.NewString()},
		}
		prependRecord(log, rec, today)
		if err := SaveJSON(c.Paths.RunLog, log); err != nil {
			return nil, err
		}
		return &rec, nil
	}

	nfpc, err := LoadInventory(c.Paths.NFPC)
	if err != nil {
		return nil, err
	}
	nftc, err := LoadInventory(c.Paths.NFTC)
	if err != nil {
		return nil, err
	}
	snap, err := LoadSnapshot(c.Paths.Snapshot)
	if err != nil {
		return nil, err
	}

	var changes []report.ChangeEntry
	var errs []report.ErrorEntry

	for _, tab := range []struct {
		key   string
		items []report.InventoryItem
	}{
		{"nfpc", nfpc.Items},
		{"nftc", nftc.Items},
	} {
		entries := c.scanTab(ctx, tab.items, snap.Tab(tab.key))

		// Merge in file order so the run record is deterministic regardless
		// of which goroutine finished first.
		for i, item := range tab.items {
			if item.Code == "" {
				continue
			}
			prev := snap.Tab(tab.key)[item.Code]
			cur := entries[i]
			snap.Tab(tab.key)[item.Code] = cur

			if cur.Error != nil {
				errs = append(errs, report.ErrorEntry{
					Code:        item.Code,
					Title:       item.Title,
					Where:       cur.Error.Where,
					Kind:        cur.Error.Kind,
					Status:      statusCode(cur.Error.Status),
					ContentType: cur.Error.ContentType,
					Head:        cur.Error.Head,
					URL:         cur.Error.URL,
					Query:       cur.Error.Query,
					Message:     cur.Error.Message,
				})
				continue
			}

			if changed, keys := detectChange(prev, cur); changed {
				changes = append(changes, report.ChangeEntry{
					Code:          item.Code,
					Title:         item.Title,
					NoticeNo:      cur.NoticeNo,
					AnnounceDate:  cur.AnnounceDate,
					EffectiveDate: cur.EffectiveDate,
					Reason:        fmt.Sprintf("자동 감지: 메타/본문 해시 변경(%s)", strings.Join(keys, ", ")),
					Supplementary: "부칙/경과규정은 원문 확인",
					Impact: []string{
						"설계: 시행일 기준 적용(도서·시방서에 적용기준 명시)",
						"시공: 자재/설비 선정 시 개정기준 충족 여부 확인",
						"유지관리: 점검대장에 적용기준/이력 기록",
					},
					Refs: []report.Ref{{Label: "법제처(원문/DRF)", URL: cur.HTMLURL}},
				})
			}
		}
	}

	result, summary := "변경 없음", "전일 대비 변경 감지 없음"
	if len(changes) > 0 {
		result = "변경 있음"
		summary = fmt.Sprintf("자동 감지: %d건 변경(원문 확인 권장)", len(changes))
	}

	rec := report.RunRecord{
		ID:      today,
		Date:    today,
		Scope:   "NFPC / NFTC (법제처 OPEN API: 행정규칙)",
		Result:  result,
		Summary: summary,
		Changes: changes,
		Errors:  errs,
		Meta:    report.Meta{Mock: c.API.Mock, RunID: uuid.NewString()},
	}

	prependRecord(log, rec, today)

	if err := SaveJSON(c.Paths.Snapshot, snap); err != nil {
		return nil, err
	}
	if err := SaveJSON(c.Paths.RunLog, log); err != nil {
		return nil, err
	}

	c.notifyRun(&rec)
	return &rec, nil
}

// scanTab checks a tab's items with bounded concurrency. Results land in a
// slice parallel to items; ordering is the caller's job.
func (c *Checker) scanTab(ctx context.Context, items []report.InventoryItem, prevTab map[string]Entry) []Entry {
	entries := make([]Entry, len(items))

	g, ctx := errgroup.WithContext(ctx)
	limit := c.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, item := range items {
		if item.Code == "" {
			continue
		}
		i, item := i, item
		g.Go(func() error {
			entries[i] = c.buildEntry(ctx, item, prevTab[item.Code])
			return nil
		})
	}
	_ = g.Wait() // buildEntry records failures as entry errors, never returns one

	return entries
}

// prependRecord replaces any record for the same date and puts rec first.
func prependRecord(log *report.RunLog, rec report.RunRecord, today string) {
	kept := log.Records[:0]
	for _, r := range log.Records {
		if r.Date != today {
			kept = append(kept, r)
		}
	}
	log.Records = append([]report.RunRecord{rec}, kept...)
	log.LastRun = today
}

func (c *Checker) notifyRun(rec *report.RunRecord) {
	if c.Notifier == nil {
		return
	}

	var n notify.Notification
	switch {
	case len(rec.Errors) > 0:
		n = notify.Notification{
			Title:   fmt.Sprintf("firecode-watch: %d check errors on %s", len(rec.Errors), rec.Date),
			Message: rec.Summary,
			Type:    notify.NotifyError,
		}
	case len(rec.Changes) > 0:
		n = notify.Notification{
			Title:   fmt.Sprintf("firecode-watch: %d standard changes on %s", len(rec.Changes), rec.Date),
			Message: rec.Summary,
			Type:    notify.NotifyWarning,
		}
	default:
		return
	}

	if err := c.Notifier.Send(n); err != nil {
		stdlog.Printf("notify: %v", err)
	}
}

func statusCode(status int) report.StatusCode {
	if status == 0 {
		return ""
	}
	return report.StatusCode(fmt.Sprintf("%d", status))
}
