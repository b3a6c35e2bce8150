package render

import (
	"strings"
	"testing"

	"github.com/shhan95/firecode-watch/internal/report"
)

func TestPills_MockEmptyRecord(t *testing.T) {
	rec := &report.RunRecord{
		Date:   "2024-01-01",
		Result: "OK",
		Meta:   report.Meta{Mock: true},
	}

	pills := Pills(rec)
	if len(pills) != 3 {
		t.Fatalf("pill count = %d, want 3", len(pills))
	}
	if pills[0].Label != "mock" || pills[0].State != StateAttention {
		t.Errorf("mode pill = %+v, want mock/attention", pills[0])
	}
	if pills[1].Label != "changes 0" || pills[1].State != StateNeutral {
		t.Errorf("changes pill = %+v, want changes 0/neutral", pills[1])
	}
	if pills[2].Label != "errors 0" || pills[2].State != StateNeutral {
		t.Errorf("errors pill = %+v, want errors 0/neutral", pills[2])
	}
}

func TestPills_LiveWithFindings(t *testing.T) {
	rec := &report.RunRecord{
		Changes: []report.ChangeEntry{{Code: "NFPC 101"}},
		Errors:  []report.ErrorEntry{{Code: "NFTC 203"}},
	}

	pills := Pills(rec)
	if pills[0].Label != "live" || pills[0].State != StateNeutral {
		t.Errorf("mode pill = %+v, want live/neutral", pills[0])
	}
	if pills[1].State != StateAttention {
		t.Errorf("changes pill state = %v, want attention", pills[1].State)
	}
	if pills[2].State != StateCritical {
		t.Errorf("errors pill state = %v, want critical", pills[2].State)
	}
}

func TestStatus_EmptySectionsCollapsed(t *testing.T) {
	rec := &report.RunRecord{Date: "2024-01-01", Result: "OK", Meta: report.Meta{Mock: true}}

	out, err := Status(rec)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	if strings.Contains(html, "<details class=\"section\" open>") {
		t.Error("empty sections rendered expanded, want collapsed")
	}
	if !strings.Contains(html, "No changes detected.") {
		t.Error("missing changes placeholder")
	}
	if !strings.Contains(html, "No errors.") {
		t.Error("missing errors placeholder")
	}
}

func TestStatus_NonemptySectionsExpanded(t *testing.T) {
	rec := &report.RunRecord{
		Date:    "2024-01-02",
		Result:  "변경 있음",
		Changes: []report.ChangeEntry{{Code: "NFPC 101", Title: "소화기구", Refs: []report.Ref{{Label: "법제처", URL: "https://www.law.go.kr/"}}}},
		Errors:  []report.ErrorEntry{{Code: "NFTC 203", Kind: "http_error", Status: "503"}},
	}

	out, err := Status(rec)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	if strings.Count(html, "<details class=\"section\" open>") != 2 {
		t.Error("nonempty sections should both render expanded")
	}
	if !strings.Contains(html, `<a href="https://www.law.go.kr/"`) {
		t.Error("missing rendered reference link")
	}
	if !strings.Contains(html, "503") {
		t.Error("missing error status in table")
	}
}

func TestStatus_EscapesEveryField(t *testing.T) {
	hostile := `&<>"'`
	rec := &report.RunRecord{
		Date:    "2024-01-03",
		Result:  hostile,
		Summary: hostile,
		Changes: []report.ChangeEntry{{Title: hostile, Reason: hostile}},
		Errors:  []report.ErrorEntry{{Title: hostile, Head: hostile}},
	}

	out, err := Status(rec)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	if strings.Contains(html, hostile) {
		t.Error("raw special characters survived into markup")
	}
	if strings.Contains(html, "<>") {
		t.Error("raw angle brackets survived into markup")
	}
	if !strings.Contains(html, "&amp;") || !strings.Contains(html, "&lt;") || !strings.Contains(html, "&gt;") {
		t.Error("expected escaped forms of &, <, > in output")
	}
}

func TestStatus_ScriptHeadEscapedAndTruncated(t *testing.T) {
	// Truncation happens on the raw head value; escaping comes last.
	rec := &report.RunRecord{
		Errors: []report.ErrorEntry{{Head: "<script>alert(1)</script>"}},
	}

	out, err := Status(rec)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	if strings.Contains(html, "<script>") {
		t.Fatal("script tag rendered as structural markup")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("missing escaped script head")
	}
}

func TestTruncateHead(t *testing.T) {
	long := strings.Repeat("a", 61)
	if got := truncateHead(long); got != strings.Repeat("a", 60)+"…" {
		t.Errorf("truncateHead(61 chars) = %q, want 60 + ellipsis", got)
	}

	exact := strings.Repeat("b", 60)
	if got := truncateHead(exact); got != exact {
		t.Errorf("truncateHead(60 chars) = %q, want unchanged", got)
	}

	if got := truncateHead("short"); got != "short" {
		t.Errorf("truncateHead(short) = %q, want unchanged", got)
	}
}

func TestStatus_LongHeadKeepsFullValueInTitle(t *testing.T) {
	full := strings.Repeat("x", 80)
	rec := &report.RunRecord{
		Errors: []report.ErrorEntry{{Head: full}},
	}

	out, err := Status(rec)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	if !strings.Contains(html, `title="`+full+`"`) {
		t.Error("full head not retained for hover inspection")
	}
	if !strings.Contains(html, strings.Repeat("x", 60)+"…") {
		t.Error("inline head not truncated at 60 characters")
	}
}
