package checker

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shhan95/firecode-watch/internal/lawgo"
	"github.com/shhan95/firecode-watch/internal/report"
)

const defaultOrgName = "소방청"

// buildEntry checks one standard: search for the rule, pick the best match,
// fetch its detail, and fold the result into a snapshot entry. A failed step
// keeps the previous entry's fields and attaches a structured error, so one
// bad day at the API does not erase what we last knew.
func (c *Checker) buildEntry(ctx context.Context, item report.InventoryItem, prev Entry) Entry {
	query := item.SearchQuery()
	knd := item.Knd
	if knd == 0 {
		knd = 3
	}
	orgName := item.OrgName
	if orgName == "" {
		orgName = defaultOrgName
	}

	today := c.today()

	fail := func(where string, apiErr *lawgo.APIError) Entry {
		e := prev
		e.Code = item.Code
		e.Title = item.Title
		e.CheckedAt = today
		e.Error = entryError(where, apiErr)
		if where == "search" {
			e.Error.Query = query
		}
		return e
	}

	searchJSON, apiErr := c.API.Search(ctx, query, knd, 20)
	if apiErr != nil {
		return fail("search", apiErr)
	}

	best := lawgo.PickBest(lawgo.ExtractItems(searchJSON), orgName)
	if best == nil {
		return fail("search", &lawgo.APIError{Kind: lawgo.KindNoResults})
	}

	admID := lawgo.Str(best, "행정규칙일련번호", "일련번호", "id", "ID")
	if admID == "" {
		return fail("search", &lawgo.APIError{Kind: lawgo.KindIDMissing})
	}

	det, apiErr := c.API.Detail(ctx, admID)
	if apiErr != nil {
		e := fail("detail", apiErr)
		e.LawgoID = admID
		return e
	}

	payload := lawgo.ExtractPayload(det)

	htmlURL := lawgo.Str(best, "행정규칙상세링크", "상세링크")
	if htmlURL == "" {
		// DRF HTML view: a clickable fallback when the search result carries
		// no detail link.
		htmlURL = fmt.Sprintf("%s?OC=%s&target=admrul&ID=%s&type=HTML",
			c.API.ServiceURL, url.QueryEscape(c.API.OC), url.QueryEscape(admID))
	}

	ruleName := lawgo.Str(payload, "행정규칙명")
	if ruleName == "" {
		ruleName = item.Title
	}

	return Entry{
		Code:          item.Code,
		Title:         item.Title,
		CheckedAt:     today,
		LawgoID:       admID,
		NoticeNo:      lawgo.Str(payload, "발령번호"),
		AnnounceDate:  ymdToDot(lawgo.Str(payload, "발령일자")),
		EffectiveDate: ymdToDot(lawgo.Str(payload, "시행일자")),
		RevisionType:  lawgo.Str(payload, "제개정구분명"),
		OrgName:       lawgo.Str(payload, "소관부처명"),
		RuleName:      ruleName,
		HTMLURL:       htmlURL,
		BodyHash:      hashText(lawgo.Str(payload, "조문내용")),
		SuppHash:      hashText(lawgo.Str(payload, "부칙내용") + lawgo.Str(payload, "별표내용")),
	}
}

func entryError(where string, apiErr *lawgo.APIError) *EntryError {
	return &EntryError{
		Where:       where,
		Kind:        apiErr.Kind,
		Status:      apiErr.Status,
		ContentType: apiErr.ContentType,
		Head:        apiErr.Head,
		URL:         apiErr.URL,
		Message:     apiErr.Detail,
	}
}
