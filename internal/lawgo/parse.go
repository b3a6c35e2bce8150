package lawgo

import "strings"

// The DRF API is loose about its envelope: search results arrive under
// "admrul", "Admrul", "admruls", or the Korean key, and detail payloads under
// "행정규칙" or "admrul". These helpers normalize both shapes.

// ExtractItems pulls the search result list out of a search response.
func ExtractItems(searchJSON map[string]any) []map[string]any {
	for _, k := range []string{"admrul", "Admrul", "admruls"} {
		if v, ok := searchJSON[k]; ok {
			return toMapList(v)
		}
	}
	if v, ok := searchJSON["행정규칙"]; ok {
		if list := toMapList(v); list != nil {
			return list
		}
	}
	return nil
}

// ExtractPayload pulls the rule payload out of a detail response, falling back
// to the response itself.
func ExtractPayload(detailJSON map[string]any) map[string]any {
	if v, ok := detailJSON["행정규칙"].(map[string]any); ok {
		return v
	}
	if v, ok := detailJSON["admrul"].(map[string]any); ok {
		return v
	}
	return detailJSON
}

// PickBest scores search results and returns the most plausible match: right
// ministry first, 고시 (notice) kind next, dated entries last.
func PickBest(items []map[string]any, orgName string) map[string]any {
	var best map[string]any
	bestScore := -1
	for _, it := range items {
		org := Str(it, "소관부처명", "소관부처")
		kind := Str(it, "행정규칙종류")

		score := 0
		if orgName != "" && contains(org, orgName) {
			score += 100
		}
		if contains(kind, "고시") {
			score += 20
		}
		if Str(it, "발령일자") != "" {
			score++
		}
		if score > bestScore {
			best, bestScore = it, score
		}
	}
	return best
}

// Str returns the first non-empty string value among keys.
func Str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func toMapList(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

// mockSearch mirrors the canned payload the producer uses when the live API
// must not be called.
func mockSearch() map[string]any {
	return map[string]any{
		"admrul": []any{
			map[string]any{
				"행정규칙일련번호": "MOCK-001",
				"소관부처명":   "소방청",
				"행정규칙종류":  "고시",
				"발령일자":    "20260225",
				"행정규칙상세링크": "https://www.law.go.kr/",
			},
		},
	}
}

func mockDetail() map[string]any {
	return map[string]any{
		"행정규칙": map[string]any{
			"행정규칙명":  "MOCK NFPC/NFTC",
			"발령번호":   "소방청고시 제2026-1호",
			"발령일자":   "20260225",
			"시행일자":   "20260301",
			"제개정구분명": "일부개정",
			"소관부처명":  "소방청",
			"조문내용":   "제1조(목적) ... (mock)",
			"부칙내용":   "부칙 ... (mock)",
			"별표내용":   "",
		},
	}
}
