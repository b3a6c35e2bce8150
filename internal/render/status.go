package render

import (
	"bytes"
	"html/template"

	"github.com/shhan95/firecode-watch/internal/report"
)

// errorHeadLen is how many characters of a diagnostic head are shown inline.
// Truncation happens on the raw value; escaping is the template's job and
// always comes last.
const errorHeadLen = 60

var statusFuncs = template.FuncMap{
	"headTrunc": truncateHead,
}

// truncateHead shortens a raw head fragment to errorHeadLen runes, appending
// an ellipsis when anything was cut.
func truncateHead(s string) string {
	r := []rune(s)
	if len(r) <= errorHeadLen {
		return s
	}
	return string(r[:errorHeadLen]) + "…"
}

const tmplStatus = `
<div class="pills">
{{- range .Pills}}
<span class="pill pill-{{.State}}">{{.Label}}</span>
{{- end}}
</div>
<div class="run-head">
<span class="run-date">{{.Rec.Date}}</span>
<span class="run-result">{{.Rec.Result}}</span>
{{- if .Rec.Summary}}
<span class="run-summary">{{.Rec.Summary}}</span>
{{- end}}
</div>
<details class="section"{{if .Rec.Changes}} open{{end}}>
<summary>Detected changes ({{len .Rec.Changes}})</summary>
{{- if .Rec.Changes}}
<table>
<thead><tr><th>Code</th><th>Title</th><th>Notice</th><th>Announced</th><th>Effective</th><th>Reason</th><th>Refs</th></tr></thead>
<tbody>
{{- range .Rec.Changes}}
<tr>
<td class="mono">{{.Code}}</td>
<td>{{.Title}}</td>
<td>{{.NoticeNo}}</td>
<td>{{.AnnounceDate}}</td>
<td>{{.EffectiveDate}}</td>
<td>{{.Reason}}</td>
<td>
{{- range .Refs}}{{if .URL}}<a href="{{.URL}}" rel="noopener">{{if .Label}}{{.Label}}{{else}}source{{end}}</a> {{end}}{{end -}}
</td>
</tr>
{{- end}}
</tbody>
</table>
{{- else}}
<p class="placeholder">No changes detected.</p>
{{- end}}
</details>
<details class="section"{{if .Rec.Errors}} open{{end}}>
<summary>Check errors ({{len .Rec.Errors}})</summary>
{{- if .Rec.Errors}}
<table>
<thead><tr><th>Code</th><th>Title</th><th>Where</th><th>Kind</th><th>Status</th><th>Content-Type</th><th>Head</th></tr></thead>
<tbody>
{{- range .Rec.Errors}}
<tr>
<td class="mono">{{.Code}}</td>
<td>{{.Title}}</td>
<td>{{.Where}}</td>
<td>{{.Kind}}</td>
<td>{{.Status}}</td>
<td class="mono">{{.ContentType}}</td>
<td class="mono" title="{{.Head}}">{{headTrunc .Head}}</td>
</tr>
{{- end}}
</tbody>
</table>
{{- else}}
<p class="placeholder">No errors.</p>
{{- end}}
</details>
`

var statusTmpl = template.Must(template.New("status").Funcs(statusFuncs).Parse(tmplStatus))

type statusView struct {
	Rec   *report.RunRecord
	Pills []Pill
}

// Status renders one run record: pills, the changes table, and the errors
// table. Empty sections collapse to a placeholder; nonempty sections render
// expanded. The input is never mutated.
func Status(rec *report.RunRecord) (template.HTML, error) {
	var buf bytes.Buffer
	err := statusTmpl.Execute(&buf, statusView{Rec: rec, Pills: Pills(rec)})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
