package render

import (
	"bytes"
	"html/template"

	"github.com/shhan95/firecode-watch/internal/dashboard"
)

const tmplPage = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Fire Code Watch</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Malgun Gothic',sans-serif;background:#0d1117;color:#c9d1d9;font-size:14px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
a:hover{text-decoration:underline}
header{background:#161b22;border-bottom:1px solid #30363d;padding:10px 16px}
header .brand{color:#f0f6fc;font-weight:700;font-size:16px}
main{padding:16px;max-width:1100px;margin:0 auto}
h2{font-size:13px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:20px 0 8px}
table{width:100%;border-collapse:collapse;font-size:13px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase}
td{padding:5px 10px;border-bottom:1px solid #21262d;vertical-align:top}
tr:hover td{background:#161b22}
.mono{font-family:monospace;font-size:12px;color:#79c0ff}
.dim{color:#8b949e}
.pills{display:flex;gap:8px;margin:12px 0}
.pill{display:inline-block;padding:2px 10px;border-radius:12px;font-size:12px;font-weight:600;border:1px solid #30363d}
.pill-neutral{background:#21262d;color:#8b949e}
.pill-attention{background:#bb800933;color:#d29922;border-color:#d29922}
.pill-critical{background:#da363333;color:#f85149;border-color:#f85149}
.run-head{display:flex;gap:12px;align-items:baseline;margin-bottom:8px}
.run-date{font-weight:700;color:#f0f6fc}
.run-result{color:#c9d1d9}
.run-summary{color:#8b949e;font-size:13px}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:12px;padding:8px 12px}
.section summary{cursor:pointer;color:#8b949e;font-size:12px;font-weight:600}
.placeholder{color:#8b949e;font-size:13px;padding:8px 0}
.banner{border-radius:6px;padding:10px 14px;margin-bottom:16px;font-size:13px}
.banner-nodata{background:#21262d;border:1px solid #30363d;color:#8b949e}
.banner-failed{background:#da363322;border:1px solid #f85149;color:#f85149}
.sec-err{color:#f85149;font-size:13px;padding:8px 0}
footer{padding:16px;color:#484f58;font-size:11px;text-align:center}
</style>
</head>
<body>
<header><span class="brand">Fire Code Watch</span> <span class="dim">NFPC / NFTC 개정 모니터링</span></header>
<main>
{{- if .Run.NoData}}
<div class="banner banner-nodata">{{.Run.Message}}</div>
{{- else if .Run.Failed}}
<div class="banner banner-failed">Load failed: {{.Run.Message}}</div>
{{- else}}
{{.StatusHTML}}
{{- end}}
<h2>{{.NFPC.Title}}</h2>
{{- if .NFPC.Err}}
<p class="sec-err">Inventory unavailable: {{.NFPC.Err}}</p>
{{- else}}
{{.NFPCHTML}}
{{- end}}
<h2>{{.NFTC.Title}}</h2>
{{- if .NFTC.Err}}
<p class="sec-err">Inventory unavailable: {{.NFTC.Err}}</p>
{{- else}}
{{.NFTCHTML}}
{{- end}}
</main>
<footer>generated by firecode-watch</footer>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(tmplPage))

type pageView struct {
	*dashboard.PageView
	StatusHTML template.HTML
	NFPCHTML   template.HTML
	NFTCHTML   template.HTML
}

// Page renders one full dashboard page from a load's view. Sections that
// failed render their own error note; the rest of the page is unaffected.
func Page(view *dashboard.PageView) (template.HTML, error) {
	pv := pageView{PageView: view}

	if view.Run.State == dashboard.RunOK {
		frag, err := Status(view.Run.Record)
		if err != nil {
			return "", err
		}
		pv.StatusHTML = frag
	}
	if view.NFPC.Err == nil {
		frag, err := Inventory(view.NFPC.Items)
		if err != nil {
			return "", err
		}
		pv.NFPCHTML = frag
	}
	if view.NFTC.Err == nil {
		frag, err := Inventory(view.NFTC.Items)
		if err != nil {
			return "", err
		}
		pv.NFTCHTML = frag
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, pv); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
