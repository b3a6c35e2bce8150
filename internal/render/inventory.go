package render

import (
	"bytes"
	"html/template"

	"github.com/shhan95/firecode-watch/internal/report"
)

const tmplInventory = `
{{- if .}}
<table>
<thead><tr><th>Code</th><th>Title</th><th>Query</th></tr></thead>
<tbody>
{{- range .}}
<tr>
<td class="mono">{{.Code}}</td>
<td>{{.Title}}</td>
<td class="dim">{{.Query}}</td>
</tr>
{{- end}}
</tbody>
</table>
{{- else}}
<p class="placeholder">No standards registered.</p>
{{- end}}
`

var inventoryTmpl = template.Must(template.New("inventory").Parse(tmplInventory))

// Inventory renders a standards inventory as a code/title/query table, or a
// placeholder when the inventory is empty or absent.
func Inventory(items []report.InventoryItem) (template.HTML, error) {
	var buf bytes.Buffer
	if err := inventoryTmpl.Execute(&buf, items); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
