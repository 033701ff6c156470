package layouts

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// PageData configures the picker page shell.
type PageData struct {
	Title          string
	Palettes       []string
	DefaultPalette string
	IntervalMillis int
}

// Base renders the picker page. Frame capture and the sampling tick live in
// /static/picker.js; everything else is driven by HTMX fragments.
func Base(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildPageHTML(data))
		return err
	})
}

func buildPageHTML(data PageData) string {
	title := data.Title
	if strings.TrimSpace(title) == "" {
		title = "Color Picker"
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	fmt.Fprintf(&b, `<title>%s</title>`, templ.EscapeString(title))
	b.WriteString(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
	b.WriteString(`<script src="/static/picker.js" defer></script>`)
	b.WriteString(`</head><body class="p-4">`)

	fmt.Fprintf(&b,
		`<main id="picker" data-sample-interval="%d" data-sample-url="/api/v1/samples">`,
		data.IntervalMillis,
	)
	fmt.Fprintf(&b, `<h1>%s</h1>`, templ.EscapeString(title))
	b.WriteString(`<div class="controls">`)
	b.WriteString(`<button id="start-btn" type="button">Start Camera</button>`)
	b.WriteString(`<button id="stop-btn" type="button" disabled>Stop Camera</button>`)
	b.WriteString(`<label for="palette-select">Palette</label><select id="palette-select" name="palette">`)
	for _, name := range data.Palettes {
		selected := ""
		if name == data.DefaultPalette {
			selected = " selected"
		}
		escaped := templ.EscapeString(name)
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, escaped, selected, escaped)
	}
	b.WriteString(`</select>`)
	b.WriteString(`<a id="export-link" href="/api/v1/history/export" download>Export CSV</a>`)
	b.WriteString(`</div>`)

	b.WriteString(`<div class="camera"><video id="camera" autoplay playsinline muted></video>`)
	b.WriteString(`<canvas id="frame" hidden></canvas><div id="crosshair"></div>`)
	b.WriteString(`<div id="floating-chip"></div></div>`)
	b.WriteString(`<div id="color-info" class="font-mono text-sm">Start the camera to sample colors.</div>`)
	b.WriteString(`<h2>History</h2>`)
	b.WriteString(`<ul id="color-history" hx-get="/api/v1/history" hx-trigger="load" hx-swap="outerHTML"></ul>`)
	b.WriteString(`</main></body></html>`)
	return b.String()
}
