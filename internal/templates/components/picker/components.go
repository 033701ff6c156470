package picker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/chromapick/internal/history"
	"github.com/codr1/chromapick/internal/models"
)

// ColorInfo renders the info panel and floating chip for the latest sample.
// With oob set both are swapped out-of-band so a sample response can also
// carry a history item.
func ColorInfo(color models.DerivedColor, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildColorInfoHTML(color, oob))
		return err
	})
}

// HistoryItem renders one entry of the on-page history list.
func HistoryItem(record history.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildHistoryItemHTML(record))
		return err
	})
}

// HistoryList renders records newest first, the way the page prepends them.
func HistoryList(records []history.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<ul id="color-history" class="space-y-1">`)
		for i := len(records) - 1; i >= 0; i-- {
			b.WriteString(buildHistoryItemHTML(records[i]))
		}
		b.WriteString(`</ul>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// SampleResult is the HTMX response to a recorded sample.
func SampleResult(record history.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ColorInfo(record.Color, true).Render(ctx, w); err != nil {
			return err
		}
		return HistoryItem(record).Render(ctx, w)
	})
}

// PaletteMatches renders ranked palette matches as swatches.
func PaletteMatches(paletteName string, matches []MatchView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<ol class="palette-matches" data-palette="%s">`, templ.EscapeString(paletteName))
		for _, match := range matches {
			fmt.Fprintf(&b,
				`<li><span class="swatch" style="background:%s"></span> %s <code>%s</code> <small>%s</small></li>`,
				safeHex(match.Hex),
				templ.EscapeString(match.Name),
				templ.EscapeString(match.Hex),
				templ.EscapeString(match.Distance),
			)
		}
		b.WriteString(`</ol>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// MatchView is a palette match formatted for display.
type MatchView struct {
	Name     string
	Hex      string
	Distance string
}

func buildColorInfoHTML(color models.DerivedColor, oob bool) string {
	swap := ""
	if oob {
		swap = ` hx-swap-oob="true"`
	}
	hex := safeHex(color.Hex)
	return fmt.Sprintf(
		`<div id="color-info"%s class="font-mono text-sm">%s</div>`+
			`<div id="floating-chip"%s class="rounded px-3 py-1" style="background:%s;color:%s">%s</div>`,
		swap,
		templ.EscapeString(color.Summary()),
		swap,
		hex,
		safeHex(color.TextColor),
		hex,
	)
}

func buildHistoryItemHTML(record history.Record) string {
	c := record.Color
	return fmt.Sprintf(
		`<li data-seq="%d" style="color:%s">%s - %s (%d%% bright)</li>`,
		record.Seq,
		safeHex(c.Hex),
		templ.EscapeString(c.Hex),
		templ.EscapeString(c.Name),
		c.Luminance,
	)
}

// safeHex keeps anything but a #RRGGBB value out of inline styles.
func safeHex(value string) string {
	if !models.IsHexColor(value) {
		return "#000000"
	}
	return strings.ToUpper(strings.TrimSpace(value))
}
