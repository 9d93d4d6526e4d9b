package presenter

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/nws-alerts/internal/domain"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// page is the data handed to the template.
type page struct {
	View
	Input  string // value left in the region field
	Notice string
}

// HTMLPresenter writes a complete alerts page to w.
type HTMLPresenter struct {
	w io.Writer
}

// NewHTMLPresenter creates a presenter bound to one response writer.
func NewHTMLPresenter(w io.Writer) *HTMLPresenter {
	return &HTMLPresenter{w: w}
}

// Blank writes the page with an empty form and no results.
func (p *HTMLPresenter) Blank() error {
	return p.execute(page{})
}

// Render writes the page for a finished lookup. The region field is cleared
// after a success and kept after a failure so the user can correct it.
func (p *HTMLPresenter) Render(_ context.Context, outcome domain.Outcome) error {
	pg := page{View: BuildView(outcome), Notice: NoAlertsNotice}
	if !outcome.OK() {
		pg.Input = outcome.Region.String()
	}
	return p.execute(pg)
}

func (p *HTMLPresenter) execute(pg page) error {
	if err := pageTemplate.Execute(p.w, pg); err != nil {
		return fmt.Errorf("render alerts page: %w", err)
	}
	return nil
}
