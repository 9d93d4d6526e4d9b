package presenter

import (
	"context"
	"io"

	"github.com/couchcryptid/nws-alerts/internal/domain"
	"github.com/jhunt/go-ansi"
)

// Separator opens each lookup block so a new result visibly replaces the last.
const Separator = "----------------------------------------"

// TextPresenter writes outcomes to a terminal, one block per lookup. Colour
// codes are stripped unless w is a terminal. Not safe for concurrent use.
type TextPresenter struct {
	w      io.Writer
	opened bool // Loading already wrote this lookup's separator
}

// NewTextPresenter creates a presenter writing to w.
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

// Loading starts a new block with the in-flight notice.
func (p *TextPresenter) Loading(_ context.Context, region domain.RegionCode) error {
	if err := p.separate(); err != nil {
		return err
	}
	p.opened = true
	return p.printf("@C{%s} (%s)\n", LoadingNotice, region)
}

// Render prints the summary and headlines, or the failure message.
func (p *TextPresenter) Render(_ context.Context, outcome domain.Outcome) error {
	if !p.opened {
		if err := p.separate(); err != nil {
			return err
		}
	}
	p.opened = false

	v := BuildView(outcome)
	if v.ErrorVisible {
		return p.printf("@R{%s}\n", v.Error)
	}

	if err := p.printf("@G{%s}\n", v.Summary); err != nil {
		return err
	}
	if v.NoAlerts {
		return p.printf("  %s\n", NoAlertsNotice)
	}
	for _, h := range v.Headlines {
		if err := p.printf("  @Y{*} %s\n", h); err != nil {
			return err
		}
	}
	return nil
}

func (p *TextPresenter) separate() error {
	return p.printf("%s\n", Separator)
}

func (p *TextPresenter) printf(format string, args ...any) error {
	_, err := ansi.Fprintf(p.w, format, args...)
	return err
}
