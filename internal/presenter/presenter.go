// Package presenter turns lookup outcomes into something a person can read.
//
// BuildView holds the rendering rules shared by every surface. Presenters
// receive their display surface at construction and write a complete
// rendition on each Render, replacing whatever the previous call showed.
package presenter

import (
	"context"
	"fmt"

	"github.com/couchcryptid/nws-alerts/internal/domain"
)

// NoAlertsNotice is shown when a successful feed carries no alerts.
const NoAlertsNotice = "No active alerts for this state."

// LoadingNotice is shown while a lookup is in flight.
const LoadingNotice = "Loading alerts..."

// Presenter displays the outcome of one lookup.
type Presenter interface {
	Render(ctx context.Context, outcome domain.Outcome) error
}

// LoadingPresenter is implemented by surfaces that can show progress while a
// lookup is in flight.
type LoadingPresenter interface {
	Loading(ctx context.Context, region domain.RegionCode) error
}

// View is the UI-independent rendition of an outcome.
type View struct {
	Region       string
	Summary      string
	NoAlerts     bool
	Headlines    []string
	Error        string
	ErrorVisible bool
}

// BuildView applies the display rules to an outcome. Failures suppress the
// summary and list; successes hide the error region.
func BuildView(o domain.Outcome) View {
	v := View{Region: o.Region.String()}
	if !o.OK() {
		v.Error = o.Err.Message
		v.ErrorVisible = true
		return v
	}

	v.Summary = fmt.Sprintf("%s: %d", o.Feed.Title, o.Feed.Count())
	if o.Feed.Count() == 0 {
		v.NoAlerts = true
		return v
	}
	v.Headlines = make([]string, 0, o.Feed.Count())
	for _, a := range o.Feed.Alerts {
		v.Headlines = append(v.Headlines, a.DisplayHeadline())
	}
	return v
}
