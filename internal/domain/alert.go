package domain

import (
	"context"
	"strings"
)

const (
	// DefaultFeedTitle replaces a missing or empty feed title.
	DefaultFeedTitle = "Weather Alerts"

	// MissingHeadline is shown in place of an alert without a headline.
	MissingHeadline = "No headline available"
)

// RegionCode scopes an alert query, typically a state abbreviation such as "TX".
type RegionCode string

// NormalizeRegion trims surrounding whitespace and uppercases the input.
// No other validation is applied.
func NormalizeRegion(raw string) RegionCode {
	return RegionCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsEmpty reports whether the region code has no characters.
func (r RegionCode) IsEmpty() bool { return r == "" }

func (r RegionCode) String() string { return string(r) }

// AlertFeed is the parsed response for one query.
type AlertFeed struct {
	Title  string
	Alerts []Alert // order as received
}

// Count returns the number of alerts in the feed.
func (f AlertFeed) Count() int { return len(f.Alerts) }

// Alert is one active warning or notice entry.
type Alert struct {
	Headline *string
}

// DisplayHeadline returns the headline, or MissingHeadline when it is absent or empty.
func (a Alert) DisplayHeadline() string {
	if a.Headline == nil || *a.Headline == "" {
		return MissingHeadline
	}
	return *a.Headline
}

// AlertFetcher retrieves the active alerts for a region.
type AlertFetcher interface {
	// FetchAlerts issues one request for the region. A non-nil error is
	// always a *FetchError.
	FetchAlerts(ctx context.Context, region RegionCode) (AlertFeed, error)
}
