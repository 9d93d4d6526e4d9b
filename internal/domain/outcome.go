package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyRegion is the cause attached to lookups rejected before any request is made.
var ErrEmptyRegion = errors.New("empty region code")

// EmptyRegionMessage is shown when the user submits a blank region code.
const EmptyRegionMessage = "Please enter a state or region code."

// ErrorKind classifies why a lookup failed.
type ErrorKind int

const (
	// KindHTTP means the API answered with a status outside 200-299.
	KindHTTP ErrorKind = iota + 1
	// KindTransport means the request never produced a response (DNS, connect, timeout).
	KindTransport
	// KindParse means the response body was not valid JSON.
	KindParse
	// KindInput means the lookup was rejected before the request was built.
	KindInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http_error"
	case KindTransport:
		return "transport_error"
	case KindParse:
		return "parse_error"
	case KindInput:
		return "input_error"
	default:
		return "unknown_error"
	}
}

// FetchError is the typed failure of a lookup. Message is user-facing and
// displayed verbatim.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // set for KindHTTP only
	Message    string
	Err        error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

// NewHTTPError builds the failure for a non-success status code.
func NewHTTPError(status int) *FetchError {
	return &FetchError{
		Kind:       KindHTTP,
		StatusCode: status,
		Message:    fmt.Sprintf("Failed to fetch alerts. Status: %d", status),
	}
}

// NewTransportError builds the failure for a request that got no response.
func NewTransportError(err error) *FetchError {
	return &FetchError{Kind: KindTransport, Message: err.Error(), Err: err}
}

// NewParseError builds the failure for an undecodable body.
func NewParseError(err error) *FetchError {
	return &FetchError{Kind: KindParse, Message: err.Error(), Err: err}
}

// NewEmptyRegionError builds the failure for a blank region code.
func NewEmptyRegionError() *FetchError {
	return &FetchError{Kind: KindInput, Message: EmptyRegionMessage, Err: ErrEmptyRegion}
}

// Outcome is the terminal result of one lookup: a feed, or a failure.
type Outcome struct {
	Region RegionCode
	Feed   AlertFeed
	Err    *FetchError
}

// NewOutcome folds a fetch result into an Outcome. Errors that are not already
// a *FetchError are treated as transport failures.
func NewOutcome(region RegionCode, feed AlertFeed, err error) Outcome {
	if err == nil {
		return Outcome{Region: region, Feed: feed}
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		fe = NewTransportError(err)
	}
	return Outcome{Region: region, Err: fe}
}

// OK reports whether the lookup succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Label names the outcome for metrics and message headers.
func (o Outcome) Label() string {
	if o.Err == nil {
		return "success"
	}
	return o.Err.Kind.String()
}
