// Package domain models National Weather Service (NWS) active alert lookups.
//
// # Data Source
//
// Alerts come from the NWS public API, https://api.weather.gov/alerts/active,
// filtered by the "area" query parameter. The response is GeoJSON: a
// FeatureCollection whose "title" describes the query and whose "features"
// each carry a "properties" object with the alert text.
//
// Only the fields needed for display are modelled:
//
//	{
//	  "title": "current watches, warnings, and advisories for Texas",
//	  "features": [
//	    {"properties": {"headline": "Flood Warning issued April 26 at 3:10PM CDT by NWS Fort Worth TX"}}
//	  ]
//	}
//
// Every field is optional in practice. Absent or empty titles fall back to
// DefaultFeedTitle when the feed is parsed. Absent headlines are kept as nil and
// replaced by a placeholder only when the alert is presented.
//
// # Region Codes
//
// A region code is usually a two-letter state or marine area abbreviation
// ("TX", "PZ"). The only normalization is trimming whitespace and uppercasing;
// codes are not checked against a known set and unknown codes are left for the
// API to reject.
//
// # Outcomes
//
// A lookup ends in exactly one Outcome: a feed, or a FetchError whose Kind says
// whether the request failed at the HTTP layer, the transport layer, or while
// decoding the body. Presenters show FetchError.Message verbatim.
package domain
