// Command mocknws serves a stand-in for the NWS active alerts endpoint so the
// web page and terminal client can be exercised without the real API.
//
// Usage:
//
//	go run ./cmd/mocknws -addr :8081
//	NWS_BASE_URL=http://localhost:8081 go run ./cmd/alerts
//
// Areas with a canned feed return it; any other area returns an empty feed.
// -status forces every response to that HTTP status, -malformed returns a
// truncated body, and "ZZ" always answers 400 like the real API does for
// unknown areas.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

type properties struct {
	Headline *string `json:"headline,omitempty"`
}

type feature struct {
	Properties properties `json:"properties"`
}

type feed struct {
	Title    string    `json:"title"`
	Features []feature `json:"features"`
}

func headline(s string) feature { return feature{Properties: properties{Headline: &s}} }

// fixtures are keyed by area code.
var fixtures = map[string][]feature{
	"TX": {
		headline("Flood Warning issued April 26 at 3:10PM CDT until April 27 at 9:00AM CDT by NWS Fort Worth TX"),
		headline("Severe Thunderstorm Watch issued April 26 at 2:55PM CDT until April 26 at 10:00PM CDT by NWS Norman OK"),
		{}, // alert without a headline
	},
	"OK": {
		headline("Tornado Warning issued April 26 at 12:23PM CDT until April 26 at 1:00PM CDT by NWS Tulsa OK"),
	},
	"KS": {
		headline("Wind Advisory issued April 26 at 4:00AM CDT until April 26 at 8:00PM CDT by NWS Dodge City KS"),
		headline("Red Flag Warning issued April 26 at 4:00AM CDT until April 26 at 9:00PM CDT by NWS Dodge City KS"),
	},
}

func main() {
	if err := run(); err != nil {
		slog.Error("mocknws failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", ":8081", "listen address")
	status := flag.Int("status", 0, "force every response to this HTTP status")
	malformed := flag.Bool("malformed", false, "return a truncated JSON body")
	flag.Parse()

	if *status != 0 && (*status < 100 || *status > 599) {
		flag.Usage()
		return fmt.Errorf("invalid -status %d", *status)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /alerts/active", handleAlerts(*status, *malformed, logger))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("mock NWS listening", "addr", *addr)
	return srv.ListenAndServe()
}

func handleAlerts(status int, malformed bool, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		area := strings.ToUpper(r.URL.Query().Get("area"))
		logger.Info("alerts request", "area", area)

		w.Header().Set("Content-Type", "application/geo+json")
		switch {
		case status != 0:
			w.WriteHeader(status)
			return
		case area == "ZZ":
			w.WriteHeader(http.StatusBadRequest)
			return
		case malformed:
			_, _ = w.Write([]byte(`{"title":"truncated","features":[`))
			return
		}

		body := feed{
			Title:    fmt.Sprintf("current watches, warnings, and advisories for %s", area),
			Features: fixtures[area],
		}
		if body.Features == nil {
			body.Features = []feature{}
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("encode feed failed", "error", err)
		}
	}
}
