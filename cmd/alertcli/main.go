// Command alertcli looks up active NWS alerts from a terminal.
//
// Usage:
//
//	go run ./cmd/alertcli -region TX     # one lookup, exit 1 on failure
//	go run ./cmd/alertcli                # read region codes from stdin
//
// Configuration comes from the same environment variables as the web server
// (NWS_BASE_URL, REQUEST_TIMEOUT, LOG_LEVEL, KAFKA_BROKERS, ...). Logs go to
// stderr so they do not interleave with results.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"os"

	kafkaadapter "github.com/couchcryptid/nws-alerts/internal/adapter/kafka"
	"github.com/couchcryptid/nws-alerts/internal/adapter/nws"
	"github.com/couchcryptid/nws-alerts/internal/app"
	"github.com/couchcryptid/nws-alerts/internal/config"
	"github.com/couchcryptid/nws-alerts/internal/observability"
	"github.com/couchcryptid/nws-alerts/internal/presenter"
	"github.com/jhunt/go-ansi"
	"github.com/mattn/go-isatty"
)

func main() {
	os.Exit(run())
}

func run() int {
	region := flag.String("region", "", "look up a single region code and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		ansi.Fprintf(os.Stderr, "@R{%s}\n", err) //nolint:errcheck
		return 2
	}

	logger := observability.NewLoggerTo(os.Stderr, cfg)
	metrics := observability.NewMetrics()
	client := nws.NewClient(cfg.NWSBaseURL, metrics, logger)

	var sinks []presenter.Presenter
	if cfg.KafkaEnabled {
		publisher := kafkaadapter.NewPublisher(cfg, logger)
		defer publisher.Close()
		sinks = append(sinks, publisher)
		metrics.PublisherActive.Set(1)
	}

	svc := app.NewService(client, cfg.RequestTimeout, logger, metrics, sinks...)
	view := presenter.NewTextPresenter(os.Stdout)
	ctx := context.Background()

	if *region != "" {
		outcome, err := svc.Lookup(ctx, *region, view)
		if err != nil {
			logger.Error("render failed", "error", err)
			return 1
		}
		if !outcome.OK() {
			return 1
		}
		return 0
	}

	session := app.NewSession(svc, view, logger, metrics)
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		ansi.Fprintf(os.Stdout, "@C{Enter a state or region code (Ctrl-D to quit).}\n") //nolint:errcheck
	}
	readLoop(ctx, os.Stdin, os.Stdout, session, interactive)
	session.Wait()
	return 0
}

// readLoop submits each input line. Piped input is processed one line at a
// time; at a terminal, lines typed while a lookup is loading are dropped.
func readLoop(ctx context.Context, in io.Reader, out io.Writer, session *app.Session, interactive bool) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !session.Submit(ctx, scanner.Text()) {
			ansi.Fprintf(out, "@Y{Still loading the previous lookup; try again in a moment.}\n") //nolint:errcheck
			continue
		}
		if !interactive {
			session.Wait()
		}
	}
}
