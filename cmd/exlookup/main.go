// exlookup searches the telemetry backend for one exception from a terminal.
//
// Endpoint settings come from flags, then APPINSIGHTS_* environment
// variables, then the YAML settings file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"exlookup/internal/config"
	"exlookup/internal/insights"
)

// Exit codes.
const (
	exitFound       = 0
	exitNotFound    = 1
	exitUsage       = 2
	exitUnavailable = 3
)

type options struct {
	apiURL     string
	appID      string
	apiKey     string
	configFile string
	timeout    time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	flagSet := pflag.NewFlagSet("exlookup", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.apiURL, "api-url", "", "lookup URL template with {0}..{3} placeholders")
	flagSet.StringVar(&opts.appID, "app-id", "", "Application Insights application id")
	flagSet.StringVar(&opts.apiKey, "api-key", "", "API key sent as x-api-key")
	flagSet.StringVar(&opts.configFile, "config", "", "YAML settings file (default: $CONFIG_FILE or config.yaml)")
	flagSet.DurationVar(&opts.timeout, "timeout", 0, "request timeout (default: $LOOKUP_TIMEOUT or 30s)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return exitFound
		}
		return exitUsage
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return exitFound
	}

	if opts.configFile != "" {
		os.Setenv("CONFIG_FILE", opts.configFile)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	client := insights.NewClient(cfg.Endpoint(), insights.NewHTTPClient(cfg.LookupTimeout))
	return lookup(context.Background(), insights.NewService(client, nil), strings.Join(flagSet.Args(), " "), stdout, stderr)
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.apiURL != "" {
		cfg.APIURL = opts.apiURL
	}
	if opts.appID != "" {
		cfg.AppID = opts.appID
	}
	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}
	if opts.timeout > 0 {
		cfg.LookupTimeout = opts.timeout
	}
}

func lookup(ctx context.Context, svc *insights.Service, term string, stdout, stderr io.Writer) int {
	outcome, err := svc.Search(ctx, term)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		var te *insights.TransportError
		if errors.As(err, &te) {
			return exitUnavailable
		}
		return exitUsage
	}

	switch outcome.Kind {
	case insights.KindFound:
		fmt.Fprintln(stdout, outcome.Payload)
		return exitFound
	case insights.KindNotFound:
		if outcome.Reason != "" {
			fmt.Fprintf(stdout, "no exception found: %s\n", outcome.Reason)
		} else {
			fmt.Fprintln(stdout, "no exception found")
		}
		return exitNotFound
	default:
		fmt.Fprintln(stderr, "error: an exception identifier is required")
		return exitUsage
	}
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `exlookup searches the last 30 days of exception telemetry for an identifier
and prints the top match.

Usage:
  exlookup [flags] <identifier>

Exit status:
  0  exception found
  1  no exception found
  2  usage or configuration error
  3  telemetry service unreachable

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
