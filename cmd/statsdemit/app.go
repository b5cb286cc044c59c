package main

import (
	"fmt"

	"github.com/getsentry/raven-go"
	"github.com/urfave/cli/v2"

	"statsdemit/internal/log"
	"statsdemit/internal/meta"
	"statsdemit/internal/metrics"
)

// env is the wiring shared by all commands.
type env struct {
	logger   log.Logger
	provider meta.Provider
	client   *metrics.Client
}

func newApp() *cli.App {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "statsdemit/%s\n", c.App.Version)
	}

	return &cli.App{
		Name:    "statsdemit",
		Usage:   "emit statsd metrics over UDP",
		Version: meta.Version(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				EnvVars: []string{"STATSDEMIT_CONFIG"},
				Usage:   "path to the configuration file on disk",
			},
			&cli.StringFlag{
				Name:  "verbosity",
				Value: "error",
				Usage: "desired logging verbosity: one of error, warn, info, debug",
			},
		},
		Commands: []*cli.Command{
			counterCommand("increment", "increment one or more counters by one", 1),
			counterCommand("decrement", "decrement one or more counters by one", -1),
			countCommand(),
			gaugeCommand(),
			timingCommand(),
			setCommand(),
			listenCommand(),
			serveCommand(),
		},
	}
}

// setup builds the logger, configuration provider, and metrics client from the global flags.
func setup(c *cli.Context) (*env, error) {
	// Logging configuration; default to log.Error verbosity
	level, _ := log.ParseLevel(c.String("verbosity"))
	logger := log.NewZapLogger(level)
	logger.Debug("main: initialized logger: level=%v", level)

	var provider meta.Provider

	if path := c.String("config"); path != "" {
		logger.Debug("main: reading and parsing config: path=%s", path)

		fileProvider, err := meta.NewFileProvider(path, logger)
		if err != nil {
			return nil, err
		}

		provider = fileProvider
	} else {
		logger.Warn("main: no configuration file specified; metrics transport disabled")
		provider = meta.NewStaticProvider(meta.DefaultConfig())
	}

	// Configure error reporting
	if dsn := provider.Config().Application.SentryDSN; dsn != "" {
		if err := raven.SetDSN(dsn); err != nil {
			logger.Warn("main: invalid sentry DSN; error reporting disabled: err=%v", err)
		}

		raven.SetRelease(meta.Version())
	}

	transport := metrics.NewTransport(provider, metrics.TransportOpts{Logger: logger})

	return &env{
		logger:   logger,
		provider: provider,
		client:   metrics.NewClient(transport),
	}, nil
}
