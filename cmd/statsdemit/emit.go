package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"statsdemit/internal/metrics"
)

const sampleRateFlagName = "sample-rate"

func sampleRateFlag() cli.Flag {
	return &cli.Float64Flag{
		Name:  sampleRateFlagName,
		Usage: "probability in (0, 1] that each metric is sent; defaults to the configured rate",
	}
}

// sendOptions translates command flags into send options.
func sendOptions(c *cli.Context) []metrics.Option {
	if !c.IsSet(sampleRateFlagName) {
		return nil
	}

	return []metrics.Option{metrics.WithSampleRate(c.Float64(sampleRateFlagName))}
}

func counterCommand(name string, usage string, delta int64) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "NAME...",
		Flags:     []cli.Flag{sampleRateFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one metric name is required")
			}

			e, err := setup(c)
			if err != nil {
				return err
			}

			return e.client.UpdateCounters(c.Args().Slice(), delta, sendOptions(c)...)
		},
	}
}

func countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "apply a signed delta to one or more counters",
		ArgsUsage: "NAME...",
		Flags: []cli.Flag{
			sampleRateFlag(),
			&cli.Int64Flag{
				Name:  "delta",
				Value: 1,
				Usage: "amount to add to each counter; may be negative",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one metric name is required")
			}

			e, err := setup(c)
			if err != nil {
				return err
			}

			return e.client.UpdateCounters(c.Args().Slice(), c.Int64("delta"), sendOptions(c)...)
		},
	}
}

func gaugeCommand() *cli.Command {
	return &cli.Command{
		Name:      "gauge",
		Usage:     "record the current value of a gauge",
		ArgsUsage: "NAME VALUE",
		Flags:     []cli.Flag{sampleRateFlag()},
		Action: func(c *cli.Context) error {
			name, value, err := nameAndNumber(c)
			if err != nil {
				return err
			}

			e, err := setup(c)
			if err != nil {
				return err
			}

			return e.client.RecordGauge(name, value, sendOptions(c)...)
		},
	}
}

func timingCommand() *cli.Command {
	return &cli.Command{
		Name:      "timing",
		Usage:     "record a duration in milliseconds",
		ArgsUsage: "NAME MILLISECONDS",
		Flags:     []cli.Flag{sampleRateFlag()},
		Action: func(c *cli.Context) error {
			name, value, err := nameAndNumber(c)
			if err != nil {
				return err
			}

			e, err := setup(c)
			if err != nil {
				return err
			}

			return e.client.RecordTiming(name, value, sendOptions(c)...)
		},
	}
}

func setCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "record one or more members of a set",
		ArgsUsage: "NAME VALUE...",
		Flags:     []cli.Flag{sampleRateFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("a metric name and at least one value are required")
			}

			e, err := setup(c)
			if err != nil {
				return err
			}

			args := c.Args().Slice()
			values := make([]interface{}, 0, len(args)-1)
			for _, arg := range args[1:] {
				values = append(values, arg)
			}

			return e.client.RecordSet(args[0], values, sendOptions(c)...)
		},
	}
}

// nameAndNumber reads a NAME NUMBER argument pair.
func nameAndNumber(c *cli.Context) (string, float64, error) {
	if c.NArg() != 2 {
		return "", 0, errors.New("exactly a metric name and a value are required")
	}

	value, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return "", 0, errors.Wrapf(err, "invalid value: value=%s", c.Args().Get(1))
	}

	return c.Args().Get(0), value, nil
}
