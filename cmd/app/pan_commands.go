package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pangen/cmd/app/commands"
	"github.com/allisson/pangen/internal/app"
	"github.com/allisson/pangen/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Output format: 'text', 'json', 'csv' or 'lines'",
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		formatFlag(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Store the result in the export bucket under this key instead of printing it",
		},
	}
}

func templateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "template",
		Aliases:  []string{"t"},
		Required: true,
		Usage:    "Card number template, '?' marks a free digit (e.g. 411111??????????)",
	}
}

func countFlag(value int) cli.Flag {
	return &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"c"},
		Value:   value,
		Usage:   "Number of PANs to generate",
	}
}

// newOutput opens the exporter only when the result goes to the bucket.
func newOutput(container *app.Container, cmd *cli.Command) (commands.Output, error) {
	out := commands.Output{
		Writer: commands.DefaultIO().Writer,
		Format: cmd.String("format"),
		Key:    cmd.String("output"),
	}
	if out.Key == "" {
		return out, nil
	}

	exporter, err := container.Exporter()
	if err != nil {
		return out, err
	}
	out.Exporter = exporter
	return out, nil
}

// withGenerator loads configuration and hands the action a container and its output.
func withGenerator(
	ctx context.Context,
	cmd *cli.Command,
	run func(container *app.Container, out commands.Output) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg).WithLogOutput(os.Stderr)
	defer func() { _ = container.Shutdown(ctx) }()

	out, err := newOutput(container, cmd)
	if err != nil {
		return err
	}
	return run(container, out)
}

func getPANCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "validate",
			Usage: "Check a PAN against the Luhn checksum and the issuer ranges",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "pan",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Card number to check",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   commands.FormatText,
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg).WithLogOutput(os.Stderr)
				defer func() { _ = container.Shutdown(ctx) }()

				generator, err := container.GeneratorUseCase()
				if err != nil {
					return err
				}

				return commands.RunValidate(
					ctx,
					generator,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("pan"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "generate",
			Usage: "Generate every valid PAN matching a template",
			Flags: append([]cli.Flag{templateFlag()}, outputFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withGenerator(ctx, cmd, func(container *app.Container, out commands.Output) error {
					generator, err := container.GeneratorUseCase()
					if err != nil {
						return err
					}
					return commands.RunGenerate(ctx, generator, container.Logger(), out, cmd.String("template"))
				})
			},
		},
		{
			Name:  "batch",
			Usage: "Generate up to --count valid PANs matching a template",
			Flags: append([]cli.Flag{
				templateFlag(),
				countFlag(10),
				&cli.IntFlag{
					Name:  "max-attempts",
					Usage: "Random draws allowed when sampling wide templates (default PAN_MAX_ATTEMPTS)",
				},
			}, outputFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withGenerator(ctx, cmd, func(container *app.Container, out commands.Output) error {
					generator, err := container.GeneratorUseCase()
					if err != nil {
						return err
					}

					maxAttempts := container.Config().PANMaxAttempts
					if cmd.IsSet("max-attempts") {
						maxAttempts = int(cmd.Int("max-attempts"))
					}

					return commands.RunBatch(
						ctx,
						generator,
						container.Logger(),
						out,
						cmd.String("template"),
						int(cmd.Int("count")),
						maxAttempts,
					)
				})
			},
		},
		{
			Name:  "multi",
			Usage: "Generate --count PANs for each BIN prefix",
			Flags: append([]cli.Flag{
				&cli.StringSliceFlag{
					Name:     "prefix",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "BIN prefix, repeat the flag for several prefixes",
				},
				countFlag(10),
			}, outputFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withGenerator(ctx, cmd, func(container *app.Container, out commands.Output) error {
					generator, err := container.GeneratorUseCase()
					if err != nil {
						return err
					}
					return commands.RunMulti(
						ctx,
						generator,
						container.Logger(),
						out,
						cmd.StringSlice("prefix"),
						int(cmd.Int("count")),
					)
				})
			},
		},
		{
			Name:  "metadata",
			Usage: "Generate PANs with brand, expiry, CVV and issuer details",
			Flags: append([]cli.Flag{
				templateFlag(),
				countFlag(10),
				&cli.BoolFlag{
					Name:  "persist",
					Usage: "Store the batch in the generation history (requires HISTORY_ENABLED=true)",
				},
			}, outputFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withGenerator(ctx, cmd, func(container *app.Container, out commands.Output) error {
					generator, err := container.GeneratorUseCase()
					if err != nil {
						return err
					}
					history, err := container.HistoryUseCase()
					if err != nil {
						return err
					}
					return commands.RunMetadata(
						ctx,
						generator,
						history,
						container.Logger(),
						out,
						cmd.String("template"),
						int(cmd.Int("count")),
						cmd.Bool("persist"),
					)
				})
			},
		},
		{
			Name:  "parallel",
			Usage: "Generate --count PANs for several templates on the worker pool",
			Flags: append([]cli.Flag{
				&cli.StringSliceFlag{
					Name:     "template",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Card number template, repeat the flag for several templates",
				},
				countFlag(10),
				&cli.DurationFlag{
					Name:  "timeout",
					Usage: "Stop waiting after this long and print the templates that finished (0 waits for all)",
				},
			}, outputFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withGenerator(ctx, cmd, func(container *app.Container, out commands.Output) error {
					orchestrator, err := container.OrchestratorUseCase()
					if err != nil {
						return err
					}
					return commands.RunParallel(
						ctx,
						orchestrator,
						container.Logger(),
						out,
						cmd.StringSlice("template"),
						int(cmd.Int("count")),
						cmd.Duration("timeout"),
					)
				})
			},
		},
	}
}
