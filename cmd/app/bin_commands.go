package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pangen/cmd/app/commands"
	"github.com/allisson/pangen/internal/app"
	"github.com/allisson/pangen/internal/config"
)

func getBINCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "import-bins",
			Usage: "Load a BIN reference CSV file into the database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "CSV file with bin,issuer_name,card_brand,card_type,country_code,bank_phone,bank_url columns",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg).WithLogOutput(os.Stderr)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.BINUseCase()
				if err != nil {
					return err
				}

				return commands.RunImportBINs(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("file"),
					cmd.String("format"),
				)
			},
		},
	}
}
