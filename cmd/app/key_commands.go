package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/docsim/cmd/app/commands"
	"github.com/allisson/docsim/internal/app"
	"github.com/allisson/docsim/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-authority-key",
			Usage: "Generate a KMS-wrapped root key for the key-derivation authority",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Value:   "",
					Usage:   "Authority key ID (default: document-root)",
				},
				&cli.StringFlag{
					Name:     "kms-key-uri",
					Value:    "",
					Required: true,
					Usage:    "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateAuthorityKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
