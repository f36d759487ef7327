package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/docsim/cmd/app/commands"
)

func getDocumentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "tokenize",
			Usage: "Split text into words and print their 32-byte tokens",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "text",
					Aliases: []string{"t"},
					Usage:   "Text to tokenize (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				io := commands.DefaultIO()
				return commands.RunTokenize(io.Reader, io.Writer, cmd.String("text"), cmd.String("format"))
			},
		},
		{
			Name:  "seal",
			Usage: "Tokenize text and encrypt each token deterministically for POST /v1/documents",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "public-key-n",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Paillier modulus n as a decimal string (GET /v1/paillier/public-key)",
				},
				&cli.StringFlag{
					Name:    "text",
					Aliases: []string{"t"},
					Usage:   "Text to seal (read from stdin when omitted)",
				},
				&cli.StringFlag{
					Name:  "title",
					Usage: "Document title",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				io := commands.DefaultIO()
				return commands.RunSeal(
					io.Reader,
					io.Writer,
					cmd.String("text"),
					cmd.String("public-key-n"),
					cmd.String("title"),
				)
			},
		},
	}
}
