package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"dominicbreuker/mocktcp/cmd/probe"
	"dominicbreuker/mocktcp/cmd/serve"
	"dominicbreuker/mocktcp/cmd/version"
	"dominicbreuker/mocktcp/pkg/log"
)

func main() {
	root := &cli.Command{
		Name:  "mocktcp",
		Usage: "scriptable mock TCP endpoint for testing TCP clients",
		Commands: []*cli.Command{
			serve.GetCommand(),
			probe.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.ErrorMsg("Error: %s\n", err)
		os.Exit(1)
	}
}
