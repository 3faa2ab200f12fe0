// Package probe provides the probe command, an interactive client for
// poking at a scripted endpoint from a terminal.
package probe

import (
	"context"
	"fmt"
	"net"

	"github.com/urfave/cli/v3"

	"dominicbreuker/mocktcp/cmd/shared"
	"dominicbreuker/mocktcp/pkg/client"
	"dominicbreuker/mocktcp/pkg/config"
	"dominicbreuker/mocktcp/pkg/log"
	"dominicbreuker/mocktcp/pkg/pipeio"
)

// GetCommand ...
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "probe",
		Usage:       "Connect to an endpoint and pipe it to the terminal",
		ArgsUsage:   shared.GetArgsUsage(),
		Description: shared.GetBaseDescription(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			proto, host, port, err := shared.ParseTransport(cmd.Args().First())
			if err != nil {
				return fmt.Errorf("parsing transport: %w", err)
			}

			cfg := &config.Shared{
				Host:     host,
				Port:     port,
				Protocol: proto,
				Key:      cmd.String(shared.KeyFlag),
				Timeout:  cmd.Duration(shared.TimeoutFlag),
				Verbose:  cmd.Bool(shared.VerboseFlag),
			}
			cfg.Logger = log.NewLogger(cfg.Verbose)

			if errs := cfg.Validate(); len(errs) > 0 {
				log.ErrorMsg("Argument validation errors:\n")
				for _, err := range errs {
					log.ErrorMsg(" - %s\n", err)
				}
				return fmt.Errorf("exiting")
			}

			return run(ctx, cfg)
		},
		Flags: getFlags(),
	}
}

func run(ctx context.Context, cfg *config.Shared) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	shared.SetupSignalHandling(cancel)

	c := client.New(ctx, cfg)
	if err := c.Connect(); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer c.Close()

	conn := c.GetConnection()
	log.InfoMsg("Connected to %s\n", conn.RemoteAddr())

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	pipe(cfg, conn)
	return nil
}

func pipe(cfg *config.Shared, conn net.Conn) {
	stdio := pipeio.NewStdio()
	defer stdio.Close()

	pipeio.Pipe(stdio, conn, func(err error) {
		cfg.GetLogger().VerboseMsg("session ended: %s", err)
	})
}

func getFlags() []cli.Flag {
	return shared.GetCommonFlags()
}
