// Package serve provides the serve command, which runs a scripted mock
// endpoint from a script file until every scripted conversation finished.
package serve

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"dominicbreuker/mocktcp/cmd/shared"
	"dominicbreuker/mocktcp/pkg/config"
	"dominicbreuker/mocktcp/pkg/log"
	"dominicbreuker/mocktcp/pkg/mockserver"
	"dominicbreuker/mocktcp/pkg/script"
)

// ScriptFlag is the name of the flag to specify the script file.
const ScriptFlag = "script"

// GetCommand ...
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Usage:       "Run a scripted endpoint",
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
				LogFile:  cmd.String(shared.LogFileFlag),
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

			scripts, err := script.Load(cmd.String(ScriptFlag))
			if err != nil {
				return fmt.Errorf("loading script file: %w", err)
			}

			return run(ctx, cfg, scripts)
		},
		Flags: getFlags(),
	}
}

func run(ctx context.Context, cfg *config.Shared, scripts []*script.Script) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	shared.SetupSignalHandling(cancel)

	s, err := mockserver.Start(cfg, scripts)
	if err != nil {
		return fmt.Errorf("mockserver.Start(): %w", err)
	}
	defer s.Close()

	log.InfoMsg("Listening on %s, %d script(s) queued\n", s.ConnectString(), len(scripts))

	if err := s.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.InfoMsg("Shutting down\n")
			return nil
		}
		return fmt.Errorf("waiting for scripts to finish: %w", err)
	}

	log.InfoMsg("All scripts finished\n")
	return nil
}

func getFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     ScriptFlag,
			Aliases:  []string{"f"},
			Usage:    "YAML script file, one action list per expected connection",
			Required: true,
		},
	}

	flags = append(flags, shared.GetCommonFlags()...)

	return flags
}
