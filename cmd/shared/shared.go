// Package shared provides common CLI flag definitions and utility functions
// used across mocktcp's command-line interface.
package shared

import (
	"strings"

	"github.com/urfave/cli/v3"

	"dominicbreuker/mocktcp/pkg/config"
)

const categoryCommon = "common"

// KeyFlag is the name of the flag to specify the TLS key seed.
const KeyFlag = "key"

// VerboseFlag is the name of the flag to enable verbose logging.
const VerboseFlag = "verbose"

// TimeoutFlag is the name of the flag to specify the idle timeout.
const TimeoutFlag = "timeout"

// LogFileFlag is the name of the flag to specify a wire capture file.
const LogFileFlag = "log"

// GetBaseDescription returns the base description text for transport
// specifications used in CLI commands.
func GetBaseDescription() string {
	return strings.Join([]string{
		"Specify transport like this: tcp://127.0.0.1:4000 (supports tcp|tls|ws)",
		"Use port 0 when serving to bind an ephemeral port.",
	}, "\n")
}

// GetArgsUsage returns the arguments usage string for CLI commands.
func GetArgsUsage() string {
	return strings.Join([]string{
		"transport",
	}, " ")
}

// GetCommonFlags returns the CLI flags shared by the serve and probe
// commands.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     KeyFlag,
			Aliases:  []string{"k"},
			Usage:    "Seed for the deterministic TLS certificate, leave empty for a random one",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.DurationFlag{
			Name:     TimeoutFlag,
			Aliases:  []string{"t"},
			Usage:    "Idle timeout for blocking actions (recv, send)",
			Category: categoryCommon,
			Value:    config.DefaultTimeout,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{"l"},
			Usage:    "File capturing all bytes sent and received",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
	}
}
