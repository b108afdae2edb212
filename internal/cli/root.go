// Package cli provides the command-line interface for colorsense.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsense/internal/colour"
	"github.com/jmylchreest/colorsense/internal/sensor"
	"github.com/jmylchreest/colorsense/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	bus        string
	addr       uint16
	gain       sensor.Gain
	confidence float64
	verbose    bool
	quiet      bool

	logger hclog.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{
		addr:       sensor.DefaultAddress,
		gain:       sensor.DefaultGain,
		confidence: colour.DefaultConfidence,
	}

	rootCmd := &cobra.Command{
		Use:   "colorsense",
		Short: "Read and classify colours from an I2C colour sensor",
		Long: `colorsense talks to an APDS-9151 colour and proximity sensor over I2C.

It reads the raw red, green, blue and infrared channels, normalizes them
and matches the result against a palette of calibrated reference colours.

Every flag can also be set through the environment as COLORSENSE_<FLAG>,
for example COLORSENSE_BUS=1 or COLORSENSE_CONFIDENCE=0.9.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindEnv(cmd.Flags(), os.LookupEnv); err != nil {
				return err
			}
			if !(opts.confidence >= 0 && opts.confidence <= 1) {
				return fmt.Errorf("invalid confidence %v (must be between 0 and 1)", opts.confidence)
			}
			opts.logger = newLogger(cmd, opts.verbose, opts.quiet)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.bus, "bus", "", "I2C bus name or number (default: first available)")
	flags.Uint16Var(&opts.addr, "addr", sensor.DefaultAddress, "I2C device address")
	flags.Var(&opts.gain, "gain", "light sensor gain (1x, 3x, 6x, 9x, 18x)")
	flags.Float64Var(&opts.confidence, "confidence", colour.DefaultConfidence, "minimum confidence for a colour match (0-1)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newReadCmd(opts))
	rootCmd.AddCommand(newClassifyCmd(opts))
	rootCmd.AddCommand(newPaletteCmd(opts))
	rootCmd.AddCommand(newRecordCmd(opts))

	return rootCmd
}

// newLogger builds the root logger from the verbosity flags.
func newLogger(cmd *cobra.Command, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "colorsense",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
