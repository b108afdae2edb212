package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsense/internal/colour"
)

// reading is one raw sensor reading as printed by the read command.
type reading struct {
	Time       time.Time               `json:"time"`
	Raw        colour.RawSample        `json:"raw"`
	Normalized colour.NormalizedSample `json:"normalized"`
	Proximity  uint32                  `json:"proximity"`
}

func newReadCmd(opts *globalOptions) *cobra.Command {
	var (
		watch  time.Duration
		format string
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read raw colour channels and proximity",
		Long: `Read the raw red, green, blue and infrared channels and the proximity value.

Examples:
  # Read once from the first I2C bus
  colorsense read

  # Read every 250ms until interrupted, as JSON lines
  colorsense read --watch 250ms --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			dev, closeDev, err := openDevice(opts)
			if err != nil {
				return err
			}
			defer closeDev()

			ctx, cancel := signalContext(cmd)
			defer cancel()

			out := cmd.OutOrStdout()
			return repeat(ctx, watch, func() error {
				raw, err := dev.RawSample()
				if err != nil {
					return err
				}
				prox, err := dev.Proximity()
				if err != nil {
					return err
				}
				r := reading{
					Time:       time.Now().UTC(),
					Raw:        raw,
					Normalized: colour.Normalize(raw),
					Proximity:  prox,
				}

				switch {
				case format == formatJSON:
					return writeJSON(out, r)
				case watch > 0:
					_, err := fmt.Fprintf(out, "%s  %s  prox=%d\n", r.Time.Format(time.RFC3339Nano), raw, prox)
					return err
				default:
					_, err := fmt.Fprint(out, readingTable(r).Render())
					return err
				}
			})
		},
	}

	cmd.Flags().DurationVarP(&watch, "watch", "w", 0, "keep reading at this interval until interrupted")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json)")
	return cmd
}

func readingTable(r reading) *Table {
	t := NewTable([]string{"Channel", "Raw", "Normalized"})
	t.SetAlignRight(1)
	t.SetAlignRight(2)
	t.AddRow([]string{"red", fmt.Sprint(r.Raw.Red), fmt.Sprintf("%.4f", r.Normalized.Red)})
	t.AddRow([]string{"green", fmt.Sprint(r.Raw.Green), fmt.Sprintf("%.4f", r.Normalized.Green)})
	t.AddRow([]string{"blue", fmt.Sprint(r.Raw.Blue), fmt.Sprintf("%.4f", r.Normalized.Blue)})
	t.AddRow([]string{"ir", fmt.Sprint(r.Raw.Infrared), fmt.Sprintf("%.4f", r.Normalized.Infrared)})
	t.AddRow([]string{"proximity", fmt.Sprint(r.Proximity), ""})
	return t
}
