package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsense/internal/colour"
)

func newPaletteCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the calibrated reference colours",
		Long: `Show the built-in palette of calibrated reference colours.

Each reference is the normalized red, green, blue and infrared vector the
sensor reports for a known swatch. References are listed in match order:
when two references are equally confident, the one listed first wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			p := colour.DefaultPalette()
			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, p.References())
			}

			tty := isTerminal(out)
			t := NewTable([]string{"#", "Colour", "Red", "Green", "Blue", "IR", "Swatch"})
			for col := 2; col <= 5; col++ {
				t.SetAlignRight(col)
			}
			for i, ref := range p.All() {
				v := ref.Vector
				row := []string{
					fmt.Sprint(i + 1),
					ref.Colour.String(),
					fmt.Sprintf("%.4f", v.Red),
					fmt.Sprintf("%.4f", v.Green),
					fmt.Sprintf("%.4f", v.Blue),
					fmt.Sprintf("%.4f", v.Infrared),
				}
				swatch := ref.Colour.Swatch()
				if tty {
					row = append(row, colour.PreviewWithText(swatch, swatch.Hex(), 9))
				} else {
					row = append(row, swatch.Hex())
				}
				t.AddRow(row)
			}

			opts.logger.Debug("listing palette", "references", p.Len())
			_, err := fmt.Fprint(out, t.Render())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json)")
	return cmd
}
