package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsense/internal/capture"
)

func newRecordCmd(opts *globalOptions) *cobra.Command {
	var (
		output   string
		count    int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record raw samples to a capture file",
		Long: `Record raw colour channels and proximity to a JSON lines capture file.

Captures can be replayed with "colorsense classify --replay". Files whose
name ends in .xz are compressed.

Examples:
  # Record 100 samples at 50ms intervals
  colorsense record -o red-swatch.jsonl --count 100 --interval 50ms

  # Record until interrupted, compressed
  colorsense record -o session.jsonl.xz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("an output file is required (--output)")
			}
			if count < 0 {
				return errors.New("count must not be negative")
			}
			if interval <= 0 {
				return errors.New("interval must be positive")
			}

			dev, closeDev, err := openDevice(opts)
			if err != nil {
				return err
			}
			defer closeDev()

			w, err := capture.Create(output, opts.logger.Named("capture"))
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			recordErr := repeat(ctx, interval, func() error {
				raw, err := dev.RawSample()
				if err != nil {
					opts.logger.Warn("skipping unreadable sample", "error", err)
					return nil
				}
				prox, err := dev.Proximity()
				if err != nil {
					opts.logger.Warn("skipping unreadable proximity", "error", err)
					return nil
				}
				if err := w.Write(capture.Record{Time: time.Now().UTC(), RawSample: raw, Proximity: prox}); err != nil {
					return err
				}
				if count > 0 && w.Count() >= count {
					return errDone
				}
				return nil
			})

			if err := w.Close(); err != nil && recordErr == nil {
				recordErr = err
			}
			opts.logger.Info("recording finished", "path", output, "records", w.Count())
			return recordErr
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "capture file to write (.xz to compress)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of samples to record (0 = until interrupted)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 100*time.Millisecond, "time between samples")
	return cmd
}
