package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colorsense/internal/capture"
	"github.com/jmylchreest/colorsense/internal/colour"
	"github.com/jmylchreest/colorsense/internal/sensor"
)

// classification is the result of classifying one sample.
type classification struct {
	Time       time.Time               `json:"time"`
	Raw        colour.RawSample        `json:"raw"`
	Normalized colour.NormalizedSample `json:"normalized"`
	Colour     colour.Colour           `json:"colour"`
	Confidence float64                 `json:"confidence"`
	Scores     []colour.Score          `json:"scores,omitempty"`
}

func classify(c *colour.Classifier, t time.Time, raw colour.RawSample, withScores bool) classification {
	n := colour.Normalize(raw)
	m := c.Match(n)
	res := classification{
		Time:       t,
		Raw:        raw,
		Normalized: n,
		Colour:     m.Colour,
		Confidence: m.Confidence,
	}
	if withScores {
		res.Scores = c.Scores(n)
	}
	return res
}

func newClassifyCmd(opts *globalOptions) *cobra.Command {
	var (
		watch  time.Duration
		replay string
		scores bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify the colour in front of the sensor",
		Long: `Read a sample, normalize it and match it against the calibrated palette.

A sample matches a palette colour when its confidence, 1 minus the normalized
Euclidean distance between the two vectors, is strictly above --confidence.
When no colour qualifies the result is Unknown.

Examples:
  # Classify once
  colorsense classify

  # Classify continuously with per-colour scores
  colorsense classify --watch 200ms --scores

  # Classify a recorded capture instead of the live sensor
  colorsense classify --replay samples.jsonl.xz --confidence 0.9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tty := isTerminal(out)
			emit := func(c classification) error {
				if format == formatJSON {
					return writeJSON(out, c)
				}
				return printClassification(out, c, tty)
			}

			if replay != "" {
				return replayCapture(opts, replay, scores, emit)
			}

			dev, closeDev, err := openDevice(opts)
			if err != nil {
				return err
			}
			defer closeDev()

			ctx, cancel := signalContext(cmd)
			defer cancel()

			logger := opts.logger.Named("sensor")
			return repeat(ctx, watch, func() error {
				raw := sensor.ReadOrZero(dev, logger)
				return emit(classify(dev.Classifier(), time.Now().UTC(), raw, scores))
			})
		},
	}

	cmd.Flags().DurationVarP(&watch, "watch", "w", 0, "keep classifying at this interval until interrupted")
	cmd.Flags().StringVar(&replay, "replay", "", "classify samples from a capture file instead of the sensor")
	cmd.Flags().BoolVar(&scores, "scores", false, "include the confidence of every palette colour")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format (table, json)")
	return cmd
}

var _ sensor.SampleReader = (*capture.Reader)(nil)

// replayCapture classifies every record of a capture file.
func replayCapture(opts *globalOptions, path string, scores bool, emit func(classification) error) error {
	c := colour.NewClassifier(colour.DefaultPalette())
	if !c.SetConfidence(opts.confidence) {
		return fmt.Errorf("invalid confidence %v (must be between 0 and 1)", opts.confidence)
	}

	r, err := capture.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	count, err := drain(r, func(raw colour.RawSample) error {
		return emit(classify(c, r.Last().Time, raw, scores))
	})
	if err != nil {
		return err
	}

	opts.logger.Debug("replay finished", "path", path, "records", count)
	return nil
}

// drain passes every sample from src to fn until src reports io.EOF.
func drain(src sensor.SampleReader, fn func(colour.RawSample) error) (int, error) {
	count := 0
	for {
		raw, err := src.RawSample()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if err := fn(raw); err != nil {
			return count, err
		}
		count++
	}
}

func printClassification(w io.Writer, c classification, tty bool) error {
	label := c.Colour.String()
	if tty {
		label = colour.Preview(c.Colour.Swatch(), 2) + " " + label
	}
	if _, err := fmt.Fprintf(w, "%s  %-10s %.4f  %s\n", c.Time.Format(time.RFC3339Nano), label, c.Confidence, c.Normalized); err != nil {
		return err
	}

	if len(c.Scores) == 0 {
		return nil
	}
	t := NewTable([]string{"Colour", "Confidence", "Match"})
	t.SetAlignRight(1)
	for _, s := range c.Scores {
		mark := ""
		if s.Colour == c.Colour {
			mark = "*"
		}
		t.AddRow([]string{s.Colour.String(), fmt.Sprintf("%.4f", s.Confidence), mark})
	}
	_, err := fmt.Fprint(w, t.Render())
	return err
}
