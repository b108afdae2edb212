package colour

import (
	"math"
	"sync/atomic"
)

// DefaultConfidence is the threshold a new Classifier starts with.
const DefaultConfidence = 0.95

// maxDistance bounds the distance between two unit-sum vectors in [0,1]^4.
const maxDistance = math.Sqrt2

// Confidence scores how close sample is to ref: 1 for identical vectors,
// falling linearly with Euclidean distance. The result is not clamped and
// goes negative for sufficiently divergent vectors.
func Confidence(sample, ref NormalizedSample) float64 {
	dr := sample.Red - ref.Red
	dg := sample.Green - ref.Green
	db := sample.Blue - ref.Blue
	di := sample.Infrared - ref.Infrared

	d := math.Sqrt(dr*dr + dg*dg + db*db + di*di)
	return 1 - d/maxDistance
}

// Score is the confidence of one palette reference for a sample.
type Score struct {
	Colour     Colour  `json:"colour"`
	Confidence float64 `json:"confidence"`
}

// Match is the outcome of a classification. Confidence is zero when Colour
// is Unknown.
type Match struct {
	Colour     Colour  `json:"colour"`
	Confidence float64 `json:"confidence"`
}

// Classifier matches normalized samples against a palette. The palette is
// fixed at construction; the confidence threshold may be changed at any
// time and is safe for concurrent use.
type Classifier struct {
	palette   Palette
	threshold atomic.Uint64
}

// NewClassifier returns a classifier over p using DefaultConfidence.
func NewClassifier(p Palette) *Classifier {
	c := &Classifier{palette: p}
	c.threshold.Store(math.Float64bits(DefaultConfidence))
	return c
}

// Palette returns the palette the classifier matches against.
func (c *Classifier) Palette() Palette {
	return c.palette
}

// Threshold returns the current confidence threshold.
func (c *Classifier) Threshold() float64 {
	return math.Float64frombits(c.threshold.Load())
}

// SetConfidence updates the threshold when 0 <= value <= 1 and reports
// whether it did. Out of range values, NaN included, leave it unchanged.
func (c *Classifier) SetConfidence(value float64) bool {
	if !(value >= 0 && value <= 1) {
		return false
	}
	c.threshold.Store(math.Float64bits(value))
	return true
}

// Scores returns the confidence of every palette reference, in palette order.
func (c *Classifier) Scores(sample NormalizedSample) []Score {
	scores := make([]Score, 0, c.palette.Len())
	for _, ref := range c.palette.refs {
		scores = append(scores, Score{Colour: ref.Colour, Confidence: Confidence(sample, ref.Vector)})
	}
	return scores
}

// Match returns the most confident reference whose confidence strictly
// exceeds the threshold. A later reference replaces the current best only
// when strictly more confident.
func (c *Classifier) Match(sample NormalizedSample) Match {
	threshold := c.Threshold()

	best := Match{Colour: Unknown}
	for _, ref := range c.palette.refs {
		conf := Confidence(sample, ref.Vector)
		if conf > threshold && conf > best.Confidence {
			best = Match{Colour: ref.Colour, Confidence: conf}
		}
	}
	return best
}

// Classify returns the label of the best match, or Unknown.
func (c *Classifier) Classify(sample NormalizedSample) Colour {
	return c.Match(sample).Colour
}

// ClassifyRaw normalizes raw and classifies it.
func (c *Classifier) ClassifyRaw(raw RawSample) Colour {
	return c.Classify(Normalize(raw))
}
