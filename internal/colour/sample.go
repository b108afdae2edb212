package colour

import "fmt"

// RawSample holds the unsigned channel counts read from the sensor.
type RawSample struct {
	Red      uint32 `json:"red"`
	Green    uint32 `json:"green"`
	Blue     uint32 `json:"blue"`
	Infrared uint32 `json:"ir"`
}

// Magnitude returns the sum of all four channels.
func (s RawSample) Magnitude() uint64 {
	return uint64(s.Red) + uint64(s.Green) + uint64(s.Blue) + uint64(s.Infrared)
}

// String returns the sample as "r=.. g=.. b=.. ir=..".
func (s RawSample) String() string {
	return fmt.Sprintf("r=%d g=%d b=%d ir=%d", s.Red, s.Green, s.Blue, s.Infrared)
}

// NormalizedSample is a channel vector whose components sum to 1, or the
// zero vector when the source sample carried no signal.
type NormalizedSample struct {
	Red      float64 `json:"red"`
	Green    float64 `json:"green"`
	Blue     float64 `json:"blue"`
	Infrared float64 `json:"ir"`
}

// Sum returns the sum of the four components.
func (n NormalizedSample) Sum() float64 {
	return n.Red + n.Green + n.Blue + n.Infrared
}

// IsZero reports whether every component is zero.
func (n NormalizedSample) IsZero() bool {
	return n == NormalizedSample{}
}

// String returns the components with four decimal places.
func (n NormalizedSample) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f, %.4f)", n.Red, n.Green, n.Blue, n.Infrared)
}

// Normalize divides each channel by the total magnitude. An all-zero sample
// has no colour signal and yields the zero vector.
func Normalize(s RawSample) NormalizedSample {
	magnitude := s.Magnitude()
	if magnitude == 0 {
		return NormalizedSample{}
	}

	m := float64(magnitude)
	return NormalizedSample{
		Red:      float64(s.Red) / m,
		Green:    float64(s.Green) / m,
		Blue:     float64(s.Blue) / m,
		Infrared: float64(s.Infrared) / m,
	}
}
