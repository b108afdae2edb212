package colour

// Reference is a calibrated colour swatch: a label and the normalized
// channel vector the sensor reports when looking at it.
type Reference struct {
	Colour Colour           `json:"colour"`
	Vector NormalizedSample `json:"vector"`
}

// ReferenceFromRaw builds a reference from an unnormalized calibration reading.
func ReferenceFromRaw(c Colour, raw RawSample) Reference {
	return Reference{Colour: c, Vector: Normalize(raw)}
}

// Palette is an immutable, ordered list of references. Order decides ties:
// an earlier reference wins over a later one with equal confidence.
type Palette struct {
	refs []Reference
}

// NewPalette creates a palette holding a copy of refs.
func NewPalette(refs ...Reference) Palette {
	return Palette{refs: append([]Reference(nil), refs...)}
}

// defaultCalibration holds normalized readings of the stock swatches,
// taken at 3x gain under the on-board LED.
var defaultCalibration = []Reference{
	{Colour: Red, Vector: NormalizedSample{Red: 0.5190, Green: 0.3126, Blue: 0.1075, Infrared: 0.0609}},
	{Colour: Green, Vector: NormalizedSample{Red: 0.1726, Green: 0.5820, Blue: 0.1968, Infrared: 0.0486}},
	{Colour: Blue, Vector: NormalizedSample{Red: 0.1250, Green: 0.4107, Blue: 0.4073, Infrared: 0.0570}},
	{Colour: Yellow, Vector: NormalizedSample{Red: 0.3152, Green: 0.5329, Blue: 0.1057, Infrared: 0.0462}},
}

// DefaultPalette returns the built-in calibrated palette.
func DefaultPalette() Palette {
	return NewPalette(defaultCalibration...)
}

// Len returns the number of references in the palette.
func (p Palette) Len() int {
	return len(p.refs)
}

// References returns a copy of the references in palette order.
func (p Palette) References() []Reference {
	return append([]Reference(nil), p.refs...)
}

// Lookup returns the first reference labelled c.
func (p Palette) Lookup(c Colour) (Reference, bool) {
	for _, ref := range p.refs {
		if ref.Colour == c {
			return ref, true
		}
	}
	return Reference{}, false
}

// All returns an iterator over the references in palette order.
func (p Palette) All() func(func(int, Reference) bool) {
	return func(yield func(int, Reference) bool) {
		for i, ref := range p.refs {
			if !yield(i, ref) {
				return
			}
		}
	}
}
