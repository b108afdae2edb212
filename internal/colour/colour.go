// Package colour converts raw sensor channel counts into normalized colour
// vectors and classifies them against a palette of calibrated references.
package colour

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColour is returned when a colour name cannot be parsed.
var ErrUnknownColour = errors.New("unknown colour")

// Colour identifies a classification result.
type Colour int

const (
	Red Colour = iota
	Green
	Blue
	Yellow
	// Unknown is returned when no palette entry is confident enough.
	Unknown
)

var colourNames = map[Colour]string{
	Red:     "Red",
	Green:   "Green",
	Blue:    "Blue",
	Yellow:  "Yellow",
	Unknown: "Unknown",
}

// Colours returns every classifiable colour, excluding Unknown.
func Colours() []Colour {
	return []Colour{Red, Green, Blue, Yellow}
}

// String returns the display name of the colour.
func (c Colour) String() string {
	if name, ok := colourNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Colour(%d)", int(c))
}

// ParseColour returns the colour with the given display name, ignoring case.
func ParseColour(s string) (Colour, error) {
	for c, name := range colourNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownColour, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Colour) MarshalText() ([]byte, error) {
	if _, ok := colourNames[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColour, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Colour) UnmarshalText(text []byte) error {
	parsed, err := ParseColour(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
