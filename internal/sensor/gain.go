package sensor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGain is returned for gain values the sensor does not support.
var ErrInvalidGain = errors.New("invalid gain")

// Gain is the light sensor analog gain.
type Gain uint8

const (
	Gain1x Gain = iota
	Gain3x
	Gain6x
	Gain9x
	Gain18x
)

// DefaultGain is applied during initialisation.
const DefaultGain = Gain3x

var gainNames = []string{"1x", "3x", "6x", "9x", "18x"}

// Valid reports whether g is a supported gain.
func (g Gain) Valid() bool {
	return int(g) < len(gainNames)
}

// String returns the gain as "3x" etc.
func (g Gain) String() string {
	if !g.Valid() {
		return fmt.Sprintf("Gain(%d)", uint8(g))
	}
	return gainNames[g]
}

// ParseGain parses "1x", "3x", "6x", "9x" or "18x". The trailing x is optional.
func ParseGain(s string) (Gain, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasSuffix(s, "x") {
		s += "x"
	}
	for i, name := range gainNames {
		if name == s {
			return Gain(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidGain, s, strings.Join(gainNames, ", "))
}

// Set implements pflag.Value.
func (g *Gain) Set(s string) error {
	parsed, err := ParseGain(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Type implements pflag.Value.
func (g *Gain) Type() string {
	return "gain"
}
