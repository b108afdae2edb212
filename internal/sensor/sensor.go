// Package sensor drives the APDS-9151 based colour sensor over I2C and
// feeds its readings to the colour classifier.
//
// All colour channels are 20-bit little endian values; proximity is an 11-bit
// value. Reads that fail on the bus are reported as errors by the register
// accessors, while Colour maps them to the zero sample so classification
// always produces a result.
package sensor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"periph.io/x/conn/v3/i2c"

	"github.com/jmylchreest/colorsense/internal/colour"
)

// ErrUnknownDevice is returned when the PartID register does not identify
// a supported sensor.
var ErrUnknownDevice = errors.New("unknown device")

// SampleReader is a source of raw colour samples.
type SampleReader interface {
	RawSample() (colour.RawSample, error)
}

var _ SampleReader = (*Dev)(nil)

// ReadOrZero reads one sample from r. A failed read is logged and reported
// as the zero sample, so classification of the result is always defined.
func ReadOrZero(r SampleReader, logger hclog.Logger) colour.RawSample {
	raw, err := r.RawSample()
	if err != nil {
		logger.Warn("treating unreadable channels as zero", "error", err)
		return colour.RawSample{}
	}
	return raw
}

// Opts holds the configuration applied by New. Start from DefaultOpts:
// a zero Gain is 1x and a zero Confidence is a threshold of 0, both of which
// are valid settings and are applied as given. Only a zero Addr, an empty
// Palette and a nil Logger are replaced by their defaults.
type Opts struct {
	Addr       uint16
	Gain       Gain
	Palette    colour.Palette
	Confidence float64
	Logger     hclog.Logger
}

// DefaultOpts returns the options used when New is passed nil.
func DefaultOpts() Opts {
	return Opts{
		Addr:       DefaultAddress,
		Gain:       DefaultGain,
		Palette:    colour.DefaultPalette(),
		Confidence: colour.DefaultConfidence,
	}
}

// Status is a decoded MainStatus register.
type Status struct {
	ProximityReady bool
	ColourReady    bool
	Reset          bool
}

// Dev is a handle to an initialised sensor.
type Dev struct {
	mu         sync.Mutex
	c          i2c.Dev
	classifier *colour.Classifier
	logger     hclog.Logger
}

// New checks the device identity on bus b, enables the colour and proximity
// engines and applies the configured gain.
func New(b i2c.Bus, opts *Opts) (*Dev, error) {
	o := DefaultOpts()
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultAddress
	}
	if o.Palette.Len() == 0 {
		o.Palette = colour.DefaultPalette()
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}

	classifier := colour.NewClassifier(o.Palette)
	if !classifier.SetConfidence(o.Confidence) {
		return nil, fmt.Errorf("confidence %v outside [0, 1]", o.Confidence)
	}

	d := &Dev{
		c:          i2c.Dev{Bus: b, Addr: o.Addr},
		classifier: classifier,
		logger:     o.Logger,
	}

	if err := d.checkDeviceID(); err != nil {
		return nil, err
	}
	if err := d.initialise(); err != nil {
		return nil, err
	}
	if err := d.SetGain(o.Gain); err != nil {
		return nil, err
	}

	d.logger.Debug("sensor initialised", "device", d.c.String(), "gain", o.Gain.String(), "confidence", o.Confidence)
	return d, nil
}

func (d *Dev) checkDeviceID() error {
	var id [1]byte
	if err := d.readRegister(regPartID, id[:]); err != nil {
		return fmt.Errorf("failed to read part id: %w", err)
	}
	if id[0] != partID {
		return fmt.Errorf("%w: part id 0x%02x, want 0x%02x", ErrUnknownDevice, id[0], partID)
	}
	return nil
}

func (d *Dev) initialise() error {
	steps := []struct {
		reg, val byte
	}{
		{regMainCtrl, mainCtrlRGBMode | mainCtrlLightSensorEnable | mainCtrlProximitySensorEnable},
		{regProximitySensorRate, byte(ProximityRes11Bit) | byte(ProximityRate100ms)},
		{regProximitySensorPulses, defaultProximityPulses},
	}
	for _, s := range steps {
		if err := d.writeRegister(s.reg, s.val); err != nil {
			return fmt.Errorf("failed to initialise register 0x%02x: %w", s.reg, err)
		}
	}
	return nil
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return "APDS9151{" + d.c.String() + "}"
}

// Halt disables the light and proximity engines.
func (d *Dev) Halt() error {
	return d.writeRegister(regMainCtrl, 0)
}

// Classifier returns the classifier used by Colour.
func (d *Dev) Classifier() *colour.Classifier {
	return d.classifier
}

// SetConfidence updates the classification threshold and reports whether the
// value was accepted.
func (d *Dev) SetConfidence(value float64) bool {
	return d.classifier.SetConfidence(value)
}

// SetGain sets the light sensor gain.
func (d *Dev) SetGain(g Gain) error {
	if !g.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidGain, uint8(g))
	}
	if err := d.writeRegister(regLightSensorGain, byte(g)); err != nil {
		return fmt.Errorf("failed to set gain: %w", err)
	}
	return nil
}

// ConfigureColour sets the resolution and measurement rate of the colour
// channels.
func (d *Dev) ConfigureColour(res ColourResolution, rate ColourRate) error {
	return d.writeRegister(regLightSensorMeasurementRate, byte(res)|byte(rate))
}

// ConfigureProximity sets the resolution and measurement rate of the
// proximity sensor.
func (d *Dev) ConfigureProximity(res ProximityResolution, rate ProximityRate) error {
	return d.writeRegister(regProximitySensorRate, byte(res)|byte(rate))
}

// RawSample reads all four colour channels in one transaction.
func (d *Dev) RawSample() (colour.RawSample, error) {
	var raw [colourBlockBytes]byte
	if err := d.readRegister(regDataInfrared, raw[:]); err != nil {
		return colour.RawSample{}, fmt.Errorf("failed to read colour data: %w", err)
	}
	return colour.RawSample{
		Infrared: to20Bit(raw[0:3]),
		Green:    to20Bit(raw[3:6]),
		Blue:     to20Bit(raw[6:9]),
		Red:      to20Bit(raw[9:12]),
	}, nil
}

// Red reads the red channel.
func (d *Dev) Red() (uint32, error) { return d.read20Bit(regDataRed) }

// Green reads the green channel.
func (d *Dev) Green() (uint32, error) { return d.read20Bit(regDataGreen) }

// Blue reads the blue channel.
func (d *Dev) Blue() (uint32, error) { return d.read20Bit(regDataBlue) }

// IR reads the infrared channel.
func (d *Dev) IR() (uint32, error) { return d.read20Bit(regDataInfrared) }

// Proximity reads the 11-bit proximity value. Larger is closer.
func (d *Dev) Proximity() (uint32, error) {
	var raw [2]byte
	if err := d.readRegister(regProximityData, raw[:]); err != nil {
		return 0, fmt.Errorf("failed to read proximity: %w", err)
	}
	return (uint32(raw[0]) | uint32(raw[1])<<8) & mask11Bit, nil
}

// Status reads the MainStatus register. Reading it clears the reset flag.
func (d *Dev) Status() (Status, error) {
	var raw [1]byte
	if err := d.readRegister(regMainStatus, raw[:]); err != nil {
		return Status{}, fmt.Errorf("failed to read status: %w", err)
	}
	return Status{
		ProximityReady: raw[0]&statusProximityDataReady != 0,
		ColourReady:    raw[0]&statusLightDataReady != 0,
		Reset:          raw[0]&statusPowerOnReset != 0,
	}, nil
}

// HasReset reports whether the device has reset since the status register
// was last read. A reset device must be reinitialised with New.
func (d *Dev) HasReset() (bool, error) {
	s, err := d.Status()
	if err != nil {
		return false, err
	}
	return s.Reset, nil
}

// Sample reads all four colour channels. A failed read is logged and
// reported as the zero sample.
func (d *Dev) Sample() colour.RawSample {
	return ReadOrZero(d, d.logger)
}

// Colour reads a sample and classifies it. A failed read classifies as the
// zero sample, which yields Unknown for any usable threshold.
func (d *Dev) Colour() colour.Match {
	return d.classifier.Match(colour.Normalize(d.Sample()))
}

func (d *Dev) read20Bit(reg byte) (uint32, error) {
	var raw [colourChannelBytes]byte
	if err := d.readRegister(reg, raw[:]); err != nil {
		return 0, fmt.Errorf("failed to read register 0x%02x: %w", reg, err)
	}
	return to20Bit(raw[:]), nil
}

func (d *Dev) readRegister(reg byte, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.c.Tx([]byte{reg}, buf)
}

func (d *Dev) writeRegister(reg, val byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.c.Tx([]byte{reg, val}, nil)
}

func to20Bit(b []byte) uint32 {
	return (uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16) & mask20Bit
}
