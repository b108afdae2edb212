package sensor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"

	"github.com/jmylchreest/colorsense/internal/colour"
)

var errBus = errors.New("bus error")

// failingBus fails every transaction.
type failingBus struct{}

func (failingBus) String() string                  { return "failing" }
func (failingBus) Tx(uint16, []byte, []byte) error { return errBus }
func (failingBus) SetSpeed(physic.Frequency) error { return nil }

// initOps is the handshake New performs with default options.
func initOps() []i2ctest.IO {
	return []i2ctest.IO{
		{Addr: DefaultAddress, W: []byte{regPartID}, R: []byte{partID}},
		{Addr: DefaultAddress, W: []byte{regMainCtrl, 0x07}},
		{Addr: DefaultAddress, W: []byte{regProximitySensorRate, 0x1D}},
		{Addr: DefaultAddress, W: []byte{regProximitySensorPulses, 32}},
		{Addr: DefaultAddress, W: []byte{regLightSensorGain, byte(Gain3x)}},
	}
}

func newTestDev(t *testing.T, ops ...i2ctest.IO) (*Dev, *i2ctest.Playback) {
	t.Helper()
	bus := &i2ctest.Playback{Ops: append(initOps(), ops...), DontPanic: true}
	d, err := New(bus, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d, bus
}

func TestNew(t *testing.T) {
	d, bus := newTestDev(t)

	if err := bus.Close(); err != nil {
		t.Errorf("handshake incomplete: %v", err)
	}
	if got := d.Classifier().Threshold(); got != colour.DefaultConfidence {
		t.Errorf("Threshold() = %v, want %v", got, colour.DefaultConfidence)
	}
}

func TestNewUnknownDevice(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: DefaultAddress, W: []byte{regPartID}, R: []byte{0x55}}},
		DontPanic: true,
	}
	if _, err := New(bus, nil); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("New() error = %v, want ErrUnknownDevice", err)
	}
}

func TestNewOptions(t *testing.T) {
	ops := initOps()
	ops[4].W = []byte{regLightSensorGain, byte(Gain18x)}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}

	opts := DefaultOpts()
	opts.Gain = Gain18x
	opts.Confidence = 0.7
	d, err := New(bus, &opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := d.Classifier().Threshold(); got != 0.7 {
		t.Errorf("Threshold() = %v, want 0.7", got)
	}

	opts.Confidence = 2
	if _, err := New(&i2ctest.Playback{DontPanic: true}, &opts); err == nil {
		t.Error("New() with confidence 2 succeeded, want error")
	}
}

func TestRawSample(t *testing.T) {
	d, bus := newTestDev(t, i2ctest.IO{
		Addr: DefaultAddress,
		W:    []byte{regDataInfrared},
		R: []byte{
			0x1B, 0x01, 0x00, // IR 283
			0xAC, 0x05, 0x00, // green 1452
			0xF3, 0x01, 0x00, // blue 499
			0x6B, 0x09, 0xF0, // red 2411, upper nibble masked
		},
	})

	got, err := d.RawSample()
	if err != nil {
		t.Fatalf("RawSample() error = %v", err)
	}
	want := colour.RawSample{Red: 2411, Green: 1452, Blue: 499, Infrared: 283}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RawSample() mismatch (-want +got):\n%s", diff)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
}

func TestSingleChannelReads(t *testing.T) {
	d, _ := newTestDev(t,
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regDataRed}, R: []byte{0xFF, 0xFF, 0xFF}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regDataGreen}, R: []byte{0x02, 0x00, 0x00}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regDataBlue}, R: []byte{0x00, 0x01, 0x00}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regDataInfrared}, R: []byte{0x00, 0x00, 0x01}},
	)

	tests := []struct {
		name string
		read func() (uint32, error)
		want uint32
	}{
		{"red", d.Red, mask20Bit},
		{"green", d.Green, 2},
		{"blue", d.Blue, 256},
		{"ir", d.IR, 65536},
	}
	for _, tt := range tests {
		got, err := tt.read()
		if err != nil {
			t.Fatalf("%s: error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestProximity(t *testing.T) {
	d, _ := newTestDev(t, i2ctest.IO{Addr: DefaultAddress, W: []byte{regProximityData}, R: []byte{0xFF, 0xFF}})

	got, err := d.Proximity()
	if err != nil {
		t.Fatalf("Proximity() error = %v", err)
	}
	if got != 2047 {
		t.Errorf("Proximity() = %d, want 2047", got)
	}
}

func TestStatus(t *testing.T) {
	d, _ := newTestDev(t,
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regMainStatus}, R: []byte{0x29}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regMainStatus}, R: []byte{0x08}},
	)

	s, err := d.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if diff := cmp.Diff(Status{ProximityReady: true, ColourReady: true, Reset: true}, s); diff != "" {
		t.Errorf("Status() mismatch (-want +got):\n%s", diff)
	}

	reset, err := d.HasReset()
	if err != nil || reset {
		t.Errorf("HasReset() = %v, %v; want false, nil", reset, err)
	}
}

func TestConfigure(t *testing.T) {
	d, bus := newTestDev(t,
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regLightSensorMeasurementRate, 0x22}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regProximitySensorRate, 0x0B}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regLightSensorGain, byte(Gain9x)}},
		i2ctest.IO{Addr: DefaultAddress, W: []byte{regMainCtrl, 0x00}},
	)

	if err := d.ConfigureColour(ColourRes18Bit, ColourRate100ms); err != nil {
		t.Fatal(err)
	}
	if err := d.ConfigureProximity(ProximityRes9Bit, ProximityRate25ms); err != nil {
		t.Fatal(err)
	}
	if err := d.SetGain(Gain9x); err != nil {
		t.Fatal(err)
	}
	if err := d.SetGain(Gain(9)); !errors.Is(err, ErrInvalidGain) {
		t.Errorf("SetGain(9) error = %v, want ErrInvalidGain", err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Error(err)
	}
}

func TestColour(t *testing.T) {
	// Counts summing to 10000 reproduce the built-in red reference exactly.
	d, _ := newTestDev(t, i2ctest.IO{
		Addr: DefaultAddress,
		W:    []byte{regDataInfrared},
		R: []byte{
			0x61, 0x02, 0x00, // IR 609
			0x36, 0x0C, 0x00, // green 3126
			0x33, 0x04, 0x00, // blue 1075
			0x46, 0x14, 0x00, // red 5190
		},
	})

	if got := d.Colour(); got.Colour != colour.Red {
		t.Errorf("Colour() = %v, want Red", got.Colour)
	}
}

func TestColourBusFailureIsUnknown(t *testing.T) {
	d := &Dev{
		c:          i2c.Dev{Bus: failingBus{}, Addr: DefaultAddress},
		classifier: colour.NewClassifier(colour.DefaultPalette()),
		logger:     hclog.NewNullLogger(),
	}

	if _, err := d.RawSample(); !errors.Is(err, errBus) {
		t.Errorf("RawSample() error = %v, want bus error", err)
	}
	if got := d.Colour(); got.Colour != colour.Unknown {
		t.Errorf("Colour() = %v, want Unknown", got.Colour)
	}
}

func TestNewBusFailure(t *testing.T) {
	if _, err := New(failingBus{}, nil); !errors.Is(err, errBus) {
		t.Errorf("New() error = %v, want bus error", err)
	}
}

func TestParseGain(t *testing.T) {
	tests := []struct {
		in      string
		want    Gain
		wantErr bool
	}{
		{"1x", Gain1x, false},
		{"3X", Gain3x, false},
		{"18", Gain18x, false},
		{" 9x ", Gain9x, false},
		{"2x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGain(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGain(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseGain(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	var g Gain
	if err := g.Set("6x"); err != nil || g != Gain6x || g.String() != "6x" {
		t.Errorf("Set(6x) -> %v, %v", g, err)
	}
}

type stubReader struct {
	raw colour.RawSample
	err error
}

func (s stubReader) RawSample() (colour.RawSample, error) { return s.raw, s.err }

func TestReadOrZero(t *testing.T) {
	logger := hclog.NewNullLogger()
	want := colour.RawSample{Red: 7, Green: 8, Blue: 9, Infrared: 1}

	if got := ReadOrZero(stubReader{raw: want}, logger); got != want {
		t.Errorf("ReadOrZero() = %v, want %v", got, want)
	}
	if got := ReadOrZero(stubReader{raw: want, err: errBus}, logger); got != (colour.RawSample{}) {
		t.Errorf("ReadOrZero() on error = %v, want zero sample", got)
	}
}

func TestNewZeroOptsAppliedAsGiven(t *testing.T) {
	ops := initOps()
	ops[4].W = []byte{regLightSensorGain, byte(Gain1x)}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}

	d, err := New(bus, &Opts{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("handshake with zero gain incomplete: %v", err)
	}
	if got := d.Classifier().Threshold(); got != 0 {
		t.Errorf("Threshold() = %v, want 0 from zero Opts", got)
	}
	if d.Classifier().Palette().Len() != colour.DefaultPalette().Len() {
		t.Error("empty palette not replaced by the default")
	}
}
