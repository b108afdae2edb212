package cli

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/jmylchreest/colorsense/internal/colour"
	"github.com/jmylchreest/colorsense/internal/sensor"
)

// openBus opens the named I2C bus. Tests replace it with a recorded bus.
var openBus = func(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise host drivers: %w", err)
	}
	return i2creg.Open(name)
}

// openDevice opens the bus and initialises the sensor on it. The returned
// function halts the sensor and closes the bus.
func openDevice(opts *globalOptions) (*sensor.Dev, func(), error) {
	bus, err := openBus(opts.bus)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open I2C bus %q: %w", opts.bus, err)
	}

	dev, err := sensor.New(bus, &sensor.Opts{
		Addr:       opts.addr,
		Gain:       opts.gain,
		Palette:    colour.DefaultPalette(),
		Confidence: opts.confidence,
		Logger:     opts.logger.Named("sensor"),
	})
	if err != nil {
		bus.Close()
		return nil, nil, fmt.Errorf("failed to initialise sensor: %w", err)
	}
	opts.logger.Debug("opened sensor", "bus", bus.String(), "device", dev.String())

	return dev, func() {
		if err := dev.Halt(); err != nil {
			opts.logger.Warn("failed to halt sensor", "error", err)
		}
		if err := bus.Close(); err != nil {
			opts.logger.Warn("failed to close bus", "error", err)
		}
	}, nil
}
