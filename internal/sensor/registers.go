package sensor

// DefaultAddress is the fixed I2C address of the sensor.
const DefaultAddress uint16 = 0x52

// partID is the value of the PartID register for a genuine device.
const partID = 0xC2

// Registers. Names follow the datasheet.
const (
	regMainCtrl                   = 0x00
	regProximitySensorLED         = 0x01
	regProximitySensorPulses      = 0x02
	regProximitySensorRate        = 0x03
	regLightSensorMeasurementRate = 0x04
	regLightSensorGain            = 0x05
	regPartID                     = 0x06
	regMainStatus                 = 0x07
	regProximityData              = 0x08
	regDataInfrared               = 0x0A
	regDataGreen                  = 0x0D
	regDataBlue                   = 0x10
	regDataRed                    = 0x13
)

// MainCtrl bits.
const (
	mainCtrlProximitySensorEnable = 0x01
	mainCtrlLightSensorEnable     = 0x02
	mainCtrlRGBMode               = 0x04
)

// MainStatus bits.
const (
	statusProximityDataReady = 0x01
	statusLightDataReady     = 0x08
	statusPowerOnReset       = 0x20
)

const (
	defaultProximityPulses = 32

	colourChannelBytes = 3
	colourBlockBytes   = 4 * colourChannelBytes

	mask20Bit = 0x0FFFFF
	mask11Bit = 0x07FF
)

// ProximityResolution selects the bit width of proximity measurements.
type ProximityResolution uint8

const (
	ProximityRes8Bit  ProximityResolution = 0x00
	ProximityRes9Bit  ProximityResolution = 0x08
	ProximityRes10Bit ProximityResolution = 0x10
	ProximityRes11Bit ProximityResolution = 0x18
)

// ProximityRate selects how often the proximity sensor measures.
type ProximityRate uint8

const (
	ProximityRate6ms   ProximityRate = 1
	ProximityRate12ms  ProximityRate = 2
	ProximityRate25ms  ProximityRate = 3
	ProximityRate50ms  ProximityRate = 4
	ProximityRate100ms ProximityRate = 5
	ProximityRate200ms ProximityRate = 6
	ProximityRate400ms ProximityRate = 7
)

// ColourResolution selects the bit width of colour measurements.
type ColourResolution uint8

const (
	ColourRes20Bit ColourResolution = 0x00
	ColourRes19Bit ColourResolution = 0x10
	ColourRes18Bit ColourResolution = 0x20
	ColourRes17Bit ColourResolution = 0x30
	ColourRes16Bit ColourResolution = 0x40
	ColourRes13Bit ColourResolution = 0x50
)

// ColourRate selects how often the colour sensor measures.
type ColourRate uint8

const (
	ColourRate25ms   ColourRate = 0
	ColourRate50ms   ColourRate = 1
	ColourRate100ms  ColourRate = 2
	ColourRate200ms  ColourRate = 3
	ColourRate500ms  ColourRate = 4
	ColourRate1000ms ColourRate = 5
	ColourRate2000ms ColourRate = 7
)
