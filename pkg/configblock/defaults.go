package configblock

// =================================
// Compiled-in parameter defaults
// =================================
const (
	DefaultRadioChannel = 80
	DefaultRadioSpeed   = Speed2M
	DefaultRadioAddress = 0xE7E7E7E7E7 // Well-known factory link address
	DefaultCalibPitch   = 0.0
	DefaultCalibRoll    = 0.0
)

// defaultParameters is the table used whenever the persisted record cannot be trusted.
var defaultParameters = Parameters{
	RadioChannel: DefaultRadioChannel,
	RadioSpeed:   DefaultRadioSpeed,
	RadioAddress: DefaultRadioAddress,
	CalibPitch:   DefaultCalibPitch,
	CalibRoll:    DefaultCalibRoll,
}

// DefaultParameters returns a copy of the compiled-in default table.
func DefaultParameters() Parameters {
	return defaultParameters
}
