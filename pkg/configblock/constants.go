package configblock

// Core record constants that never change
// For the compiled-in parameter table, see defaults.go

const (
	// Record identity
	MagicNumber   = 0x0000BEEF // Anything else is erased or foreign storage
	RecordVersion = 1          // Only supported layout

	// Fixed sizes - part of the record format
	RecordSize   = 28 // Total persisted size
	ChecksumSize = 4  // Adler-32, little-endian
	BodySize     = RecordSize - ChecksumSize

	// Field offsets
	offsetMagic    = 0
	offsetVersion  = 4
	offsetChannel  = 5
	offsetSpeed    = 6
	offsetReserved = 7
	offsetAddress  = 8
	offsetPitch    = 16
	offsetRoll     = 20
	offsetChecksum = BodySize

	// Radio hardware limits
	MaxRadioChannel = 125 // 2400 + ch MHz, nRF24 compatible range
)

// RadioSpeed selects the over-the-air data rate.
type RadioSpeed uint8

const (
	Speed250K RadioSpeed = iota
	Speed1M
	Speed2M
)

func (s RadioSpeed) String() string {
	switch s {
	case Speed250K:
		return "250K"
	case Speed1M:
		return "1M"
	case Speed2M:
		return "2M"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the rates the radio supports.
func (s RadioSpeed) Valid() bool {
	return s <= Speed2M
}
