package configblock

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Record is the persisted configuration block, field for field.
type Record struct {
	// Identification (5 bytes)
	Magic   uint32 // MagicNumber
	Version uint8  // RecordVersion

	// Radio link (11 bytes)
	RadioChannel uint8
	RadioSpeed   uint8
	Reserved     uint8 // Written as zero, ignored on read
	RadioAddress uint64

	// Calibration (8 bytes)
	CalibPitch float32
	CalibRoll  float32

	// Integrity (4 bytes)
	Checksum uint32 // Adler-32 of the preceding 24 bytes
}

// NewRecord builds a sealed record carrying p.
func NewRecord(p Parameters) *Record {
	rec := &Record{
		Magic:        MagicNumber,
		Version:      RecordVersion,
		RadioChannel: p.RadioChannel,
		RadioSpeed:   uint8(p.RadioSpeed),
		RadioAddress: p.RadioAddress,
		CalibPitch:   p.CalibPitch,
		CalibRoll:    p.CalibRoll,
	}
	rec.Seal()
	return rec
}

// Seal recomputes the checksum over the current field values.
func (r *Record) Seal() {
	r.Checksum = Checksum(r.Pack()[:BodySize])
}

// Pack serializes the record to bytes
func (r *Record) Pack() []byte {
	buf := make([]byte, RecordSize)

	binary.LittleEndian.PutUint32(buf[offsetMagic:offsetVersion], r.Magic)
	buf[offsetVersion] = r.Version
	buf[offsetChannel] = r.RadioChannel
	buf[offsetSpeed] = r.RadioSpeed
	buf[offsetReserved] = r.Reserved
	binary.LittleEndian.PutUint64(buf[offsetAddress:offsetPitch], r.RadioAddress)
	binary.LittleEndian.PutUint32(buf[offsetPitch:offsetRoll], math.Float32bits(r.CalibPitch))
	binary.LittleEndian.PutUint32(buf[offsetRoll:offsetChecksum], math.Float32bits(r.CalibRoll))
	binary.LittleEndian.PutUint32(buf[offsetChecksum:RecordSize], r.Checksum)

	return buf
}

// Unpack deserializes the record from bytes. It checks the size only.
func (r *Record) Unpack(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrMalformedRecord, len(data), RecordSize)
	}

	r.Magic = binary.LittleEndian.Uint32(data[offsetMagic:offsetVersion])
	r.Version = data[offsetVersion]
	r.RadioChannel = data[offsetChannel]
	r.RadioSpeed = data[offsetSpeed]
	r.Reserved = data[offsetReserved]
	r.RadioAddress = binary.LittleEndian.Uint64(data[offsetAddress:offsetPitch])
	r.CalibPitch = math.Float32frombits(binary.LittleEndian.Uint32(data[offsetPitch:offsetRoll]))
	r.CalibRoll = math.Float32frombits(binary.LittleEndian.Uint32(data[offsetRoll:offsetChecksum]))
	r.Checksum = binary.LittleEndian.Uint32(data[offsetChecksum:RecordSize])

	return nil
}

// Parameters copies the payload fields out of the record as-is.
func (r *Record) Parameters() Parameters {
	return Parameters{
		RadioChannel: r.RadioChannel,
		RadioSpeed:   RadioSpeed(r.RadioSpeed),
		RadioAddress: r.RadioAddress,
		CalibPitch:   r.CalibPitch,
		CalibRoll:    r.CalibRoll,
	}
}

// Encode returns the persisted form of p.
func Encode(p Parameters) []byte {
	return NewRecord(p).Pack()
}
