package configblock

import (
	"errors"
	"fmt"
)

// supportedVersions lists the layouts this reader trusts. Unknown versions
// are never partially decoded.
var supportedVersions = map[uint8]bool{
	RecordVersion: true,
}

// SupportedVersion reports whether records tagged with v can be decoded.
func SupportedVersion(v uint8) bool {
	return supportedVersions[v]
}

// Decode classifies raw as a valid record and returns its parameters.
// The error wraps ErrMalformedRecord or ErrIntegrityMismatch.
func Decode(raw []byte) (Parameters, error) {
	rec := &Record{}
	if err := rec.Unpack(raw); err != nil {
		return Parameters{}, err
	}

	if err := checkMagic(rec); err != nil {
		return Parameters{}, err
	}
	if err := checkVersion(rec); err != nil {
		return Parameters{}, err
	}
	if err := checkIntegrity(raw, rec); err != nil {
		return Parameters{}, err
	}

	return rec.Parameters(), nil
}

// Erased flash reads as 0xFF..., a wiped EEPROM as zeroes; neither matches.
func checkMagic(rec *Record) error {
	if rec.Magic != MagicNumber {
		return fmt.Errorf("%w: magic 0x%08x, expected 0x%08x", ErrMalformedRecord, rec.Magic, uint32(MagicNumber))
	}
	return nil
}

func checkVersion(rec *Record) error {
	if !SupportedVersion(rec.Version) {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformedRecord, rec.Version)
	}
	return nil
}

func checkIntegrity(raw []byte, rec *Record) error {
	if computed := Checksum(raw[:BodySize]); computed != rec.Checksum {
		return fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", ErrIntegrityMismatch, rec.Checksum, computed)
	}
	return nil
}

// Resolve turns the outcome of a source read into the parameters to serve.
// Any failure degrades to the default table; the returned status records why.
func Resolve(raw []byte, readErr error) (Parameters, Status) {
	if readErr != nil {
		if !errors.Is(readErr, ErrStorageUnreadable) {
			readErr = fmt.Errorf("%w: %v", ErrStorageUnreadable, readErr)
		}
		return DefaultParameters(), Status{Origin: OriginDefaults, Err: readErr}
	}

	params, err := Decode(raw)
	if err != nil {
		return DefaultParameters(), Status{Origin: OriginDefaults, Err: err}
	}

	return params, Status{Origin: OriginRecord}
}
