// Checksum utilities.
//
// The record itself carries a raw Adler-32 over its body. Whole images are
// described with prefixed digests: "algorithm:hexvalue" (e.g. "sha256:c0ffee...", "adler32:babe1337").

package configblock

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/adler32"
	"strings"
)

// Checksum computes the integrity value stored in the last field of a record.
// body must be the first BodySize bytes of the record.
func Checksum(body []byte) uint32 {
	return adler32.Checksum(body)
}

// ChecksumAlgorithm represents supported image digest algorithms
type ChecksumAlgorithm int

const (
	ChecksumSHA256 ChecksumAlgorithm = iota
	ChecksumSHA512
	ChecksumAdler32
)

func (c ChecksumAlgorithm) String() string {
	switch c {
	case ChecksumSHA256:
		return "sha256"
	case ChecksumSHA512:
		return "sha512"
	case ChecksumAdler32:
		return "adler32"
	default:
		return "unknown"
	}
}

// ParseChecksum parses a digest string that may or may not have a prefix
func ParseChecksum(checksumStr string) (ChecksumAlgorithm, string, error) {
	if strings.Contains(checksumStr, ":") {
		parts := strings.SplitN(checksumStr, ":", 2)

		var algo ChecksumAlgorithm
		switch parts[0] {
		case "sha256":
			algo = ChecksumSHA256
		case "sha512":
			algo = ChecksumSHA512
		case "adler32":
			algo = ChecksumAdler32
		default:
			return ChecksumSHA256, "", fmt.Errorf("unknown checksum algorithm: %s", parts[0])
		}

		if parts[1] == "" {
			return algo, "", fmt.Errorf("invalid checksum format: %s", checksumStr)
		}
		return algo, strings.ToLower(parts[1]), nil
	}

	// Bare hex - guess based on length
	var algo ChecksumAlgorithm
	switch len(checksumStr) {
	case 128:
		algo = ChecksumSHA512
	case 8:
		algo = ChecksumAdler32
	default:
		algo = ChecksumSHA256
	}

	return algo, strings.ToLower(checksumStr), nil
}

// CalculateChecksum calculates a digest with prefix
func CalculateChecksum(data []byte, algorithm ChecksumAlgorithm) string {
	var h hash.Hash

	switch algorithm {
	case ChecksumSHA512:
		h = sha512.New()
	case ChecksumAdler32:
		h = adler32.New()
	default:
		algorithm = ChecksumSHA256
		h = sha256.New()
	}

	h.Write(data)
	return algorithm.String() + ":" + hex.EncodeToString(h.Sum(nil))
}

// VerifyChecksum verifies data against a digest string
func VerifyChecksum(data []byte, checksumStr string) (bool, error) {
	algo, expected, err := ParseChecksum(checksumStr)
	if err != nil {
		return false, err
	}

	actual := CalculateChecksum(data, algo)
	actualHex := actual[strings.IndexByte(actual, ':')+1:]

	return actualHex == expected, nil
}
