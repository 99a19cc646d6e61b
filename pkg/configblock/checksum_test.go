package configblock

import (
	"fmt"
	"strings"
	"testing"
)

func TestChecksum_ZeroedBodyIsNotZero(t *testing.T) {
	// A wiped record must not carry a self-consistent zero checksum.
	if got := Checksum(make([]byte, BodySize)); got == 0 {
		t.Errorf("Checksum(zeroes) = 0")
	}
}

func TestParseChecksum(t *testing.T) {
	tests := []struct {
		input   string
		algo    ChecksumAlgorithm
		value   string
		wantErr bool
	}{
		{input: "sha256:ABCD", algo: ChecksumSHA256, value: "abcd"},
		{input: "sha512:00", algo: ChecksumSHA512, value: "00"},
		{input: "adler32:babe1337", algo: ChecksumAdler32, value: "babe1337"},
		{input: "babe1337", algo: ChecksumAdler32, value: "babe1337"},
		{input: strings.Repeat("a", 64), algo: ChecksumSHA256, value: strings.Repeat("a", 64)},
		{input: strings.Repeat("b", 128), algo: ChecksumSHA512, value: strings.Repeat("b", 128)},
		{input: "md5:abcd", wantErr: true},
		{input: "sha256:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			algo, value, err := ParseChecksum(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChecksum() err=%v, wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if algo != tt.algo || value != tt.value {
				t.Errorf("ParseChecksum() = %v, %q; want %v, %q", algo, value, tt.algo, tt.value)
			}
		})
	}
}

func TestCalculateAndVerifyChecksum(t *testing.T) {
	data := scenarioA()

	for _, algo := range []ChecksumAlgorithm{ChecksumSHA256, ChecksumSHA512, ChecksumAdler32} {
		digest := CalculateChecksum(data, algo)
		if !strings.HasPrefix(digest, algo.String()+":") {
			t.Errorf("digest %q lacks %s prefix", digest, algo)
		}

		ok, err := VerifyChecksum(data, digest)
		if err != nil || !ok {
			t.Errorf("VerifyChecksum(%s) = %v, %v", algo, ok, err)
		}

		ok, err = VerifyChecksum(data[1:], digest)
		if err != nil || ok {
			t.Errorf("VerifyChecksum(%s) on altered data = %v, %v", algo, ok, err)
		}
	}
}

func TestCalculateChecksum_Adler32MatchesRecordChecksum(t *testing.T) {
	body := scenarioA()[:BodySize]
	rec := &Record{}
	if err := rec.Unpack(scenarioA()); err != nil {
		t.Fatalf("Unpack() err=%v", err)
	}

	want := fmt.Sprintf("adler32:%08x", rec.Checksum)
	if got := CalculateChecksum(body, ChecksumAdler32); got != want {
		t.Errorf("CalculateChecksum() = %q, want %q", got, want)
	}
}

