package platform

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/espdrone/configblock/pkg/configblock"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platform.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoad_ParsesHexOffset(t *testing.T) {
	path := writeProfile(t, `
name: espdrone-s2
medium:
  kind: flash
  path: /tmp/nvs.bin
  offset: 0x3F000
  size: 0x40000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Name != "espdrone-s2" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Medium.Offset != 0x3F000 {
		t.Errorf("offset = 0x%x, want 0x3F000", cfg.Medium.Offset)
	}
	if cfg.Medium.Size != 0x40000 {
		t.Errorf("size = 0x%x, want 0x40000", cfg.Medium.Size)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeProfile(t, "medium: [unterminated")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "minimal",
			cfg:  Config{Name: "dev"},
		},
		{
			name: "eeprom with room",
			cfg:  Config{Name: "dev", Medium: MediumConfig{Kind: KindEEPROM, Offset: 0, Size: 64}},
		},
		{
			name:    "unknown kind",
			cfg:     Config{Name: "dev", Medium: MediumConfig{Kind: "tape"}},
			wantErr: true,
		},
		{
			name:    "negative offset",
			cfg:     Config{Name: "dev", Medium: MediumConfig{Offset: -1}},
			wantErr: true,
		},
		{
			name:    "record past end of medium",
			cfg:     Config{Name: "dev", Medium: MediumConfig{Offset: 40, Size: 64}},
			wantErr: true,
		},
		{
			name:    "offset near int64 limit",
			cfg:     Config{Name: "dev", Medium: MediumConfig{Offset: math.MaxInt64 - 4, Size: 64}},
			wantErr: true,
		},
		{
			name:    "medium smaller than a record",
			cfg:     Config{Name: "dev", Medium: MediumConfig{Size: configblock.RecordSize - 1}},
			wantErr: true,
		},
		{
			name: "record exactly at end of medium",
			cfg:  Config{Name: "dev", Medium: MediumConfig{Offset: 64 - configblock.RecordSize, Size: 64}},
		},
		{
			name:    "non-ascii name",
			cfg:     Config{Name: "drône"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.cfg
			err := Validate(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
			if tt.cfg != before {
				t.Errorf("Validate() mutated config: %+v -> %+v", before, tt.cfg)
			}
		})
	}
}

func TestCheckFit(t *testing.T) {
	tests := []struct {
		offset, size int64
		wantErr      bool
	}{
		{0, configblock.RecordSize, false},
		{MaxMediumSize - configblock.RecordSize, MaxMediumSize, false},
		{MaxMediumSize - configblock.RecordSize + 1, MaxMediumSize, true},
		{math.MaxInt64, MaxMediumSize, true},
		{math.MaxInt64 - configblock.RecordSize + 1, math.MaxInt64, true},
		{0, 0, true},
		{-1, 64, true},
	}

	for _, tt := range tests {
		err := CheckFit(tt.offset, tt.size)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckFit(%d, %d) err=%v, wantErr=%v", tt.offset, tt.size, err, tt.wantErr)
		}
	}
}

func TestNormalize_FillsDefaults(t *testing.T) {
	t.Setenv(envImage, "")
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg := &Config{Name: "bench"}
	Normalize(cfg)

	if cfg.Medium.Kind != KindFlash {
		t.Errorf("kind = %q, want %q", cfg.Medium.Kind, KindFlash)
	}
	if cfg.Medium.Path == "" {
		t.Fatalf("path was not filled in")
	}
	if filepath.Base(cfg.Medium.Path) != "bench.bin" {
		t.Errorf("path = %q, want .../bench.bin", cfg.Medium.Path)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(envOffset, "0x100")
	t.Setenv(envImage, "/flash/dump.bin")

	cfg := &Config{Medium: MediumConfig{Path: "/other.bin", Offset: 8}}
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv() err=%v", err)
	}
	if cfg.Medium.Offset != 0x100 {
		t.Errorf("offset = %d, want 256", cfg.Medium.Offset)
	}
	if cfg.Medium.Path != "/flash/dump.bin" {
		t.Errorf("path = %q", cfg.Medium.Path)
	}

	t.Setenv(envOffset, "nope")
	if err := ApplyEnv(cfg); err == nil {
		t.Errorf("expected error for bad offset")
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "4096", want: 4096},
		{in: "0x3F000", want: 0x3F000},
		{in: "0o17", want: 15},
		{in: "-4", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOffset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOffset(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOffset(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadProfile_ReadsRecordThroughSource(t *testing.T) {
	t.Setenv(envImage, "")
	t.Setenv(envOffset, "")

	dir := t.TempDir()
	image := make([]byte, 64)
	want := configblock.Parameters{RadioChannel: 42, RadioSpeed: configblock.Speed1M, RadioAddress: 0xE7E7E7E701}
	copy(image[16:], configblock.Encode(want))

	imagePath := filepath.Join(dir, "flash.bin")
	if err := os.WriteFile(imagePath, image, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}

	profile := writeProfile(t, "name: bench\nmedium:\n  path: "+imagePath+"\n  offset: 16\n  size: 64\n")

	cfg, err := LoadProfile(profile)
	if err != nil {
		t.Fatalf("LoadProfile() err=%v", err)
	}

	block := configblock.New(cfg.Medium.Source())
	if status := block.Init(); status.UsedDefaults() {
		t.Fatalf("expected record, got %v", status)
	}
	if got := block.Parameters(); got != want {
		t.Errorf("parameters = %+v, want %+v", got, want)
	}
}
