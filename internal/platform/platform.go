// Package platform describes where a device keeps its configuration block.
package platform

import (
	"fmt"
	"os"
	"strconv"

	"github.com/espdrone/configblock/pkg/configblock"
	"gopkg.in/yaml.v3"
)

// Medium kinds
const (
	KindFlash  = "flash"
	KindEEPROM = "eeprom"
	KindFile   = "file"
)

const envOffset = "CONFIGBLOCK_OFFSET"

// MaxMediumSize bounds host-side images whose medium size is not declared.
const MaxMediumSize = 64 << 20

// Config is a platform profile.
type Config struct {
	Name   string       `yaml:"name"`
	Medium MediumConfig `yaml:"medium"`
}

// MediumConfig locates the record on the persistent medium.
type MediumConfig struct {
	Kind   string `yaml:"kind"`
	Path   string `yaml:"path"`
	Offset int64  `yaml:"offset"`
	Size   int64  `yaml:"size"` // Medium size in bytes; 0 when unknown
}

// Load reads a platform profile from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("platform profile %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks profile correctness.
// It performs declarative validation only and does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("platform: nil config")
	}

	for i := 0; i < len(cfg.Name); i++ {
		if cfg.Name[i] > 0x7F {
			return fmt.Errorf("platform %q: name must contain ASCII characters only", cfg.Name)
		}
	}

	m := cfg.Medium
	switch m.Kind {
	case "", KindFlash, KindEEPROM, KindFile:
	default:
		return fmt.Errorf("platform %q: unknown medium kind %q", cfg.Name, m.Kind)
	}

	if m.Offset < 0 {
		return fmt.Errorf("platform %q: negative medium offset %d", cfg.Name, m.Offset)
	}
	if m.Size < 0 {
		return fmt.Errorf("platform %q: negative medium size %d", cfg.Name, m.Size)
	}
	if m.Size > 0 {
		if err := CheckFit(m.Offset, m.Size); err != nil {
			return fmt.Errorf("platform %q: %w", cfg.Name, err)
		}
	}

	return nil
}

// CheckFit reports an error unless a record at offset fits inside a medium
// of size bytes.
func CheckFit(offset, size int64) error {
	if offset < 0 {
		return fmt.Errorf("negative medium offset %d", offset)
	}
	if size < configblock.RecordSize || offset > size-configblock.RecordSize {
		return fmt.Errorf(
			"record at offset %d (%d bytes) does not fit in %d byte medium",
			offset,
			configblock.RecordSize,
			size,
		)
	}
	return nil
}

// Normalize fills in defaults. It must be called only after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Medium.Kind == "" {
		cfg.Medium.Kind = KindFlash
	}
	if cfg.Medium.Path == "" {
		cfg.Medium.Path = ResolveImagePath(cfg.Name)
	}
}

// ApplyEnv overrides profile values from the environment.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(envOffset); v != "" {
		offset, err := ParseOffset(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envOffset, err)
		}
		cfg.Medium.Offset = offset
	}
	if v := os.Getenv(envImage); v != "" {
		cfg.Medium.Path = v
	}
	return nil
}

// ParseOffset accepts decimal, 0x hex and 0o octal offsets.
func ParseOffset(s string) (int64, error) {
	offset, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	if offset < 0 {
		return 0, fmt.Errorf("invalid offset %q: must not be negative", s)
	}
	return offset, nil
}

// Source returns the raw block reader for this medium.
func (m MediumConfig) Source() *configblock.FileSource {
	return configblock.NewFileSource(m.Path, m.Offset)
}

// LoadProfile runs the full Load, Validate, Normalize, ApplyEnv sequence.
func LoadProfile(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	Normalize(cfg)
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
