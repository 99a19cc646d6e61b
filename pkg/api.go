package pkg

import (
	"github.com/espdrone/configblock/internal/platform"
	"github.com/espdrone/configblock/pkg/configblock"
	"github.com/hashicorp/go-hclog"
)

// OpenImage loads the block stored at offset in an image file.
func OpenImage(imagePath string, offset int64, logger hclog.Logger) *configblock.Block {
	block := configblock.New(configblock.NewFileSource(imagePath, offset), configblock.WithLogger(logger))
	block.Init()
	return block
}

// OpenPlatform loads the block described by a platform profile.
// Only a broken profile is an error; a broken record still yields an initialized block.
func OpenPlatform(profilePath string, logger hclog.Logger) (*configblock.Block, *platform.Config, error) {
	cfg, err := platform.LoadProfile(profilePath)
	if err != nil {
		return nil, nil, err
	}

	if logger != nil {
		logger = logger.With("platform", cfg.Name, "medium", cfg.Medium.Kind)
	}

	block := configblock.New(cfg.Medium.Source(), configblock.WithLogger(logger))
	block.Init()
	return block, cfg, nil
}
