package pkg

import (
	"errors"
	"fmt"

	"github.com/espdrone/configblock/pkg/configblock"
	"github.com/espdrone/configblock/pkg/logging"
	"github.com/hashicorp/go-hclog"
)

// VerifyImageWithLogger runs every structural check on the record read from src
// and logs each result. The returned error joins all failures.
func VerifyImageWithLogger(src configblock.Source, logger hclog.Logger) error {
	logger.Info("Verifying config block")

	raw, err := src.ReadBlock()
	if err != nil {
		logger.Error("✗ Config block unreadable", "error", err)
		return err
	}

	var failures []error
	for _, check := range configblock.VerifyRecord(raw) {
		if check.OK() {
			logger.Info("✓ Check passed", "check", check.Name)
			continue
		}
		logger.Error("✗ Check failed", "check", check.Name, "error", check.Err)
		failures = append(failures, fmt.Errorf("%s: %w", check.Name, check.Err))
	}

	if len(failures) == 0 {
		logger.Info("✓ Config block verification passed")
		return nil
	}

	logger.Error("✗ Config block verification failed", "error_count", len(failures))
	return errors.Join(failures...)
}

// VerifyImage verifies an image file using default logger settings
func VerifyImage(imagePath string, offset int64) error {
	logger := logging.NewLogger("configblock-verify", logging.GetLogLevel(), nil)
	return VerifyImageWithLogger(configblock.NewFileSource(imagePath, offset), logger)
}
