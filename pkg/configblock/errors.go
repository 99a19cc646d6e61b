package configblock

import "errors"

var (
	// Storage errors 💾
	ErrStorageUnreadable = errors.New("❌ config storage unreadable")

	// Format errors 📦
	ErrMalformedRecord   = errors.New("❌ malformed config record")
	ErrIntegrityMismatch = errors.New("❌ config record checksum mismatch")
)
