// Package configblock loads the device configuration block: a fixed-layout
// record with the radio link parameters and the attitude calibration offsets.
//
// A Block is loaded once with Init. Whatever the medium holds, the block ends
// up serving a deterministic set of values: the persisted ones when the record
// is intact, the compiled-in defaults otherwise. After Init the values never
// change and the accessors are safe for concurrent use without locking.
package configblock

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// Block owns the parameter store and the health flag for one medium.
type Block struct {
	source Source
	logger hclog.Logger

	once   sync.Once
	params atomic.Pointer[Parameters]
	status atomic.Pointer[Status]
	ready  atomic.Bool
}

// Option configures a Block
type Option func(*Block)

// WithLogger sets the logger used while loading
func WithLogger(logger hclog.Logger) Option {
	return func(b *Block) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a block reading from src. Nothing is read until Init.
func New(src Source, opts ...Option) *Block {
	b := &Block{
		source: src,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init reads, validates and publishes the parameters. Only the first call
// does any work; later calls return the same status.
func (b *Block) Init() Status {
	b.once.Do(b.load)
	return *b.status.Load()
}

func (b *Block) load() {
	raw, err := b.read()
	params, status := Resolve(raw, err)

	if status.UsedDefaults() {
		b.logger.Warn("⚠️ Config block rejected, using defaults", "reason", status.Err)
	} else {
		b.logger.Info("✓ Config block loaded",
			"channel", params.RadioChannel,
			"speed", params.RadioSpeed.String(),
			"address", fmt.Sprintf("0x%010X", params.RadioAddress),
		)
		for _, issue := range params.RangeIssues() {
			b.logger.Warn("⚠️ Config value out of hardware range", "issue", issue)
		}
	}

	b.params.Store(&params)
	b.status.Store(&status)
	b.ready.Store(true)
}

// read shields the load sequence from sources that panic.
func (b *Block) read() (raw []byte, err error) {
	if b.source == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrStorageUnreadable)
	}

	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = fmt.Errorf("%w: source panicked: %v", ErrStorageUnreadable, r)
		}
	}()

	b.logger.Debug("Reading config block", "size", RecordSize)
	return b.source.ReadBlock()
}

// IsInitialized reports whether Init has completed, whatever its outcome.
func (b *Block) IsInitialized() bool {
	return b.ready.Load()
}

// Status returns the outcome of Init, or OriginNone before it ran.
func (b *Block) Status() Status {
	if s := b.status.Load(); s != nil {
		return *s
	}
	return Status{Origin: OriginNone}
}

// Parameters returns the whole resolved snapshot. Before Init it is the default table.
func (b *Block) Parameters() Parameters {
	if p := b.params.Load(); p != nil {
		return *p
	}
	return DefaultParameters()
}

// RadioChannel returns the stored channel. It is not range-checked.
func (b *Block) RadioChannel() int {
	return int(b.Parameters().RadioChannel)
}

// RadioSpeed returns the stored data rate. It is not range-checked.
func (b *Block) RadioSpeed() RadioSpeed {
	return b.Parameters().RadioSpeed
}

// RadioAddress returns the stored link address.
func (b *Block) RadioAddress() uint64 {
	return b.Parameters().RadioAddress
}

// CalibPitch returns the stored pitch calibration offset.
func (b *Block) CalibPitch() float32 {
	return b.Parameters().CalibPitch
}

// CalibRoll returns the stored roll calibration offset.
func (b *Block) CalibRoll() float32 {
	return b.Parameters().CalibRoll
}
