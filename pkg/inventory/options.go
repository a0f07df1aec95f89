package inventory

import (
	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
)

// options holds the configuration of an Inventory.
type options struct {
	path       string // storage file; takes precedence over dir
	dir        string // directory holding the storage file
	logger     *zerolog.Logger
	quarantine bool
	now        func() utc.Time
}

// apply applies the given options.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// defaults returns the default options for an inventory: storage beside the
// running executable, quarantine of corrupt files enabled.
func defaults() *options {
	return &options{
		quarantine: true,
		now:        utc.Now,
	}
}

// Option configures an Inventory.
type Option func(*options)

// WithPath sets the storage file path explicitly.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithDir stores the inventory as library_books.json inside dir.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithLogger sets the logger that receives book events and persistence failures.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithQuarantine controls whether unparseable storage content is copied aside
// before the storage file is reset.
func WithQuarantine(enabled bool) Option {
	return func(o *options) {
		o.quarantine = enabled
	}
}

// WithClock overrides the time source used to name quarantine files.
func WithClock(now func() utc.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
