//go:build unix

package segment

import "github.com/kelbyrg/sbs/internal/options"

// createConfig holds the configurable knobs for Create, built via the
// functional-options pattern the teacher uses throughout its own
// constructors (internal/options.Option[T]/Apply).
type createConfig struct {
	preallocSize  int
	errorIfExists bool
}

// Option configures a Create call.
type Option = options.Option[*createConfig]

// WithPreallocSize sets the initial payload capacity reserved when the
// segment is created (spec §6: create_memory's preallocSize parameter).
func WithPreallocSize(n int) Option {
	return options.NoError(func(c *createConfig) { c.preallocSize = n })
}

// WithErrorIfExists controls whether Create reports an already-existing
// segment as ErrAlreadyExists (true) or as a silent no-op (false), per
// spec §6's errorIfExists parameter.
func WithErrorIfExists(b bool) Option {
	return options.NoError(func(c *createConfig) { c.errorIfExists = b })
}

// Create builds the create-time configuration from opts and performs the
// create operation (spec §4.4). CreateMemory is a thin, spec-signature
// wrapper over this.
func Create(name string, opts ...Option) (bool, error) {
	cfg := &createConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return false, err
	}

	return create(name, cfg.preallocSize, cfg.errorIfExists)
}
