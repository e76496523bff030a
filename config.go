package beamform

import "time"

// Config configures a Client: where its shared-memory region lives,
// how large it is, how long lock acquisitions wait before giving up,
// where reloadable shader sources are found, and how many frames its
// frame ring retains.
//
// Use functional options to customize a Config during construction.
//
// Example:
//
//	client, err := beamform.NewClient(beamform.NewConfig(
//	    beamform.WithRegionName("/beamformer"),
//	    beamform.WithShaderDir("./shaders"),
//	    beamform.WithDefaultTimeout(500*time.Millisecond),
//	), provider)
type Config struct {
	// RegionName identifies the shared-memory region, used as the
	// backing file path on platforms with a wired mmap path.
	RegionName string

	// RegionSizeOverride records a requested shared-memory region size.
	// Nothing reads it: the region is always mapped at shm.RegionSize.
	RegionSizeOverride uint64

	// DefaultTimeout bounds how long lock acquisitions and
	// WaitForComputeDispatch wait before returning a timeout error.
	// Zero means wait forever.
	DefaultTimeout time.Duration

	// ShaderDirs lists directories for reloadable compute shader
	// sources. Nothing reads it: the Client does not search these
	// directories.
	ShaderDirs []string

	// FrameCapacity sizes the compute frame ring, which indexes modulo
	// its capacity, so any value works. NewConfig sets it to 16
	// (matching the original's fixed frame count); zero yields a
	// one-frame ring.
	FrameCapacity uint32
}

// Option configures a Config during construction.
type Option func(*Config)

// defaultConfig returns a Config with the module's baseline defaults,
// overridden by any Option passed to NewConfig.
func defaultConfig() Config {
	return Config{
		RegionName:     "/beamformer_shared_memory",
		DefaultTimeout: 5 * time.Second,
		FrameCapacity:  16,
	}
}

// NewConfig builds a Config from the module defaults plus opts, applied
// in order.
func NewConfig(opts ...Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRegionName sets the shared-memory region's backing name.
func WithRegionName(name string) Option {
	return func(c *Config) { c.RegionName = name }
}

// WithRegionSize overrides the default shared-memory region size.
func WithRegionSize(bytes uint64) Option {
	return func(c *Config) { c.RegionSizeOverride = bytes }
}

// WithDefaultTimeout sets the default lock/dispatch wait timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Config) { c.DefaultTimeout = d }
}

// WithShaderDir appends a directory to the shader search path.
func WithShaderDir(dir string) Option {
	return func(c *Config) { c.ShaderDirs = append(c.ShaderDirs, dir) }
}

// WithFrameCapacity overrides the compute frame ring's capacity.
func WithFrameCapacity(capacity uint32) Option {
	return func(c *Config) { c.FrameCapacity = capacity }
}
