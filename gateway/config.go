package gateway

import (
	"log/slog"
	"slices"
	"time"

	"i4.energy/across/hfpag/slc"
)

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	if c.Backend == nil {
		return ErrNoBackend
	}
	if !slices.Contains(c.Codecs, slc.CodecCVSD) {
		return ErrInvalidCodecs
	}
	for _, codec := range c.Codecs {
		if codec < slc.CodecCVSD || codec > slc.CodecLC3SWB {
			return ErrInvalidCodecs
		}
	}
	return nil
}

type Config struct {
	Dialer   Dialer
	Backend  slc.Backend
	Features slc.AgFeatures
	Codecs   []slc.Codec
	// BackendTimeout bounds every backend request.
	BackendTimeout time.Duration
	// MaxConsecutiveErrors closes the connection after that many error
	// responses in a row. Zero disables the check.
	MaxConsecutiveErrors int
	Logger               *slog.Logger
}

func (c *Config) setDefaults() {
	if c.Features == 0 {
		c.Features = slc.DefaultAgFeatures
	}
	if len(c.Codecs) == 0 {
		c.Codecs = []slc.Codec{slc.CodecCVSD, slc.CodecMSBC}
	}
	if c.BackendTimeout == 0 {
		c.BackendTimeout = 10 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithBackend(backend slc.Backend) *ConfigBuilder {
	b.config.Backend = backend
	return b
}

func (b *ConfigBuilder) WithFeatures(f slc.AgFeatures) *ConfigBuilder {
	b.config.Features = f
	return b
}

func (b *ConfigBuilder) WithCodecs(codecs ...slc.Codec) *ConfigBuilder {
	b.config.Codecs = codecs
	return b
}

func (b *ConfigBuilder) WithBackendTimeout(d time.Duration) *ConfigBuilder {
	b.config.BackendTimeout = d
	return b
}

func (b *ConfigBuilder) WithMaxConsecutiveErrors(n int) *ConfigBuilder {
	b.config.MaxConsecutiveErrors = n
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Build applies defaults and validates the result.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	c.setDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
