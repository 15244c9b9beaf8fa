package tools

type Option func(c *Config)

func WithName(name string) Option {
	return func(c *Config) {
		c.SetName(name)
	}
}

func WithDescription(desc string) Option {
	return func(c *Config) {
		c.SetDescription(desc)
	}
}

// Apply runs opts against c and fills empty fields with the given defaults
func Apply(c *Config, name, description string, opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
	if c.Name() == "" {
		c.SetName(name)
	}
	if c.Description() == "" {
		c.SetDescription(description)
	}
}
