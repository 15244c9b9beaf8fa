package tools

// Config holds the identity every tool exposes to the engine
type Config struct {
	// name the name the engine uses to request the tool
	name string
	// description tells the engine when and how to call the tool
	description string
}

func (c *Config) SetName(v string) {
	c.name = v
}

func (c Config) Name() string {
	return c.name
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}
