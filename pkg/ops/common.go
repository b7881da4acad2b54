package ops

import "github.com/hashicorp/go-hclog"

type common struct {
	logger hclog.Logger
}

// L returns the logger set with SetLogger, falling back to the default
// logger named for ops.
func (c *common) L() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	c.logger = hclog.L().Named("ops")

	return c.logger
}

func (c *common) SetLogger(logger hclog.Logger) {
	c.logger = logger
}
