package gather

// config carries the pipeline settings shared by All, Join2, Join3 and
// Stream. A fresh config is built per call; pipelines share nothing.
type config struct {
	limit      int64
	buffer     int
	collectAll bool
}

// Option is a functional option for configuring a pipeline invocation.
type Option func(*config)

func newConfig(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLimit caps how many tasks run concurrently. Tasks beyond the limit
// wait their turn on a weighted semaphore. Zero or negative means unlimited,
// which is the default.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = int64(n)
	}
}

// WithBuffer sets the buffer size of the merged completion stream. The
// default is unbuffered. Mostly useful with Stream, where a buffer lets
// forwarders finish ahead of a slow consumer.
func WithBuffer(size int) Option {
	return func(c *config) {
		c.buffer = size
	}
}

// WithCollectAll reports every task failure, combined in declaration order,
// instead of only the failure with the lowest declaration index.
func WithCollectAll() Option {
	return func(c *config) {
		c.collectAll = true
	}
}
