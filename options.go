package htmlcore

// config holds parser configuration. None of its fields change tokenizer
// or tree builder semantics; they only govern how errors surface from Parse.
type config struct {
	strict        bool
	collectErrors bool
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures Parse's ambient behavior.
type Option func(*config)

// WithStrictMode causes Parse to return the first recorded parse error as
// its error. The tree is still built in full and returned alongside it.
func WithStrictMode() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithCollectErrors causes Parse to return all recorded parse errors as a
// htmlerr.ParseErrors value alongside a fully built tree. Without this
// option (or WithStrictMode), parse errors are returned only in Parse's
// error slice and the returned error stays nil.
func WithCollectErrors() Option {
	return func(c *config) {
		c.collectErrors = true
	}
}
