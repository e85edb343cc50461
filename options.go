package drivestore

import (
	"log/slog"

	"github.com/Jumpaku/go-drivestore/codec"
)

// DefaultConcurrency is the number of saves SaveAll runs at once when no limit is given.
const DefaultConcurrency = 4

// Options configures a Store.
type Options struct {
	Codec        Codec
	Verbose      bool
	Logger       *slog.Logger
	CacheFolders bool
	Concurrency  int
	Scheme       Scheme
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Codec:        codec.JSON(),
		CacheFolders: true,
		Concurrency:  DefaultConcurrency,
		Scheme:       SchemeApp,
	}
}

// WithCodec sets the codec used for Document requests and typed reads.
func WithCodec(c Codec) Option {
	return func(o *Options) {
		if c != nil {
			o.Codec = c
		}
	}
}

// WithVerbose enables logging of every resolution step.
func WithVerbose(verbose bool) Option {
	return func(o *Options) { o.Verbose = verbose }
}

// WithLogger sets the logger used in verbose mode. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithFolderCache selects between the in-memory folder cache and no caching.
func WithFolderCache(enabled bool) Option {
	return func(o *Options) { o.CacheFolders = enabled }
}

// WithConcurrency sets the default number of parallel saves for SaveAll.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithScheme sets the root used for paths without an explicit scheme.
func WithScheme(s Scheme) Option {
	return func(o *Options) { o.Scheme = s }
}
