package keyfs

import (
	"os"

	"go.uber.org/zap"

	"github.com/keyfs/keyfs/internal/compression"
	"github.com/keyfs/keyfs/internal/remote"
)

// Authenticator provides credentials for remote registries.
type Authenticator = remote.Authenticator

// Options configures a Store.
type Options struct {
	Extension   string
	DirPerm     os.FileMode
	FilePerm    os.FileMode
	Compression int
	Logger      *zap.Logger
	Remote      string
	Auth        Authenticator
	Concurrency int
}

// Option is a functional option for configuring Open.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		DirPerm:     0755,
		FilePerm:    0644,
		Compression: compression.Disabled,
		Logger:      zap.NewNop(),
		Concurrency: remote.DefaultConcurrency,
	}
}

// WithExtension sets the data-file extension appended to every leaf filename
// (e.g. ".dat"). Directory names never carry it. Default: none.
func WithExtension(ext string) Option {
	return func(o *Options) { o.Extension = ext }
}

// WithPermissions sets the mode bits for created directories and data files.
func WithPermissions(dir, file os.FileMode) Option {
	return func(o *Options) {
		o.DirPerm = dir
		o.FilePerm = file
	}
}

// WithCompression enables transparent zstd compression of stored documents at
// the given level (compression.Fastest..Better). Existing uncompressed files
// remain readable.
func WithCompression(level int) Option {
	return func(o *Options) { o.Compression = level }
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

// WithRemote configures an OCI registry ref (e.g. "ttl.sh/myorg/store:main")
// for snapshot push/pull.
func WithRemote(imageRef string) Option {
	return func(o *Options) { o.Remote = imageRef }
}

// WithAuth sets custom registry authentication.
func WithAuth(auth Authenticator) Option {
	return func(o *Options) { o.Auth = auth }
}

// WithConcurrency sets the number of parallel operations for push/pull.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}
