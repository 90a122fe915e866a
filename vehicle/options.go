package vehicle

// Option configures a Pool.
type Option func(*options)

type options struct {
	marker      DirtyMarker
	world       MapQuery
	engines     EngineCallbacks
	spriteCache int
}

func defaultOptions() options {
	return options{
		world:       &FlatMap{Width: 256},
		engines:     StaticEngines{},
		spriteCache: 256,
	}
}

// WithDirtyMarker sets where moving vehicles invalidate their sprites.
// Without one, nothing is marked.
func WithDirtyMarker(m DirtyMarker) Option {
	return func(o *options) {
		o.marker = m
	}
}

// WithMap sets the map queried for tiles, ground height and stations.
func WithMap(m MapQuery) Option {
	return func(o *options) {
		o.world = m
	}
}

// WithEngines sets the engine property source.
func WithEngines(e EngineCallbacks) Option {
	return func(o *options) {
		o.engines = e
	}
}

// WithSpriteCacheSize sets how many engines' sprite sizes are cached.
func WithSpriteCacheSize(n int) Option {
	return func(o *options) {
		o.spriteCache = n
	}
}
