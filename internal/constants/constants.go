package constants

import "time"

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.degrees/`

	DefaultBaseURL   = `https://en.wikipedia.org`
	DefaultTarget    = `Kevin Bacon`
	DefaultUserAgent = `degrees/` + Version + ` (+https://github.com/aleksandradimitrov/wikipedia-task)`

	// ArticlePath is the path prefix every content page lives under.
	ArticlePath = `/wiki/`

	// NeighborLimit caps how many outbound links of a single page are followed.
	NeighborLimit = 50

	DefaultRateLimit = 10.0
	DefaultBurst     = 1
	DefaultCacheSize = 1024
	DefaultTimeout   = 15 * time.Second
	DefaultLogLevel  = `warn`

	SourceHTML = `html`
	SourceAPI  = `api`
)
