package config

import "time"

// Worker intervals
const (
	// SessionReapInterval defines how often idle viewer sessions are swept
	SessionReapInterval = 1 * time.Minute

	// SessionMaxIdle is the idle age after which a session is torn down
	SessionMaxIdle = 30 * time.Minute

	// CacheWarmInterval defines how often the default bounding box is
	// re-fetched into the cache
	CacheWarmInterval = 15 * time.Minute

	// BuildingsCacheTTL is how long fetched building records stay cached
	BuildingsCacheTTL = 30 * time.Minute

	// FrameInterval paces headless session render loops
	FrameInterval = 250 * time.Millisecond
)
