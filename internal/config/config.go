package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OpenAIConfig controls the optional hint generator. An empty APIKey
// disables it; callers fall back to static copy.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	HintTTL string `mapstructure:"hint_ttl"` // cache TTL, duration string
}

// FeedConfig controls ranking and the wave snapshot builder. The policy
// knobs where zero is a meaningful setting (full-sanctuary intensity,
// cap 0) are pointers so FillDefaults can tell unset from explicit zero.
type FeedConfig struct {
	DefaultIntensity *float64 `mapstructure:"default_intensity"` // 0..100
	SyncedThreshold  *float64 `mapstructure:"synced_threshold"`
	SyncedCap        *int     `mapstructure:"synced_cap"`
	EmergentWindow   string   `mapstructure:"emergent_window"` // duration string
	BuildInterval    string   `mapstructure:"build_interval"`
	PoolSize         int      `mapstructure:"pool_size"`    // items fetched per ranking pass
	SnapshotTTL      string   `mapstructure:"snapshot_ttl"` // wave snapshot expiry
}

// DecayConfig controls the periodic signal decay sweep.
type DecayConfig struct {
	Interval string `mapstructure:"interval"`
}

// Config is the top-level configuration structure.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Redis  RedisConfig  `mapstructure:"redis"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Feed   FeedConfig   `mapstructure:"feed"`
	Decay  DecayConfig  `mapstructure:"decay"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.OpenAI.HintTTL == "" {
		c.OpenAI.HintTTL = "1h"
	}
	if c.Feed.DefaultIntensity == nil {
		v := 50.0
		c.Feed.DefaultIntensity = &v
	}
	if c.Feed.SyncedThreshold == nil {
		v := 200.0
		c.Feed.SyncedThreshold = &v
	}
	if c.Feed.SyncedCap == nil {
		v := 5
		c.Feed.SyncedCap = &v
	}
	if c.Feed.EmergentWindow == "" {
		c.Feed.EmergentWindow = "30m"
	}
	if c.Feed.BuildInterval == "" {
		c.Feed.BuildInterval = "15m"
	}
	if c.Feed.PoolSize == 0 {
		c.Feed.PoolSize = 200
	}
	if c.Feed.SnapshotTTL == "" {
		c.Feed.SnapshotTTL = "48h"
	}
	if c.Decay.Interval == "" {
		c.Decay.Interval = "6h"
	}
}
