package domain

import "time"

// Endpoint names an upstream operation guarded by the admission limiter.
type Endpoint string

const (
	// EndpointTickets queries the offerings between two stations.
	EndpointTickets Endpoint = "fetch_trains"
	// EndpointSchedule queries the stop list of a run.
	EndpointSchedule Endpoint = "fetch_train_schedule"
	// EndpointRunNumbers searches run numbers by run code.
	EndpointRunNumbers Endpoint = "fetch_train_no"
	// EndpointStations fetches the station roster.
	EndpointStations Endpoint = "fetch_stations"
	// EndpointSession fetches a session credential.
	EndpointSession Endpoint = "fetch_cookies"
)

// Config holds the runtime configuration.
type Config struct {
	DataDir     string
	Upstream    UpstreamConfig
	Concurrency map[Endpoint]int64
	Session     SessionConfig
	Cache       CacheConfig
	Retention   RetentionConfig
	Server      ServerConfig
}

// UpstreamConfig locates the upstream services.
type UpstreamConfig struct {
	BaseURL   string
	SearchURL string
	IndexURL  string
	UserAgent string
	Timeout   time.Duration
}

// SessionConfig controls credential reuse.
type SessionConfig struct {
	Window time.Duration
}

// CacheConfig controls the hierarchical result cache.
type CacheConfig struct {
	Capacity      int
	SweepInterval time.Duration
	MissTTL       time.Duration
	TicketTTL     time.Duration
	EmptyTTL      time.Duration
	ScheduleTTL   time.Duration
	PermitTTL     time.Duration
	Alpha         float64
	Beta          float64
}

// RetentionConfig controls how long persisted records are kept.
type RetentionConfig struct {
	AutoCleanRunNumbers bool
	RunNumbers          time.Duration
	Snapshots           time.Duration
}

// ServerConfig controls the query daemon.
type ServerConfig struct {
	Network     string
	Address     string
	IdleTimeout time.Duration
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	dataDir := DefaultDataPath()
	return &Config{
		DataDir: dataDir,
		Upstream: UpstreamConfig{
			BaseURL:   "https://kyfw.12306.cn",
			SearchURL: "https://search.12306.cn",
			IndexURL:  "https://www.12306.cn",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
			Timeout: 30 * time.Second,
		},
		Concurrency: map[Endpoint]int64{
			EndpointTickets:    5,
			EndpointSchedule:   5,
			EndpointRunNumbers: 10,
			EndpointStations:   1,
			EndpointSession:    1,
		},
		Session: SessionConfig{Window: DefaultSessionWindow},
		Cache: CacheConfig{
			Capacity:      100,
			SweepInterval: 10 * time.Second,
			MissTTL:       60 * time.Second,
			TicketTTL:     5 * time.Minute,
			EmptyTTL:      300 * time.Second,
			ScheduleTTL:   2 * time.Hour,
			PermitTTL:     24 * time.Hour,
			Alpha:         -0.5,
			Beta:          0.5,
		},
		Retention: RetentionConfig{
			AutoCleanRunNumbers: true,
			RunNumbers:          7 * 24 * time.Hour,
			Snapshots:           3 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Network: "unix",
			Address: DefaultSocketPath(dataDir),
		},
	}
}

// Permits returns the permit count for endpoint, defaulting to one.
func (c *Config) Permits(e Endpoint) int64 {
	if n, ok := c.Concurrency[e]; ok && n > 0 {
		return n
	}
	return 1
}
