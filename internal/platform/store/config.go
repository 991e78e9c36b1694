package store

import (
	"time"

	"minutes/internal/platform/config"
)

// Config selects and tunes the backends; AppName is reported to postgres and clickhouse
type Config struct {
	AppName string
	PG      PGConfig
	Lite    LiteConfig
	CH      CHConfig
}

// Tracing is shared by the sql backends. SlowQueryMs below zero never flags a statement.
type Tracing struct {
	LogSQL      bool
	SlowQueryMs int
}

type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	Tracing

	ConnectRetries int // ping attempts; below 1 means one
	PingTimeout    time.Duration
}

type LiteConfig struct {
	Enabled     bool
	Path        string // file path or ":memory:"
	BusyTimeout time.Duration
	Tracing
}

type CHConfig struct {
	Enabled bool
	URL     string
}

// FromConfig reads CORE_STORE_*. Setting a backend's location enables it.
func FromConfig(cfg config.Conf, appName string) Config {
	c := cfg.Prefix("CORE_STORE_")
	tr := Tracing{
		LogSQL:      c.MayBool("LOG_SQL", false),
		SlowQueryMs: c.MayInt("SLOW_QUERY_MS", 200),
	}

	out := Config{AppName: appName}
	if url := c.MayString("PG_URL", ""); url != "" {
		out.PG = PGConfig{
			Enabled:        true,
			URL:            url,
			MaxConns:       int32(c.MayInt("PG_MAX_CONNS", 8)),
			Tracing:        tr,
			ConnectRetries: c.MayInt("PG_CONNECT_RETRIES", 20),
			PingTimeout:    c.MayDuration("PG_PING_TIMEOUT", 3*time.Second),
		}
	}
	if path := c.MayString("SQLITE_PATH", ""); path != "" {
		out.Lite = LiteConfig{
			Enabled:     true,
			Path:        path,
			BusyTimeout: c.MayDuration("SQLITE_BUSY_TIMEOUT", 5*time.Second),
			Tracing:     tr,
		}
	}
	if url := c.MayString("CH_URL", ""); url != "" {
		out.CH = CHConfig{Enabled: true, URL: url}
	}
	return out
}
