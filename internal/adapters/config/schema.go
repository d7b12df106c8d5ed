package config

import "time"

// File is the structure of railfare.yaml. Every section is optional; unset
// values keep their defaults.
type File struct {
	Version     string           `yaml:"version" validate:"omitempty,oneof=1"`
	DataDir     string           `yaml:"data_dir"`
	Upstream    *UpstreamDTO     `yaml:"upstream"`
	Concurrency map[string]int64 `yaml:"concurrency" validate:"dive,keys,oneof=tickets schedule run_numbers stations session,endkeys,gte=1,lte=64"`
	Session     *SessionDTO      `yaml:"session"`
	Cache       *CacheDTO        `yaml:"cache"`
	Retention   *RetentionDTO    `yaml:"retention"`
	Server      *ServerDTO       `yaml:"server"`
}

// UpstreamDTO locates the upstream services.
type UpstreamDTO struct {
	BaseURL   string         `yaml:"base_url" validate:"omitempty,http_url"`
	SearchURL string         `yaml:"search_url" validate:"omitempty,http_url"`
	IndexURL  string         `yaml:"index_url" validate:"omitempty,http_url"`
	UserAgent string         `yaml:"user_agent"`
	Timeout   *time.Duration `yaml:"timeout" validate:"omitempty,gt=0"`
}

// SessionDTO controls credential reuse.
type SessionDTO struct {
	Window *time.Duration `yaml:"window" validate:"omitempty,gt=0"`
}

// CacheDTO tunes the result cache.
type CacheDTO struct {
	Capacity      *int           `yaml:"capacity" validate:"omitempty,gte=1"`
	SweepInterval *time.Duration `yaml:"sweep_interval" validate:"omitempty,gt=0"`
	MissTTL       *time.Duration `yaml:"miss_ttl" validate:"omitempty,gt=0"`
	TicketTTL     *time.Duration `yaml:"ticket_ttl" validate:"omitempty,gt=0"`
	EmptyTTL      *time.Duration `yaml:"empty_ttl" validate:"omitempty,gt=0"`
	ScheduleTTL   *time.Duration `yaml:"schedule_ttl" validate:"omitempty,gt=0"`
	Alpha         *float64       `yaml:"alpha" validate:"omitempty,lt=0"`
	Beta          *float64       `yaml:"beta" validate:"omitempty,gt=0"`
}

// RetentionDTO controls how long persisted records are kept.
type RetentionDTO struct {
	AutoCleanRunNumbers *bool `yaml:"auto_clean_run_numbers"`
	RunNumberDays       *int  `yaml:"run_number_days" validate:"omitempty,gte=1"`
	SnapshotDays        *int  `yaml:"snapshot_days" validate:"omitempty,gte=1"`
}

// ServerDTO configures the query daemon.
type ServerDTO struct {
	Network     string         `yaml:"network" validate:"omitempty,oneof=unix tcp"`
	Address     string         `yaml:"address"`
	IdleTimeout *time.Duration `yaml:"idle_timeout" validate:"omitempty,gte=0"`
}
