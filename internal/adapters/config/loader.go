// Package config loads railfare.yaml into the runtime configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const day = 24 * time.Hour

var endpointKeys = map[string]domain.Endpoint{
	"tickets":     domain.EndpointTickets,
	"schedule":    domain.EndpointSchedule,
	"run_numbers": domain.EndpointRunNumbers,
	"stations":    domain.EndpointStations,
	"session":     domain.EndpointSession,
}

// Loader reads the configuration file.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load returns the configuration for cwd. The file named by RAILFARE_CONFIG
// wins; otherwise railfare.yaml is searched from cwd upwards. Without a file the
// defaults are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, err := l.find(cwd)
	if err != nil {
		return nil, err
	}
	if path == "" {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
		return domain.DefaultConfig(), nil
	}
	return l.LoadFile(path)
}

// LoadFile reads, validates and applies the file at path over the defaults.
func (l *Loader) LoadFile(path string) (*domain.Config, error) {
	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := l.validate.Struct(&file); err != nil {
		return nil, invalid(err, path)
	}
	l.Logger.Debug("loaded configuration from " + path)
	return apply(&file, filepath.Dir(path)), nil
}

func (l *Loader) find(cwd string) (string, error) {
	if explicit := os.Getenv(domain.ConfigEnvVar); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", domain.Annotate(domain.ErrConfigReadFailed, "path", explicit, "env", domain.ConfigEnvVar)
		}
		return explicit, nil
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from discovery or the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return domain.Annotate(domain.ErrConfigReadFailed, "reason", err.Error())
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return domain.Annotate(domain.ErrConfigParseFailed, "reason", err.Error())
	}
	return nil
}

func invalid(err error, path string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Annotate(domain.ErrConfigInvalid, "path", path, "reason", err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()+":"+fe.Tag())
	}
	return domain.Annotate(domain.ErrConfigInvalid, "path", path, "fields", strings.Join(fields, ","))
}

// apply overlays file on the defaults. Relative paths resolve against base.
func apply(file *File, base string) *domain.Config {
	cfg := domain.DefaultConfig()

	if file.DataDir != "" {
		cfg.DataDir = resolvePath(file.DataDir, base)
		cfg.Server.Address = domain.DefaultSocketPath(cfg.DataDir)
	}

	if u := file.Upstream; u != nil {
		setString(&cfg.Upstream.BaseURL, strings.TrimSuffix(u.BaseURL, "/"))
		setString(&cfg.Upstream.SearchURL, strings.TrimSuffix(u.SearchURL, "/"))
		setString(&cfg.Upstream.IndexURL, strings.TrimSuffix(u.IndexURL, "/"))
		setString(&cfg.Upstream.UserAgent, u.UserAgent)
		set(&cfg.Upstream.Timeout, u.Timeout)
	}

	for key, n := range file.Concurrency {
		cfg.Concurrency[endpointKeys[key]] = n
	}

	if s := file.Session; s != nil {
		set(&cfg.Session.Window, s.Window)
	}

	if c := file.Cache; c != nil {
		set(&cfg.Cache.Capacity, c.Capacity)
		set(&cfg.Cache.SweepInterval, c.SweepInterval)
		set(&cfg.Cache.MissTTL, c.MissTTL)
		set(&cfg.Cache.TicketTTL, c.TicketTTL)
		set(&cfg.Cache.EmptyTTL, c.EmptyTTL)
		set(&cfg.Cache.ScheduleTTL, c.ScheduleTTL)
		set(&cfg.Cache.Alpha, c.Alpha)
		set(&cfg.Cache.Beta, c.Beta)
	}

	if r := file.Retention; r != nil {
		set(&cfg.Retention.AutoCleanRunNumbers, r.AutoCleanRunNumbers)
		if r.RunNumberDays != nil {
			cfg.Retention.RunNumbers = time.Duration(*r.RunNumberDays) * day
		}
		if r.SnapshotDays != nil {
			cfg.Retention.Snapshots = time.Duration(*r.SnapshotDays) * day
		}
	}

	if s := file.Server; s != nil {
		setString(&cfg.Server.Network, s.Network)
		if s.Address != "" {
			cfg.Server.Address = s.Address
			if cfg.Server.Network == "unix" {
				cfg.Server.Address = resolvePath(s.Address, base)
			}
		}
		set(&cfg.Server.IdleTimeout, s.IdleTimeout)
	}

	return cfg
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func resolvePath(p, base string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
