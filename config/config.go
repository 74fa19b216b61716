package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPath               = "."
	defaultPort               = 3000
	defaultMaxRequestBodySize = "100KB"
	defaultBcryptCost         = 10
	defaultTokenTTL           = 24 * time.Hour
	defaultQueryTimeout       = 5 * time.Second
	defaultMetricsPath        = "/metrics"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// legacyEnvKeys maps the bare variable names older deployments set onto config keys.
var legacyEnvKeys = map[string]string{
	"JWT_SECRET":     "secretKey.access",
	"JWT_EXPIRES_IN": "auth.tokenTTL",
	"PORT":           "http.port",
}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP HTTPConfig `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Store StoreConfig `json:"store" yaml:"store"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type HTTPConfig struct {
	Port               int    `json:"port" yaml:"port"`
	MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
	Timeouts           struct {
		ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	} `json:"timeouts" yaml:"timeouts"`
	CORS *CORSConfig `json:"cors" yaml:"cors"`
}

// CORSConfig mirrors echo's CORS options that the service exposes.
type CORSConfig struct {
	AllowOrigins     []string `json:"allowOrigins" yaml:"allowOrigins"`
	AllowHeaders     []string `json:"allowHeaders" yaml:"allowHeaders"`
	AllowCredentials bool     `json:"allowCredentials" yaml:"allowCredentials"`
}

// StoreConfig selects the credential store backend and bounds every store call.
type StoreConfig struct {
	Driver       string        `json:"driver" yaml:"driver"`
	QueryTimeout time.Duration `json:"queryTimeout" yaml:"queryTimeout"`
	AutoMigrate  *bool         `json:"autoMigrate" yaml:"autoMigrate"`
}

// ShouldAutoMigrate reports whether schema migrations run on startup. Unset means true.
func (s StoreConfig) ShouldAutoMigrate() bool {
	return s.AutoMigrate == nil || *s.AutoMigrate
}

// SecretKeyConfig holds signing secrets. Access has no default.
type SecretKeyConfig struct {
	Access string `json:"access" yaml:"access"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf, then environment variables, then flags.
func LoadWithEnv[T any](currEnv string, flags *pflag.FlagSet, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			if key, ok := legacyEnvKeys[k]; ok {
				return key, v
			}
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if flags != nil {
		// Flags only override when explicitly set or when the key is absent from file/env.
		if err := koanfInstance.Load(posflag.Provider(flags, ".", koanfInstance), nil); err != nil {
			return nil, errors.Wrap(err, "load command line flags failed")
		}
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the process-wide configuration once at startup.
func New(flags *pflag.FlagSet) (*Config, error) {
	searchPaths := []string{"config", "../config", "../../config"}
	if flags != nil {
		if dir, err := flags.GetString(FlagConfigDir); err == nil && dir != "" {
			searchPaths = append([]string{dir}, searchPaths...)
		}
	}

	cfg, err := LoadWithEnv[Config]("config", flags, searchPaths...)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Postgres != nil {
		// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every optional setting that was left empty.
func (cfg *Config) ApplyDefaults() {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultPort
	}
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.CORS == nil {
		cfg.HTTP.CORS = &CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreDriverPostgres
	}
	if cfg.Store.QueryTimeout <= 0 {
		cfg.Store.QueryTimeout = defaultQueryTimeout
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{Enabled: true}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
}

// Validate rejects configurations the service must not start with.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.SecretKey.Access) == "" {
		return errors.New("secretKey.access must be provided")
	}
	if cfg.Auth != nil && (cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost) {
		return errors.Errorf("auth.bcryptCost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.Auth.BcryptCost)
	}

	switch cfg.Store.Driver {
	case StoreDriverPostgres:
		if cfg.Postgres == nil {
			return errors.New("postgres config is required when store.driver is postgres")
		}
	case StoreDriverMemory:
	default:
		return errors.Errorf("unknown store.driver: %s", cfg.Store.Driver)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
