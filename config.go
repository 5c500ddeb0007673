package netsuite

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every configuration environment variable,
// e.g. NETSUITE_ACCOUNT or NETSUITE_CONSUMER_KEY.
const EnvPrefix = "NETSUITE"

// Config holds client settings loaded from a file and the environment.
type Config struct {
	Account  string `mapstructure:"account"`
	Endpoint string `mapstructure:"endpoint"`

	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
	TokenID        string `mapstructure:"token_id"`
	TokenSecret    string `mapstructure:"token_secret"`

	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`

	ApplicationID string        `mapstructure:"application_id"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
}

var configKeys = []string{
	"account", "endpoint",
	"consumer_key", "consumer_secret", "token_id", "token_secret",
	"email", "password", "role",
	"application_id", "timeout", "user_agent",
}

// LoadConfig reads settings from the file at path, when path is non-empty,
// and overlays NETSUITE_* environment variables. The file format follows
// its extension (yaml, json, toml, env).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault("timeout", defaultTimeout)

	// AutomaticEnv alone does not surface keys absent from the file to Unmarshal.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("netsuite: bind env %q: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("netsuite: read config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("netsuite: decode config: %w", err)
	}
	cfg.Account = strings.TrimSpace(cfg.Account)
	return &cfg, nil
}

// Options converts the configuration into client options. Empty settings
// are skipped so that defaults apply.
func (c *Config) Options() []ClientOption {
	var opts []ClientOption
	if c.Account != "" {
		opts = append(opts, WithAccount(c.Account))
	}
	if c.Endpoint != "" {
		opts = append(opts, WithEndpoint(c.Endpoint))
	}
	if c.ConsumerKey != "" || c.TokenID != "" {
		opts = append(opts, WithTokenAuth(c.ConsumerKey, c.ConsumerSecret, c.TokenID, c.TokenSecret))
	}
	if c.Email != "" {
		opts = append(opts, WithPassport(c.Email, c.Password, c.Role))
	}
	if c.ApplicationID != "" {
		opts = append(opts, WithApplicationID(c.ApplicationID))
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	if c.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.UserAgent))
	}
	return opts
}
