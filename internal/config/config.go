package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default TTLs used when the configured duration string cannot be parsed.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

type Config struct {
	Server         ServerConfig                   `mapstructure:"server"`
	Database       DatabaseConfig                 `mapstructure:"database"`
	Redis          RedisConfig                    `mapstructure:"redis"`
	Kafka          KafkaConfig                    `mapstructure:"kafka"`
	JWT            JWTConfig                      `mapstructure:"jwt"`
	Logging        LoggingConfig                  `mapstructure:"logging"`
	OAuthProviders map[string]OAuthProviderConfig `mapstructure:"oauth_providers"`
}

type ServerConfig struct {
	Port               int           `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// URL builds a postgres connection URL from the parts.
func (d DatabaseConfig) URL() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// JWTConfig holds the signing secret and token TTLs. TTLs are duration
// strings with s|m|h|d suffixes (a bare number means seconds) so they can
// be shared with non-Go services reading the same configuration.
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	AccessTokenTTL  string `mapstructure:"access_token_ttl"`
	RefreshTokenTTL string `mapstructure:"refresh_token_ttl"`
}

// AccessTTL parses the access token TTL, falling back to 15 minutes.
func (j JWTConfig) AccessTTL() time.Duration {
	return ParseTTL(j.AccessTokenTTL, DefaultAccessTokenTTL)
}

// RefreshTTL parses the refresh token TTL, falling back to 30 days.
func (j JWTConfig) RefreshTTL() time.Duration {
	return ParseTTL(j.RefreshTokenTTL, DefaultRefreshTokenTTL)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OAuthProviderConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	RedirectURL  string   `mapstructure:"redirect_url"`
	AuthURL      string   `mapstructure:"auth_url"`
	TokenURL     string   `mapstructure:"token_url"`
	UserInfoURL  string   `mapstructure:"user_info_url"`
	Scopes       []string `mapstructure:"scopes"`
}

// ParseTTL parses a duration string using unit suffixes s, m, h or d; a
// value with no suffix is taken as seconds. Any unparseable value yields
// the fallback.
func ParseTTL(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	unit := time.Second
	numeric := value
	switch value[len(value)-1] {
	case 's':
		numeric = value[:len(value)-1]
	case 'm':
		unit = time.Minute
		numeric = value[:len(value)-1]
	case 'h':
		unit = time.Hour
		numeric = value[:len(value)-1]
	case 'd':
		unit = 24 * time.Hour
		numeric = value[:len(value)-1]
	}

	n, err := strconv.Atoi(numeric)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * unit
}
