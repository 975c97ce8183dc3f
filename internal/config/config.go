package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Bunny    BunnyConfig    `mapstructure:"bunny"`
	Media    MediaConfig    `mapstructure:"media"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// BunnyConfig holds the video CDN credentials. APIKey and SigningKey are
// server-side secrets: read once at startup, never mutated, and never
// included in any response body.
type BunnyConfig struct {
	LibraryID  string `mapstructure:"library_id"`
	APIKey     string `mapstructure:"api_key"`
	SigningKey string `mapstructure:"signing_key"`
	APIHost    string `mapstructure:"api_host"`   // e.g. https://video.bunnycdn.com
	EmbedHost  string `mapstructure:"embed_host"` // e.g. iframe.mediadelivery.net
}

// MediaConfig configures the S3-compatible bucket backing the public image
// media library (unsigned delivery, distinct from the signed video flow).
type MediaConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	PublicBaseURL   string `mapstructure:"public_base_url"` // CDN hostname the bucket is served from
}

// JWTConfig defines JWT specific configuration for staff sessions.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// UploadConfig bounds request bodies. MaxBodyBytes applies to the JSON/admin
// routes; the raw video upload route is exempt and is instead bounded by
// VideoTimeout (a multi-minute allowance for large transfers).
type UploadConfig struct {
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	VideoTimeout time.Duration `mapstructure:"video_timeout"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: nested keys map via the replacer,
	// e.g. bunny.signing_key -> BUNNY_SIGNING_KEY.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Defaults. Credentials intentionally have none: a missing key surfaces
	// as a configuration error on first use rather than a silent fallback.
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "coursehub_admin")
	viper.SetDefault("bunny.api_host", "https://video.bunnycdn.com")
	viper.SetDefault("bunny.embed_host", "iframe.mediadelivery.net")
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("upload.max_body_bytes", 5<<20) // 5 MB
	viper.SetDefault("upload.video_timeout", "300s")

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults may be enough.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
