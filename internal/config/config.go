package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // Zone names resolve even on hosts without a zoneinfo database

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Paging   PagingConfig   `mapstructure:"paging"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
	// OpTimeout bounds every store call made while serving a request.
	OpTimeout time.Duration `mapstructure:"op_timeout"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
	// MaxUploadBytes caps client photos and instructor documents.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// PagingConfig sets list page sizes.
type PagingConfig struct {
	DefaultSize int `mapstructure:"default_size"`
	MaxSize     int `mapstructure:"max_size"`
}

// ScheduleConfig holds workout booking defaults.
type ScheduleConfig struct {
	DefaultDuration time.Duration `mapstructure:"default_duration"`
	// Location is the gym's IANA time zone, e.g. "America/Toronto". Workout
	// days start at its midnight and times are shown on its clock.
	Location string `mapstructure:"location"`
	// Zone is Location resolved by LoadConfig.
	Zone *time.Location `mapstructure:"-"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	// Set the path to look for the config file in
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	// A missing file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	// Duration strings ("60m", "1h") decode straight into time.Duration fields.
	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if err = config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gym_management")
	v.SetDefault("database.op_timeout", "5s")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket_name", "gym-management")
	v.SetDefault("s3.use_ssl", true) // Default to true for cloud providers
	v.SetDefault("s3.url_expiry", "15m")
	v.SetDefault("s3.max_upload_bytes", 5<<20)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h") // Default JWT expiry to 1 hour
	v.SetDefault("paging.default_size", 10)
	v.SetDefault("paging.max_size", 100)
	v.SetDefault("schedule.default_duration", "30m")
	v.SetDefault("schedule.location", "America/Toronto")
}

func (c *Config) validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.Paging.DefaultSize < 1 || c.Paging.MaxSize < c.Paging.DefaultSize {
		errs = append(errs, errors.New("paging.default_size must be between 1 and paging.max_size"))
	}
	if c.Schedule.DefaultDuration <= 0 {
		errs = append(errs, errors.New("schedule.default_duration must be positive"))
	}
	if zone, err := time.LoadLocation(c.Schedule.Location); err != nil {
		errs = append(errs, fmt.Errorf("schedule.location: %w", err))
	} else {
		c.Schedule.Zone = zone
	}
	return errors.Join(errs...)
}
