package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/talentpipe/ops-api/internal/notification"
	"github.com/talentpipe/ops-api/internal/reminder"
	"github.com/talentpipe/ops-api/internal/repository/postgres"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type NotificationConfig struct {
	// StorageKey is the fixed process-wide key for the persisted log.
	StorageKey string `mapstructure:"storage_key"`
	// FilePath backs the log when no Redis URL is configured.
	FilePath string `mapstructure:"file_path"`
	Simulator struct {
		Enabled     bool          `mapstructure:"enabled"`
		Interval    time.Duration `mapstructure:"interval"`
		Probability float64       `mapstructure:"probability"`
	} `mapstructure:"simulator"`
}

type ReminderConfig struct {
	Cadence    time.Duration   `mapstructure:"cadence"`
	Thresholds []time.Duration `mapstructure:"thresholds"`
	Band       time.Duration   `mapstructure:"band"`
	CatchUp    bool            `mapstructure:"catch_up"`
}

type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     postgres.Config    `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Notification NotificationConfig `mapstructure:"notification"`
	Reminder     ReminderConfig     `mapstructure:"reminder"`
	Email        EmailConfig        `mapstructure:"email"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
}

// envOverrides layers deployment secrets over the yaml file.
type envOverrides struct {
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	RedisURL   string `envconfig:"REDIS_URL"`
	SMTPHost   string `envconfig:"SMTP_HOST"`
	SMTPUser   string `envconfig:"SMTP_USER"`
	SMTPPass   string `envconfig:"SMTP_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.DBHost != "" {
		config.Database.Host = env.DBHost
	}
	if env.DBPort != 0 {
		config.Database.Port = env.DBPort
	}
	if env.DBUser != "" {
		config.Database.User = env.DBUser
	}
	if env.DBPassword != "" {
		config.Database.Password = env.DBPassword
	}
	if env.DBName != "" {
		config.Database.Name = env.DBName
	}
	if env.RedisURL != "" {
		config.Redis.URL = env.RedisURL
	}
	if env.SMTPHost != "" {
		config.Email.Host = env.SMTPHost
	}
	if env.SMTPUser != "" {
		config.Email.Username = env.SMTPUser
	}
	if env.SMTPPass != "" {
		config.Email.Password = env.SMTPPass
	}

	return &config, nil
}

// ToSchedulerConfig converts to the reminder package's own config type.
func (c *ReminderConfig) ToSchedulerConfig() reminder.Config {
	return reminder.Config{
		Cadence:    c.Cadence,
		Thresholds: c.Thresholds,
		Band:       c.Band,
		CatchUp:    c.CatchUp,
	}
}

func (c *NotificationConfig) ToSimulatorConfig() notification.SimulatorConfig {
	return notification.SimulatorConfig{
		Interval:    c.Simulator.Interval,
		Probability: c.Simulator.Probability,
	}
}
