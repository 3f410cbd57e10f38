package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Bot         BotConfig         `mapstructure:"bot"`
	Classifier  ClassifierConfig  `mapstructure:"classifier"`
	Interpreter InterpreterConfig `mapstructure:"interpreter"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TLS       bool          `mapstructure:"tls"`
	PolicyTTL time.Duration `mapstructure:"policy_ttl"`
}

type BotConfig struct {
	ID string `mapstructure:"id"`
	// PublicKey is the PEM encoded key the platform signs commands and
	// notifications with.
	PublicKey        string        `mapstructure:"platform_public_key"`
	AuthToken        string        `mapstructure:"auth_token"`
	ImageURLTemplate string        `mapstructure:"image_url_template"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

type ClassifierConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	Endpoint       string        `mapstructure:"endpoint"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxFailures    uint32        `mapstructure:"max_failures"`
	BreakerTimeout time.Duration `mapstructure:"breaker_timeout"`
}

type InterpreterConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

var globalConfig Config

// Load reads config.yaml from configPath, ./config or the working directory.
// Every key can be overridden from the environment, e.g. DATABASE_HOST.
func Load(configPath string) error {
	cfg, err := load(viper.New(), configPath)
	if err != nil {
		return err
	}
	globalConfig = *cfg
	return nil
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaultValues(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Defaults also register the keys so that AutomaticEnv can override them
// without a config file.
func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("metrics.enabled", true)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "trustmod")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 25)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)
	v.SetDefault("redis.policy_ttl", 5*time.Minute)

	v.SetDefault("bot.id", "")
	v.SetDefault("bot.platform_public_key", "")
	v.SetDefault("bot.auth_token", "")
	v.SetDefault("bot.image_url_template", "https://%s.raw.icp0.io/blobs/%s")
	v.SetDefault("bot.request_timeout", 10*time.Second)

	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.model", "omni-moderation-latest")
	v.SetDefault("classifier.endpoint", "https://api.openai.com/v1/moderations")
	v.SetDefault("classifier.timeout", 10*time.Second)
	v.SetDefault("classifier.max_failures", 5)
	v.SetDefault("classifier.breaker_timeout", 30*time.Second)

	v.SetDefault("interpreter.provider", "openai")
	v.SetDefault("interpreter.api_key", "")
	v.SetDefault("interpreter.base_url", "")
	v.SetDefault("interpreter.model", "gpt-4o-mini")
	v.SetDefault("interpreter.temperature", 0.0)
	v.SetDefault("interpreter.max_tokens", 512)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.host", "localhost")
	v.SetDefault("kafka.port", "9092")
	v.SetDefault("kafka.topic", "moderation-decisions")
}

func GetConfig() *Config {
	return &globalConfig
}
