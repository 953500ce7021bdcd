package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg global configuration instance
var Cfg *Config

const envPrefix = "NEWSROOM"

// LoadConfig reads configs/config.yaml plus environment overrides into Cfg
func LoadConfig() error {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg
	return nil
}

// Default returns a configuration holding only the defaults.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.trusted_proxy", []string{"localhost"})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("storage.location", "media")
	v.SetDefault("storage.local_dir", "./media")
	v.SetDefault("storage.public_base_url", "/media")
	v.SetDefault("storage.thumb_width", 400)
	v.SetDefault("storage.max_upload_mb", 50)

	v.SetDefault("elastic.post_index", "newsroom_posts")

	v.SetDefault("kafka.consumer.session_timeout", 30)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 60)
	v.SetDefault("kafka_email_consumer.topic", "newsroom.email")
	v.SetDefault("kafka_email_consumer.group_id", "newsroom-email")

	v.SetDefault("email.port", 587)

	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.jwt_expire_hours", 24)
	v.SetDefault("auth.otp_ttl_seconds", 300)
	v.SetDefault("auth.code_ttl_seconds", 600)
	v.SetDefault("auth.invite_ttl_hours", 72)
	v.SetDefault("auth.login_rate_per_min", 10)

	v.SetDefault("slug.transliterate", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.persist_level", "warn")
	v.SetDefault("log.retention_days", 90)
	v.SetDefault("log_store.driver", "database")

	v.SetDefault("cron.email_retry", "*/10 * * * * *")
	v.SetDefault("cron.reindex", "@daily")
	v.SetDefault("cron.log_retention", "@daily")

	v.SetDefault("frontend_url", "http://localhost:3000")

	// keys without a meaningful default still need registering for AutomaticEnv
	for _, key := range []string{
		"database.dsn", "redis.password",
		"minio.internal_endpoint", "minio.external_endpoint", "minio.access_key", "minio.secret_key", "minio.bucket",
		"elastic.address", "elastic.username", "elastic.password",
		"email.host", "email.username", "email.password", "email.from",
		"mongo.url", "mongo.database",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("kafka.brokers", []string{})

	v.SetDefault("pagination.page_size", 12)
	v.SetDefault("pagination.max_page_size", 100)

	v.SetDefault("admin_tracking.path_prefix", "/api/admin/")
}
