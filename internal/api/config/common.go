package config

// Config is the root configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	DB            DBConfig            `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Elastic       ElasticConfig       `mapstructure:"elastic"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	KafkaEmail    KafkaEmailConsumer  `mapstructure:"kafka_email_consumer"`
	Email         EmailConfig         `mapstructure:"email"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Slug          SlugConfig          `mapstructure:"slug"`
	Log           LogConfig           `mapstructure:"log"`
	LogStore      LogStoreConfig      `mapstructure:"log_store"`
	Mongo         MongoConfig         `mapstructure:"mongo"`
	Cron          CronConfig          `mapstructure:"cron"`
	FrontendURL   string              `mapstructure:"frontend_url"`
	Pagination    PaginationConfig    `mapstructure:"pagination"`
	AdminTracking AdminTrackingConfig `mapstructure:"admin_tracking"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"`
	TrustedProxy []string `mapstructure:"trusted_proxy"`
}

// DBConfig database settings
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO settings
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// StorageConfig media storage
type StorageConfig struct {
	UseS3         bool   `mapstructure:"use_s3"`
	Location      string `mapstructure:"location"`
	LocalDir      string `mapstructure:"local_dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	ThumbWidth    int    `mapstructure:"thumb_width"`
	MaxUploadMB   int    `mapstructure:"max_upload_mb"`
}

// ElasticConfig Elasticsearch settings
type ElasticConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	PostIndex string `mapstructure:"post_index"`
}

type KafkaConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaEmailConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// EmailConfig SMTP settings
type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	UseSSL   bool   `mapstructure:"use_ssl"`
}

// AuthConfig admin authentication
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	JWTExpireHours  int    `mapstructure:"jwt_expire_hours"`
	OTPEnabled      bool   `mapstructure:"otp_enabled"`
	OTPTTLSeconds   int    `mapstructure:"otp_ttl_seconds"`
	CodeTTLSeconds  int    `mapstructure:"code_ttl_seconds"`
	InviteTTLHours  int    `mapstructure:"invite_ttl_hours"`
	LoginRatePerMin int    `mapstructure:"login_rate_per_min"`
}

type SlugConfig struct {
	Transliterate bool `mapstructure:"transliterate"`
}

type LogConfig struct {
	Level         string `mapstructure:"level"`
	PersistLevel  string `mapstructure:"persist_level"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// LogStoreConfig where persisted log entries go: database | mongo
type LogStoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type CronConfig struct {
	EmailRetry   string `mapstructure:"email_retry"`
	Reindex      string `mapstructure:"reindex"`
	LogRetention string `mapstructure:"log_retention"`
}

type PaginationConfig struct {
	PageSize    int `mapstructure:"page_size"`
	MaxPageSize int `mapstructure:"max_page_size"`
}

type AdminTrackingConfig struct {
	PathPrefix string `mapstructure:"path_prefix"`
}
