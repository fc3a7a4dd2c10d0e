package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Ledger LedgerConfig `mapstructure:"ledger"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

// AdminConfig 管理端访问配置。
// TokenHash 是管理口令的 bcrypt 哈希 (通常通过环境变量 ADMIN_TOKEN_HASH 注入)，
// 完整的用户认证体系由宿主应用负责，这里只做最薄的一层校验。
type AdminConfig struct {
	TokenHash string `mapstructure:"token_hash"`
}

// LedgerConfig 账本相关配置。
type LedgerConfig struct {
	CacheTTLSeconds    int    `mapstructure:"cache_ttl_seconds"`   // 余额读缓存 TTL
	CacheBackend       string `mapstructure:"cache_backend"`       // "redis" or "memory"
	NotificationsTopic string `mapstructure:"notifications_topic"` // 通知事件主题
	RelayIntervalMS    int    `mapstructure:"relay_interval_ms"`   // Outbox 轮询间隔
	EmitterGroup       string `mapstructure:"emitter_group"`       // 通知投递消费组
}

var Global Config

func Init() {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath(".")      // optionally look for config in the working directory
	viper.AddConfigPath("./config")

	// 环境变量设置
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 设置默认值
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error if desired
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			// Config file was found but another error was produced
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "ledger_user")
	viper.SetDefault("db.password", "ledger_password")
	viper.SetDefault("db.name", "ledger_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.mq_type", "redis")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("ledger.cache_ttl_seconds", 30)
	viper.SetDefault("ledger.cache_backend", "redis")
	viper.SetDefault("ledger.notifications_topic", "ledger_events_notification")
	viper.SetDefault("ledger.relay_interval_ms", 500)
	viper.SetDefault("ledger.emitter_group", "notification_emitter")
}
