package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type OrderConfig struct {
	Env         string `yaml:"env"`
	HTTPServer  `yaml:"http_server"`
	OrderDB     `yaml:"order_db"`
	Kafka       `yaml:"kafka"`
	AccessToken `yaml:"access_token"`
	Lifecycle   `yaml:"lifecycle"`
	Audit       `yaml:"audit"`
	OrgService  `yaml:"org_service"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type OrderDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type Kafka struct {
	Brokers          []string `yaml:"brokers"`
	OrderEventsTopic string   `yaml:"order_events_topic"`
	AuditTopic       string   `yaml:"audit_topic"`
}

type AccessToken struct {
	PrivateKeyPath string `yaml:"private_key_path"`
	Issuer         string `yaml:"issuer"`
	Audience       string `yaml:"audience"`
}

type Lifecycle struct {
	// Timezone anchors the "expires at next midnight" rule for creation
	// and redemption windows.
	Timezone            string `yaml:"timezone"`
	RedeemWindowMinutes int    `yaml:"redeem_window_minutes"`
	TTLMinutes          int    `yaml:"ttl_minutes"`
	PruneSchedule       string `yaml:"prune_schedule"`
}

type Audit struct {
	QueueSize            int `yaml:"queue_size"`
	BatchSize            int `yaml:"batch_size"`
	FlushIntervalSeconds int `yaml:"flush_interval_seconds"`
}

type OrgService struct {
	BaseURL string `yaml:"base_url"`
}

func MustLoad() *OrderConfig {
	configPath := os.Getenv("ORDER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ORDER_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg OrderConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
