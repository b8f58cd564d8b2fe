package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`
	Catalog CatalogConfig `envPrefix:"CATALOG_"`
	Cart    CartConfig    `envPrefix:"CART_"`
	Notify  NotifyConfig  `envPrefix:"NOTIFY_"`
	Auth    AuthConfig    `envPrefix:"AUTH_"`
	Kafka   KafkaConfig   `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	CORSPattern string `env:"CORS_PATTERN" envDefault:".*"`
}

// StorageConfig selects the key-value backend holding the cart,
// wishlist and current user documents.
type StorageConfig struct {
	Backend string      `env:"BACKEND" envDefault:"memory"` // memory, redis or mongo
	Redis   RedisConfig `envPrefix:"REDIS_"`
	Mongo   MongoConfig `envPrefix:"MONGO_"`
}

type RedisConfig struct {
	Addr      string `env:"ADDR" envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"`
	DB        int    `env:"DB" envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"storefront:"`
}

type MongoConfig struct {
	URI        string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database   string `env:"DATABASE" envDefault:"storefront"`
	Collection string `env:"COLLECTION" envDefault:"kv"`
}

type CatalogConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://dummyjson.com/products"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// PageLimit is how many products are fetched per catalog request.
	PageLimit int `env:"PAGE_LIMIT" envDefault:"100"`
	// HydrateConcurrency caps parallel per-id fetches when expanding
	// the wishlist into full product records.
	HydrateConcurrency int `env:"HYDRATE_CONCURRENCY" envDefault:"4"`
}

type CartConfig struct {
	FreeShippingThreshold decimal.Decimal `env:"FREE_SHIPPING_THRESHOLD" envDefault:"100"`
	FlatShippingFee       decimal.Decimal `env:"FLAT_SHIPPING_FEE" envDefault:"9.99"`
	// RemoveOnZero removes a line when its quantity is updated to a
	// value below 1. When false such updates are ignored.
	RemoveOnZero bool `env:"REMOVE_ON_ZERO" envDefault:"false"`
}

type NotifyConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"3s"`
}

type AuthConfig struct {
	MockEmail    string `env:"MOCK_EMAIL" envDefault:"user@example.com"`
	MockPassword string `env:"MOCK_PASSWORD" envDefault:"password123"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"storefront.activity"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
