package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	JWT         JWTConfig
	Redis       RedisConfig
	Minio       MinioConfig
}

type JWTConfig struct {
	Secret        string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	User        string
	Port        int
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	envJWTSecret = "JWT_SECRET"

	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinioEndpoint  = "MINIO_ENDPOINT"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioBucket    = "MINIO_BUCKET"
	envMinioUseSSL    = "MINIO_USE_SSL"
)

// NewConfig loads the service configuration: a TOML file for the stable
// service settings, environment variables for credentials and endpoints.
func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	secret := os.Getenv(envJWTSecret)
	if secret == "" {
		return nil, fmt.Errorf("%s must be set", envJWTSecret)
	}
	cfg.JWT = JWTConfig{
		Secret:        secret,
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}

	cfg.Redis.Host = os.Getenv(envRedisHost)
	if cfg.Redis.Host != "" {
		port, err := strconv.Atoi(os.Getenv(envRedisPort))
		if err != nil {
			return nil, fmt.Errorf("redis port must be int value: %w", err)
		}
		cfg.Redis.Port = port
		cfg.Redis.Password = os.Getenv(envRedisPass)
		cfg.Redis.User = os.Getenv(envRedisUser)
		cfg.Redis.DialTimeout = 10 * time.Second
		cfg.Redis.ReadTimeout = 10 * time.Second
	}

	cfg.Minio = MinioConfig{
		Endpoint:  os.Getenv(envMinioEndpoint),
		AccessKey: os.Getenv(envMinioAccessKey),
		SecretKey: os.Getenv(envMinioSecretKey),
		Bucket:    os.Getenv(envMinioBucket),
		UseSSL:    os.Getenv(envMinioUseSSL) == "true",
	}
	if cfg.Minio.Bucket == "" {
		cfg.Minio.Bucket = "request-attachments"
	}

	log.Info("config parsed")

	return cfg, nil
}
