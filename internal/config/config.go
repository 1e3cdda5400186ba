package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type CORS struct {
	// AllowedOrigins is a comma-separated allow-list. Empty means
	// unrestricted cross-origin access.
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	CORS            CORS            `mapstructure:"cors"`
	Logging         Logging         `mapstructure:"logging"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
}

// Origins splits the configured allow-list into individual origins.
func (c CORS) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional; env vars may come from the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("http_client.timeout_seconds", 10)

	// http server env vars
	_ = viper.BindEnv("http_server.host", "HTTP_HOST")
	_ = viper.BindEnv("http_server.port", "HTTP_PORT")

	// exchange rate api env vars
	_ = viper.BindEnv("exchange_rate_api.base_url", "EXCHANGE_API_BASE_URL")
	_ = viper.BindEnv("exchange_rate_api.api_key", "EXCHANGE_API_KEY")

	// cors env vars
	_ = viper.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")

	// logging env vars
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	// http client env vars
	_ = viper.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
