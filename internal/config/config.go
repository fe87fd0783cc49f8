package config

import (
	"encoding/json"
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Redis     RedisConfig     `json:"redis"`
	Postgres  PostgresConfig  `json:"postgres"`
	Faucet    FaucetConfig    `json:"faucet"`
	Turnstile TurnstileConfig `json:"turnstile"`
	Account   AccountConfig   `json:"account"`
	Auth      AuthConfig      `json:"auth"`
}

type ServerConfig struct {
	Port        string `json:"port"`
	Environment string `json:"environment"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

func (r RedisConfig) GetRedisAddr() string {
	return r.Host + ":" + r.Port
}

type PostgresConfig struct {
	DSN string `json:"dsn"`
}

// FaucetConfig holds the engine transfer API settings. All three fields are
// required before a claim can be executed.
type FaucetConfig struct {
	EngineURL     string `json:"engine_url"`
	AccessToken   string `json:"access_token"`
	WalletAddress string `json:"wallet_address"`
}

// IsConfigured reports whether the faucet can actually move funds.
func (f FaucetConfig) IsConfigured() bool {
	return f.EngineURL != "" && f.AccessToken != "" && f.WalletAddress != ""
}

type TurnstileConfig struct {
	SecretKey string `json:"secret_key"`
	VerifyURL string `json:"verify_url"`
}

type AccountConfig struct {
	APIBaseURL string `json:"api_base_url"`
}

type AuthConfig struct {
	JWTSecret      string `json:"jwt_secret"`
	JWTExpiryHours int    `json:"jwt_expiry_hours"`
}

func Load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	return &config, nil
}

// Secrets come from the environment in deployment; the JSON file only carries
// non-sensitive defaults for local runs.
func (c *Config) applyEnvOverrides() {
	overrideString(&c.Server.Port, "PORT")
	overrideString(&c.Redis.Host, "REDIS_HOST")
	overrideString(&c.Redis.Port, "REDIS_PORT")
	overrideString(&c.Redis.Password, "REDIS_PASSWORD")
	overrideString(&c.Postgres.DSN, "POSTGRES_DSN")
	overrideString(&c.Faucet.EngineURL, "ENGINE_URL")
	overrideString(&c.Faucet.AccessToken, "ENGINE_ACCESS_TOKEN")
	overrideString(&c.Faucet.WalletAddress, "FAUCET_WALLET_ADDRESS")
	overrideString(&c.Turnstile.SecretKey, "TURNSTILE_SECRET_KEY")
	overrideString(&c.Account.APIBaseURL, "API_SERVER_URL")
	overrideString(&c.Auth.JWTSecret, "JWT_SECRET")

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Turnstile.VerifyURL == "" {
		c.Turnstile.VerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	}
	if c.Auth.JWTExpiryHours == 0 {
		c.Auth.JWTExpiryHours = 24
	}
}

func overrideString(dst *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*dst = v
	}
}
