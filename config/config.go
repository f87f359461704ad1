package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Reward   RewardConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8099"`
	Env          string        `envconfig:"ENV" default:"development"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
}

type DatabaseConfig struct {
	// Driver selects mysql (production) or sqlite (dev/test).
	Driver          string        `envconfig:"DB_DRIVER" default:"mysql"`
	DSN             string        `envconfig:"DB_DSN" default:"cinebox:cinebox@tcp(localhost:3306)/cinebox?charset=utf8mb4&parseTime=True&loc=Local"`
	SQLitePath      string        `envconfig:"DB_SQLITE_PATH" default:"cinebox.db"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

type JWTConfig struct {
	AccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" default:"change-me-in-production"`
	RefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" default:"change-me-refresh"`
	AccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"24h"`
	RefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"720h"`
	Issuer        string        `envconfig:"JWT_ISSUER" default:"cinebox"`
}

type RewardConfig struct {
	// Max seconds accepted in one watch flush. The shell batches at 60s;
	// anything wildly above that is a client bug or abuse.
	MaxFlushSeconds int `envconfig:"REWARD_MAX_FLUSH_SECONDS" default:"600"`
}

type AdminConfig struct {
	Email    string `envconfig:"ADMIN_EMAIL" default:"admin@cinebox.local"`
	Password string `envconfig:"ADMIN_PASSWORD" default:"change-me-admin"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CINEBOX", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
