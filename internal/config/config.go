package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env            string        `env:"APP_ENV" env-default:"local"`
	Port           string        `env:"PORT" env-default:"5000"`
	DBDriver       string        `env:"DB_DRIVER" env-default:"sqlite"`
	DBDSN          string        `env:"DB_DSN" env-default:"workersdeck.db"`
	JWTSecret      string        `env:"JWT_SECRET" env-required:"true"`
	SessionTTL     time.Duration `env:"SESSION_TTL" env-default:"24h"`
	ResetTTL       time.Duration `env:"RESET_TTL" env-default:"1h"`
	BaseURL        string        `env:"BASE_URL" env-default:"http://localhost:3000"`
	FrontendOrigin string        `env:"FRONTEND_ORIGIN" env-default:"https://workersdeckfrontend.vercel.app"`
	LogFile        string        `env:"LOG_FILE"`
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" env-default:"20"` // per IP per minute on /api/auth
	AdminEmail     string        `env:"ADMIN_EMAIL"`
	AdminPassword  string        `env:"ADMIN_PASSWORD"`
	SMTP           SMTP
}

type SMTP struct {
	Host string  `env:"SMTP_HOST"`
	Port int     `env:"SMTP_PORT" env-default:"2525"`
	User string  `env:"SMTP_USER"`
	Pass string  `env:"SMTP_PASS"`
	From string  `env:"SMTP_FROM" env-default:"no-reply@workersdeck.app"`
	Rate float64 `env:"MAIL_RATE" env-default:"2"` // messages per second
}

// Load reads an optional .env file from the working directory and then binds
// the process environment onto Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		log.Println("[config] no .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	log.Printf("[config] APP_ENV=%s PORT=%s DB_DRIVER=%s DB_DSN=%s SMTP_HOST=%s LOG_FILE=%s",
		cfg.Env, cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.SMTP.Host, cfg.LogFile)
	return cfg, nil
}
