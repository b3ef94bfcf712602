package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Bcrypt    BcryptConfig
	Session   SessionConfig
	Avatar    AvatarConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	Lockout   LockoutConfig
	Secure    SecureConfig
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URL      string
	Database string
}

type RedisConfig struct {
	// URL enables the notification queue; empty runs without it.
	URL string
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type BcryptConfig struct {
	Cost int
}

type SessionConfig struct {
	// MaxPerUser caps the session-token list; logging in past the cap
	// evicts the oldest session. 0 = unbounded.
	MaxPerUser int
}

type AvatarConfig struct {
	// MaxBytes caps the upload size.
	MaxBytes int64
	// Size is the square edge of the stored PNG.
	Size int
}

type EmailConfig struct {
	From string
}

type RateLimitConfig struct {
	// RatePerIP like "100-M" (100/min). Empty disables.
	RatePerIP string
}

type LockoutConfig struct {
	MaxAttempts     int
	CooldownSeconds int
}

type SecureConfig struct {
	IsDevelopment bool
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()
	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "3000"),
		},
		Mongo: MongoConfig{
			URL:      getEnvOrDefault("MONGODB_URL", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGODB_DATABASE", "task-manager-api"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getEnvOrDefault("JWT_ISSUER", "task-manager-api"),
		},
		Bcrypt: BcryptConfig{
			Cost: viper.GetInt("BCRYPT_COST"),
		},
		Session: SessionConfig{
			MaxPerUser: viper.GetInt("MAX_SESSIONS_PER_USER"),
		},
		Avatar: AvatarConfig{
			MaxBytes: viper.GetInt64("AVATAR_MAX_BYTES"),
			Size:     viper.GetInt("AVATAR_SIZE"),
		},
		Email: EmailConfig{
			From: getEnvOrDefault("EMAIL_FROM", "julie.berthiaume@gmail.com"),
		},
		RateLimit: RateLimitConfig{
			RatePerIP: os.Getenv("RATE_LIMIT_PER_IP"),
		},
		Lockout: LockoutConfig{
			MaxAttempts:     viper.GetInt("LOCKOUT_MAX_ATTEMPTS"),
			CooldownSeconds: viper.GetInt("LOCKOUT_COOLDOWN_SECONDS"),
		},
		Secure: SecureConfig{
			IsDevelopment: viper.GetBool("DEV_MODE"),
		},
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Bcrypt.Cost == 0 {
		cfg.Bcrypt.Cost = 8
	}
	if cfg.Session.MaxPerUser == 0 {
		cfg.Session.MaxPerUser = 10
	}
	if cfg.Avatar.MaxBytes == 0 {
		cfg.Avatar.MaxBytes = 1 << 20 // 1 MB
	}
	if cfg.Avatar.Size == 0 {
		cfg.Avatar.Size = 250
	}
	if cfg.Lockout.CooldownSeconds == 0 {
		cfg.Lockout.CooldownSeconds = 900
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
