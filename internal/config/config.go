package config

import (
	"crypto/rsa"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTPrivateKey  *rsa.PrivateKey
	JWTPublicKey   *rsa.PublicKey
	DatabaseURL    string
	Port           string
	RedisAddress   string
	RedisPassword  string
	AllowedOrigins []string
	AdminEmail     string
	AdminPassword  string
	Environment    string
	RunMigrations  bool
}

func Load() *Config {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	privateKey, err := loadPrivateKey(getEnv("PRIVATE_KEY_PATH", "/etc/certs/private.pem"))
	if err != nil {
		panic("Failed to load private key: " + err.Error())
	}

	publicKey, err := loadPublicKey(getEnv("PUBLIC_KEY_PATH", "/etc/certs/public.pem"))
	if err != nil {
		panic("Failed to load public key: " + err.Error())
	}

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	return &Config{
		JWTPrivateKey:  privateKey,
		JWTPublicKey:   publicKey,
		DatabaseURL:    dbURL,
		Port:           getEnv("PORT", "8080"),
		RedisAddress:   getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		Environment:    getEnv("APP_ENV", "production"),
		RunMigrations:  getEnv("RUN_MIGRATIONS", "true") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(keyData)
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(keyData)
}
