package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	StoreDriver    string
	MongoURI       string
	DatabaseName   string
	JWTSecret      string
	AllowedOrigins []string

	AdminName     string
	AdminEmail    string
	AdminPassword string

	LoginRatePerMinute int

	Storage StorageConfig
}

type StorageConfig struct {
	Driver          string
	MaxUploadSizeMB int

	R2Bucket       string
	R2AccessKeyID  string
	R2SecretKey    string
	R2Endpoint     string
	R2PublicDomain string

	GCSBucket       string
	CredentialsFile string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:               getDefault("PORT", "8080"),
		StoreDriver:        strings.ToLower(getDefault("STORE_DRIVER", "mongo")),
		MongoURI:           os.Getenv("MONGODB_URI"),
		DatabaseName:       getDefault("DATABASE_NAME", "treenow"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS") + "," + os.Getenv("FRONTEND_URL")),
		AdminName:          getDefault("ADMIN_NAME", "Admin"),
		AdminEmail:         strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 20),
		Storage: StorageConfig{
			Driver:          strings.ToLower(os.Getenv("STORAGE_DRIVER")),
			MaxUploadSizeMB: getInt("MAX_UPLOAD_SIZE_MB", 5),
			R2Bucket:        os.Getenv("R2_BUCKET"),
			R2AccessKeyID:   os.Getenv("R2_ACCESS_KEY_ID"),
			R2SecretKey:     os.Getenv("R2_SECRET_ACCESS_KEY"),
			R2Endpoint:      os.Getenv("R2_ENDPOINT"),
			R2PublicDomain:  os.Getenv("R2_PUBLIC_DOMAIN"),
			GCSBucket:       os.Getenv("GCS_BUCKET"),
			CredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
		},
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET env var")
	}
	switch c.StoreDriver {
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("missing MONGODB_URI env var")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (expected mongo or memory)", c.StoreDriver)
	}
	switch c.Storage.Driver {
	case "", "r2", "gcs":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected r2 or gcs)", c.Storage.Driver)
	}
	return nil
}

// SeedAdmin reports whether an admin account should be ensured at startup.
func (c *Config) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func getDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := make([]string, 0)
	seen := map[string]bool{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" && !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
