package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	// Remote API
	APIBaseURL   string
	SiteOrigin   string // Public site origin, used for share links
	HTTPTimeout  time.Duration
	APIRateLimit float64 // Outbound requests per second, 0 disables pacing
	APIRateBurst int

	// Third-party SaaS
	StripePublishableKey string
	Web3FormsKey         string
	Web3FormsEndpoint    string
	ContactToEmail       string

	// Local persistence
	StateDir string

	// Cache
	CacheProductTTL time.Duration
	CacheCatalogTTL time.Duration

	// Business Rules
	FreeShippingThreshold float64
	FlatShippingRate      float64
	MaxCartQuantity       int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// We don't error here because in deployed envs, .env might not exist,
		// and we rely on system env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL:   getEnv("API_BASE_URL", "http://localhost:5000/api"),
		SiteOrigin:   getEnv("SITE_ORIGIN", "http://localhost:3000"),
		HTTPTimeout:  getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		APIRateLimit: getFloat64Env("API_RATE_LIMIT", 0),
		APIRateBurst: getIntEnv("API_RATE_BURST", 5),

		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		Web3FormsKey:         getEnv("WEB3FORMS_KEY", ""),
		Web3FormsEndpoint:    getEnv("WEB3FORMS_ENDPOINT", "https://api.web3forms.com/submit"),
		ContactToEmail:       getEnv("CONTACT_TO_EMAIL", "nothingelsestore@nothingelsesolutions.com"),

		StateDir: getEnv("STATE_DIR", defaultStateDir()),

		// Cache defaults: 10m single product, 5m listings
		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),
		CacheCatalogTTL: getDurationEnv("CACHE_CATALOG_TTL", 5*time.Minute),

		// Business rules: free shipping at $50, $4.99 flat rate below it
		FreeShippingThreshold: getFloat64Env("FREE_SHIPPING_THRESHOLD", 50),
		FlatShippingRate:      getFloat64Env("FLAT_SHIPPING_RATE", 4.99),
		MaxCartQuantity:       getIntEnv("MAX_CART_QUANTITY", 1000),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.APIBaseURL == "" {
		log.Fatal("CRITICAL: API_BASE_URL environment variable is required")
	}
	if c.StripePublishableKey == "" {
		log.Println("WARNING: STRIPE_PUBLISHABLE_KEY not set. Checkout will fail.")
	}
	if c.Web3FormsKey == "" {
		log.Println("WARNING: WEB3FORMS_KEY not set. Contact submissions will fail.")
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return home + "/.storefront"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
