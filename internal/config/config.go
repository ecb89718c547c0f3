package config

import (
	"log"
	"os"
	"time"
)

// Buy Now is deliberately a policy switch: observed storefront variants
// disagree on whether it bypasses the cart or adds-then-shows-cart.
const (
	BuyNowDirect = "direct" // stage only that product, go straight to checkout
	BuyNowCart   = "cart"   // add to cart, then show the cart
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	AdminEmail   string
	BuyNowMode   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "stickerpress.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	admin := os.Getenv("ADMIN_EMAIL")
	if admin == "" {
		admin = "admin@example.com"
	}
	buyNow := os.Getenv("BUYNOW_MODE")
	if buyNow != BuyNowCart {
		buyNow = BuyNowDirect
	}

	cfg := Config{
		Port:         port,
		DBDSN:        dsn,
		LogFile:      logFile,
		AdminEmail:   admin,
		BuyNowMode:   buyNow,
		ReadTimeout:  dur("READ_TIMEOUT", 10*time.Second),
		WriteTimeout: dur("WRITE_TIMEOUT", 15*time.Second),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s BUYNOW_MODE=%s ADMIN_EMAIL=%s", cfg.Port, cfg.DBDSN, cfg.BuyNowMode, cfg.AdminEmail)
	return cfg
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] bad %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
