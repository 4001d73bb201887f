package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port      string
	MongoURI  string
	Database  string
	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	KafkaBrokers []string

	// CODFee is the flat cash-on-delivery fee in paise.
	CODFee int64
	// CODFeeAfterDiscount controls whether the COD fee is added after the
	// coupon discount (default) or included in the discount base.
	CODFeeAfterDiscount bool
}

// Load reads the environment, using .env when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		MongoURI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:            getEnv("MONGODB_DATABASE", "spoonful"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		RazorpayKeyID:       getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:   getEnv("RAZORPAY_KEY_SECRET", ""),
		CODFee:              getEnvInt64("COD_FEE", 0),
		CODFeeAfterDiscount: getEnvBool("COD_FEE_AFTER_DISCOUNT", true),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
