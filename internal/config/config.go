package config

import "os"

type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	AdminUser     string
	AdminPassword string
}

func Load() Config {
	return Config{
		Addr:          getenv("SHOP_INSIGHTS_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUser:     getenv("ADMIN_USER", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
