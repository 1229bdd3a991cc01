package config

import "os"

type Config struct {
	Env         string
	HTTPPort    string
	MediaRoot   string
	MediaURL    string
	DatabaseDSN string
}

func Load() Config {
	return Config{
		Env:         get("APP_ENV", "dev"),
		HTTPPort:    get("PORT", "8080"),
		MediaRoot:   get("MEDIA_ROOT", "./media"),
		MediaURL:    get("MEDIA_URL", "/media"),
		DatabaseDSN: DatabaseDSN(),
	}
}

func DatabaseDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return "host=" + get("DB_HOST", "localhost") +
		" port=" + get("DB_PORT", "5432") +
		" user=" + get("DB_USER", "postgres") +
		" password=" + get("DB_PASSWORD", "postgres") +
		" dbname=" + get("DB_NAME", "carsite") +
		" sslmode=" + get("DB_SSLMODE", "disable")
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
