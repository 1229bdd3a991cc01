package config

import (
	"os"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

// SessionCookie carries the web-surface token; the API uses the
// Authorization header instead.
const SessionCookie = "carsite_session"

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-this-in-production"
	}
	JWTSecret = []byte(secret)
	JWTExpiration = 24 * time.Hour
}
