package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	store "github.com/mwangikb/event-planner-go/store"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = time.Hour

// Config carries the environment settings and the constructed dependencies
// every handler closes over.
type Config struct {
	Port         string
	MongoURI     string
	DBName       string
	CloudName    string
	CloudAPIKey  string
	CloudSecret  string
	CloudFolder  string
	AdminPass    string
	SessionKey   string
	AuthDisabled bool
	CORSOrigins  []string

	Logger   zerolog.Logger
	Events   store.EventStore
	Sessions store.SessionStore
	Blob     store.BlobStore
}

// Load reads settings from the environment. Dependencies (Events, Sessions,
// Blob, Logger) are wired afterwards by the caller.
func Load() *Config {
	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		MongoURI:     getenv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:       getenv("MONGODB_DB", "eventplanner"),
		CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudAPIKey:  os.Getenv("CLOUDINARY_API_KEY"),
		CloudSecret:  os.Getenv("CLOUDINARY_API_SECRET"),
		CloudFolder:  getenv("CLOUDINARY_FOLDER", "events"),
		AdminPass:    os.Getenv("ADMIN_PASSWORD"),
		SessionKey:   os.Getenv("SESSION_SECRET"),
		AuthDisabled: strings.EqualFold(os.Getenv("AUTH_DISABLED"), "true"),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
