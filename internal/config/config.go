package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendFirebase = "firebase"
	BackendMemory   = "memory"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Backend selects Firestore + Firebase Auth or the in-process stores.
	Backend string `envconfig:"BACKEND" default:"firebase"`

	ProjectID                    string   `envconfig:"FIREBASE_PROJECT_ID"`
	APIKey                       string   `envconfig:"FIREBASE_API_KEY"`
	StorageBucket                string   `envconfig:"FIREBASE_STORAGE_BUCKET"`
	SignedURLServiceAccountEmail string   `envconfig:"SIGNED_URL_SERVICE_ACCOUNT_EMAIL"`
	AllowedOrigins               []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	SessionSecret string        `envconfig:"SESSION_SECRET" default:"dev-session-secret"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"1h"`

	EnforceBookingPolicy bool `envconfig:"ENFORCE_BOOKING_POLICY" default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}

	if c.ProjectID == "" {
		var gcp struct {
			Project string `envconfig:"GOOGLE_CLOUD_PROJECT"`
		}
		if err := envconfig.Process("", &gcp); err != nil {
			return Config{}, err
		}
		c.ProjectID = gcp.Project
	}
	if c.StorageBucket == "" && c.ProjectID != "" {
		c.StorageBucket = c.ProjectID + ".appspot.com"
	}

	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins

	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendFirebase:
		if c.ProjectID == "" {
			return Config{}, fmt.Errorf("missing FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT")
		}
	case BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown BACKEND %q (want %s or %s)", c.Backend, BackendFirebase, BackendMemory)
	}
	return c, nil
}
