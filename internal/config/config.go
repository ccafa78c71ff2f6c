package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. ASSETREG_DB_PATH.
const EnvPrefix = "ASSETREG"

type Config struct {
	ListenAddr string        `envconfig:"LISTEN_ADDR" default:":8080"`
	DBPath     string        `envconfig:"DB_PATH" default:"/data/assetreg.db"`
	ExportPath string        `envconfig:"EXPORT_PATH" default:"/data/exports"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile    string        `envconfig:"LOG_FILE"`
	JWTSecret  string        `envconfig:"JWT_SECRET"`
	JWTIssuer  string        `envconfig:"JWT_ISSUER" default:"assetreg"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"12h"`
	TestMode   bool          `envconfig:"TEST_MODE"`
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory are loaded first when the file exists; variables
// already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings needed to serve the API.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("%s_JWT_SECRET is required", EnvPrefix)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("%s_JWT_TTL must be positive", EnvPrefix)
	}
	return nil
}
