package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIAddr string `envconfig:"API_ADDR" default:"http://localhost:8080"`
	WSAddr  string `envconfig:"WS_ADDR" default:"ws://localhost:8080"`
	// E2E_DEBUG_JSON allows dumping full HTTP request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
