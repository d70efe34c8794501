package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every variable name, as in SEARCH_CONTRACT_URL.
const envPrefix = "SEARCH_CONTRACT"

const dotEnvFile = ".env"

// Config describes the server under test. Values come from the defaults below, then a
// .env file if there is one, then the environment, then the YAML file named by -config.
type Config struct {
	BaseURL       string        `envconfig:"URL" default:"http://localhost:7777" yaml:"url"`
	SearchPath    string        `envconfig:"SEARCH_PATH" default:"/search" yaml:"searchPath"`
	ProbeTimeout  time.Duration `envconfig:"PROBE_TIMEOUT" default:"2s" yaml:"probeTimeout"`
	SearchTimeout time.Duration `envconfig:"SEARCH_TIMEOUT" default:"5s" yaml:"searchTimeout"`
	StartupWait   time.Duration `envconfig:"STARTUP_WAIT" default:"0s" yaml:"startupWait"`
	ScenarioPause time.Duration `envconfig:"SCENARIO_PAUSE" default:"100ms" yaml:"scenarioPause"`
}

func loadConfig(configPath string) (Config, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", dotEnvFile, err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url must be an absolute http or https URL, got %q", c.BaseURL)
	}
	if strings.ContainsAny(c.BaseURL, "?#") {
		return fmt.Errorf("url cannot have a query or fragment, got %q", c.BaseURL)
	}
	if c.SearchPath == "" || c.SearchPath[0] != '/' {
		return fmt.Errorf("searchPath must start with /, got %q", c.SearchPath)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probeTimeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("searchTimeout must be positive, got %s", c.SearchTimeout)
	}
	if c.StartupWait < 0 || c.ScenarioPause < 0 {
		return errors.New("startupWait and scenarioPause cannot be negative")
	}
	return nil
}
