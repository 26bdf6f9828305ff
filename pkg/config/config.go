package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/harrisonrobin/agenda/pkg/auth"
	"github.com/harrisonrobin/agenda/pkg/summarize"
)

const configFile = "config.json"

const defaultListen = ":8080"

// Config is the small JSON file under ~/.config/agenda. API credentials stay
// in the environment, not here.
type Config struct {
	Listen       string `json:"listen"`
	SummaryModel string `json:"summary_model"`
}

func GetConfigPath() (string, error) {
	dir, err := auth.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func defaults() *Config {
	return &Config{Listen: defaultListen, SummaryModel: summarize.DefaultModel}
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.SummaryModel == "" {
		cfg.SummaryModel = summarize.DefaultModel
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// LoadEnv pulls a .env file into the environment when one exists, matching
// how the external credentials are usually provisioned in development.
func LoadEnv() {
	_ = godotenv.Load()
}
