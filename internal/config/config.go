package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects every knob the operator commands need. It replaces the
// ambient CLASSQUIZ_* globals the original shell workflow relied on: built
// once per run and handed to collaborators explicitly.
type Config struct {
	ClassQuiz struct {
		BaseURL  string `yaml:"base_url"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"classquiz"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Compose struct {
		Command []string `yaml:"command"`
		Service string   `yaml:"service"`
	} `yaml:"compose"`
}

// Default returns the documented defaults: the local Docker stack behind
// http://localhost:8000, Monty's shared dev account, and redis-cli through
// docker compose (no direct Redis address).
func Default() Config {
	cfg := Config{}
	cfg.ClassQuiz.BaseURL = "http://localhost:8000"
	cfg.ClassQuiz.Email = "monty.classquiz@gmail.com"
	cfg.ClassQuiz.Password = "DevPass123!"
	cfg.Compose.Command = []string{"docker", "compose"}
	cfg.Compose.Service = "redis"
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies
// environment overrides. A missing file is fine: the defaults describe the
// standard local stack.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CLASSQUIZ_BASE_URL"); v != "" {
		cfg.ClassQuiz.BaseURL = v
	}
	if v := os.Getenv("CLASSQUIZ_EMAIL"); v != "" {
		cfg.ClassQuiz.Email = v
	}
	if v := os.Getenv("CLASSQUIZ_PASSWORD"); v != "" {
		cfg.ClassQuiz.Password = v
	}
	if v := os.Getenv("CLASSQUIZ_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
}
