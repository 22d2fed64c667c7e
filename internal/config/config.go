package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DatabaseConfig holds the connection parameters of the DOMjudge
// database, loaded from db-config.json. Environment variables (or a
// .env file) override individual fields when set, so the JSON file can
// be committed without the real password.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// ExamConfig holds the parameters of one exam session, loaded from
// exam-config.json. TeamCategory and AssignNewPasswordToExistingUsers
// are only used when provisioning accounts, ProblemNames only when
// downloading submissions.
type ExamConfig struct {
	Shortname                        string   `json:"shortname"`
	TeamCategory                     string   `json:"team_category"`
	ProblemNames                     []string `json:"problem_names"`
	AssignNewPasswordToExistingUsers bool     `json:"assign_new_password_to_existing_users"`
}

func LoadDatabaseConfig(path string) (*DatabaseConfig, error) {
	_ = godotenv.Load()

	var cfg DatabaseConfig
	if err := loadJSONFile(path, &cfg); err != nil {
		return nil, err
	}

	cfg.Host = getEnv("DB_HOST", cfg.Host)
	cfg.Port = getEnvAsInt("DB_PORT", cfg.Port)
	cfg.User = getEnv("DB_USER", cfg.User)
	cfg.Password = getEnv("DB_PASSWORD", cfg.Password)
	cfg.Database = getEnv("DB_NAME", cfg.Database)

	if cfg.Host == "" {
		return nil, fmt.Errorf("database config %s: missing host", path)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("database config %s: missing port", path)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database config %s: missing database name", path)
	}

	return &cfg, nil
}

func LoadExamConfig(path string) (*ExamConfig, error) {
	var cfg ExamConfig
	if err := loadJSONFile(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Shortname == "" {
		return nil, fmt.Errorf("exam config %s: missing contest shortname", path)
	}

	return &cfg, nil
}

func loadJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
