package common

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/sandeepkv93/identity-core/internal/config"
	"github.com/sandeepkv93/identity-core/internal/database"
)

// LoadEnvFile loads KEY=VALUE pairs into the environment. A missing file is
// not an error and variables already set win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open env file: %w", err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.Trim(strings.TrimSpace(v), "\"'")
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, v)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("read env file: %w", err)
	}
	return nil
}

func LoadConfig(envFile string) (*config.Config, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	return config.Load()
}

func LoadConfigDB(envFile string) (*config.Config, *gorm.DB, error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// CloseDB releases the pool behind db, ignoring a missing handle.
func CloseDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
