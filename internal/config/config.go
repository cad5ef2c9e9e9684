package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	ListenAddr string
	DataDir    string
	DBPath     string
	ConfigPath string
	BookPath   string
	MinWeight  uint16
	// Seed fixes the move picker's random source when non-zero.
	Seed     uint64
	LogLevel string
	// AdminToken overrides the token stored in the data dir.
	AdminToken string
}

func FromEnv() Config {
	dataDir := getenv("POLYBOOK_DATA_DIR", "./data")

	return Config{
		ListenAddr: getenv("POLYBOOK_LISTEN_ADDR", ":8080"),
		DataDir:    dataDir,
		DBPath:     getenv("POLYBOOK_DB_PATH", filepath.Join(dataDir, "polybook.sqlite")),
		ConfigPath: getenv("POLYBOOK_CONFIG_PATH", filepath.Join(dataDir, "config.json")),
		BookPath:   getenv("POLYBOOK_BOOK_PATH", ""),
		MinWeight:  uint16(getenvUint("POLYBOOK_MIN_WEIGHT", 0, 16)),
		Seed:       getenvUint("POLYBOOK_SEED", 0, 64),
		LogLevel:   getenv("POLYBOOK_LOG_LEVEL", "info"),
		AdminToken: getenv("POLYBOOK_ADMIN_TOKEN", ""),
	}
}

func getenv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getenvUint(key string, defaultValue uint64, bits int) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return defaultValue
	}
	return n
}
