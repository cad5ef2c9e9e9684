package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config is the runtime book configuration, editable through the API.
type Config struct {
	BookPath       string    `json:"book_path"`
	MinWeight      uint16    `json:"min_weight"`
	ReloadOnChange bool      `json:"reload_on_change"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Store struct {
	path string
	mu   sync.Mutex
	cfg  Config
}

// New opens the settings file at path, creating it from defaults on first
// run. Empty fields in defaults fall back to built-in values.
func New(path string, defaults Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	store := &Store{path: path}
	baseDir := filepath.Dir(path)
	if err := store.loadOrInit(baseDir, defaults); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) GetConfig(ctx context.Context) (Config, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, nil
}

func (s *Store) UpdateConfig(ctx context.Context, cfg Config) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.BookPath == "" {
		cfg.BookPath = s.cfg.BookPath
	}
	cfg.UpdatedAt = time.Now().UTC()
	s.cfg = cfg
	return s.saveLocked()
}

func (s *Store) loadOrInit(baseDir string, defaults Config) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cfg = defaultConfig(baseDir, defaults)
			return s.saveLocked()
		}
		return fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &s.cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if s.cfg.BookPath == "" {
		s.cfg.BookPath = defaultConfig(baseDir, defaults).BookPath
	}
	return nil
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfig(baseDir string, defaults Config) Config {
	cfg := Config{
		BookPath:       defaults.BookPath,
		MinWeight:      defaults.MinWeight,
		ReloadOnChange: true,
		UpdatedAt:      time.Now().UTC(),
	}
	if cfg.BookPath == "" {
		cfg.BookPath = filepath.Join(baseDir, "book.bin")
	}
	return cfg
}
