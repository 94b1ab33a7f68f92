package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"lpOracle/internal/model"
)

type configFile struct {
	PriceHubAddress string `json:"price_hub_addr"`
	UpdatedAt       string `json:"updated_at"`
}

// FileConfigStore persists the config as a JSON document on disk.
type FileConfigStore struct {
	path string
	mu   sync.RWMutex
}

func NewFileConfigStore(path string) *FileConfigStore {
	return &FileConfigStore{path: path}
}

func (s *FileConfigStore) LoadConfig(_ context.Context) (model.Config, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stat, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Config{}, false, nil
		}
		return model.Config{}, false, fmt.Errorf("stat config: %w", err)
	}
	if stat.IsDir() {
		return model.Config{}, false, fmt.Errorf("config path is a directory")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.Config{}, false, fmt.Errorf("read config: %w", err)
	}

	var doc configFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Config{}, false, fmt.Errorf("parse config: %w", err)
	}
	if !common.IsHexAddress(doc.PriceHubAddress) {
		return model.Config{}, false, fmt.Errorf("stored price hub address is invalid: %q", doc.PriceHubAddress)
	}

	return model.Config{PriceHubAddress: common.HexToAddress(doc.PriceHubAddress)}, true, nil
}

func (s *FileConfigStore) SaveConfig(_ context.Context, cfg model.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	doc := configFile{
		PriceHubAddress: cfg.PriceHubAddress.Hex(),
		UpdatedAt:       time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write config tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}

	return nil
}
