package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage персистентное хранилище состояния корзины
// Реализация на файлах повторяет роль localStorage в браузерной витрине
type Storage interface {
	Load() (*State, error)
	Save(state *State) error
}

// FileStorage хранит корзину в JSON файле
type FileStorage struct {
	path string
}

// NewFileStorage создает файловое хранилище корзины
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load читает состояние корзины из файла
// Отсутствующий или поврежденный файл дает пустую корзину,
// чтобы витрина не падала из-за испорченного состояния
func (s *FileStorage) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return &State{}, nil
	}

	return &state, nil
}

// Save атомарно записывает состояние корзины в файл
func (s *FileStorage) Save(state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal cart state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace cart file: %w", err)
	}

	return nil
}
