package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/jhoicas/corporate-meals/internal/application/ports"
)

var _ ports.PreferenceStore = (*FileStore)(nil)

const keyCurrency = "currency"

// FileStore preferencias locales en un archivo YAML gestionado con Viper.
// Un archivo inexistente equivale a "sin preferencias".
type FileStore struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// NewFileStore abre (o prepara) el archivo de preferencias en path.
func NewFileStore(path string) (*FileStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("prefs: leer %s: %w", path, err)
		}
	}
	return &FileStore{path: path, v: v}, nil
}

// Currency código de moneda guardado ("" si no hay).
func (s *FileStore) Currency() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(keyCurrency), nil
}

// SetCurrency guarda el código y reescribe el archivo.
func (s *FileStore) SetCurrency(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(keyCurrency, code)
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prefs: crear directorio: %w", err)
		}
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("prefs: escribir %s: %w", s.path, err)
	}
	return nil
}
