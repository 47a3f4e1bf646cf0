package cachestore

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

// FileStore persiste o blob do cache em um arquivo local. A gravação é
// atômica (arquivo temporário + rename) para que um crash no meio da
// escrita nunca deixe um blob truncado.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore cria um FileStore no caminho informado, garantindo o
// diretório pai.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("caminho do cache de vendas não pode ser vazio")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "erro ao criar o diretório do cache de vendas")
	}

	return &FileStore{path: path}, nil
}

func (s *FileStore) Get() (*domain.SalesCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao ler o cache de vendas do disco")
	}

	cache, err := decodeCache(raw)
	if err != nil {
		// Blob corrompido não derruba o ciclo: trata como cache frio.
		logrus.WithError(err).WithField("path", s.path).Warn("Cache de vendas corrompido no disco, descartando")
		return nil, nil
	}

	return cache, nil
}

func (s *FileStore) Set(cache *domain.SalesCache) error {
	raw, err := encodeCache(cache)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "erro ao gravar o cache de vendas em disco")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "erro ao publicar o cache de vendas em disco")
	}

	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "erro ao remover o cache de vendas do disco")
	}
	return nil
}
