// Package memory DocumentStore en memoria del proceso: sesiones efímeras y tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore guarda copias de los documentos en un mapa.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewDocumentStore construye un almacén vacío.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string][]byte)}
}

// Get devuelve una copia del documento guardado en key.
func (s *DocumentStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), doc...), true, nil
}

// Put reemplaza el documento de key.
func (s *DocumentStore) Put(_ context.Context, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append([]byte(nil), doc...)
	return nil
}

// Keys lista las claves presentes (diagnóstico y tests).
func (s *DocumentStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	return keys
}
