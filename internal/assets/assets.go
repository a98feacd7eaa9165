// Package assets holds uploaded image bytes behind stable, resolvable
// references. Resizing and re-encoding belong to an external collaborator;
// this package only addresses and serves the bytes.
package assets

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Encoder turns raw image bytes into a displayable reference the rendering
// layer can resolve.
type Encoder interface {
	Encode(data []byte, contentType string) (ref string, err error)
}

// Asset is a stored binary blob.
type Asset struct {
	ID          string
	ContentType string
	Data        []byte
}

// Store is an in-memory Encoder addressing blobs by UUID. References have
// the form /assets/<id> and are served by the asset handler.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]Asset
}

func NewStore() *Store {
	return &Store{blobs: make(map[string]Asset)}
}

func (s *Store) Encode(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("encode asset: empty image data")
	}
	if contentType == "" {
		contentType = "image/png"
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.blobs[id] = Asset{ID: id, ContentType: contentType, Data: data}
	s.mu.Unlock()

	return "/assets/" + id, nil
}

// Get resolves a previously issued asset id.
func (s *Store) Get(id string) (Asset, bool) {
	s.mu.RLock()
	a, ok := s.blobs[id]
	s.mu.RUnlock()
	return a, ok
}
