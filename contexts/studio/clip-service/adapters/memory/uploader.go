package memory

import (
	"context"
	"sync"
)

// Uploader captures uploaded clips in memory.
type Uploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewUploader() *Uploader {
	return &Uploader{objects: make(map[string][]byte)}
}

func (u *Uploader) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = append([]byte(nil), data...)
	return "media/" + key, nil
}

func (u *Uploader) Object(key string) ([]byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	data, exists := u.objects[key]
	return data, exists
}
