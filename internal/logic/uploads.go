package logic

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Upload is a user-supplied CSV kept for the lifetime of the process.
type Upload struct {
	ID         string
	Filename   string
	Data       []byte
	UploadedAt time.Time
}

// UploadStore keeps uploaded CSV files in memory keyed by content hash, so
// identical content always maps to the same id. Capacity is bounded; the
// oldest upload is dropped first.
type UploadStore struct {
	mu       sync.Mutex
	capacity int
	uploads  map[string]Upload
	order    []string
}

func NewUploadStore(capacity int) *UploadStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &UploadStore{capacity: capacity, uploads: make(map[string]Upload, capacity)}
}

// ContentID returns the identity of CSV content (hex sha256).
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Put stores data and returns its upload id.
func (s *UploadStore) Put(filename string, data []byte) Upload {
	u := Upload{
		ID:         ContentID(data),
		Filename:   filename,
		Data:       data,
		UploadedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.uploads[u.ID]; ok {
		s.uploads[u.ID] = u
		return u
	}
	for len(s.order) >= s.capacity {
		delete(s.uploads, s.order[0])
		s.order = s.order[1:]
	}
	s.uploads[u.ID] = u
	s.order = append(s.order, u.ID)
	uploadsStored.Inc()
	return u
}

func (s *UploadStore) Get(id string) (Upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[id]
	return u, ok
}
