package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rentready/models"
)

// Session is one uploaded report held in memory. Sessions are immutable
// after creation: filters and exports read the unit slice, never change it.
type Session struct {
	ID         string               `json:"id"`
	FileName   string               `json:"fileName"`
	UploadedAt time.Time            `json:"uploadedAt"`
	Units      []*models.UnitRecord `json:"-"`
	Report     *models.ReadyReport  `json:"report"`
}

// SessionStore keeps the active report sessions. Each upload is an
// independent dataset, so concurrent uploads only contend on the map.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Put stores a new session and returns its generated id.
func (s *SessionStore) Put(fileName string, units []*models.UnitRecord, report *models.ReadyReport) *Session {
	session := &Session{
		ID:         uuid.New().String(),
		FileName:   fileName,
		UploadedAt: time.Now(),
		Units:      units,
		Report:     report,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns the session by id, or nil.
func (s *SessionStore) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
