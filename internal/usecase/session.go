package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/younes-radi/order-app/internal/domain"
)

// SessionRegistry keeps every live session in memory, keyed by token.
// Sessions do not survive a restart; any order left in draft stays in the
// database and is picked up by the admin through the order queries.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*domain.Session),
	}
}

func (r *SessionRegistry) Create(userID int64) *domain.Session {
	sess := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.sessions[sess.Token] = sess
	r.mu.Unlock()
	return sess
}

func (r *SessionRegistry) Get(token string) (*domain.Session, bool) {
	r.mu.RLock()
	sess, ok := r.sessions[token]
	r.mu.RUnlock()
	return sess, ok
}

func (r *SessionRegistry) Delete(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}
