package memory

import (
	"time"

	"ai-boardroom-be/pkg/board/orchestrator"

	"github.com/patrickmn/go-cache"
)

// SessionRuntime is the hot per-session data the boardroom service needs
// between messages: the orchestrator state plus the gate attempt counter for
// the question currently on the table. Sessions falling out of the cache are
// rebuilt from Postgres.
type SessionRuntime struct {
	State        orchestrator.State
	GateAttempts int
}

type RuntimeStateRepository struct {
	cache *cache.Cache
}

func NewRuntimeStateRepository() *RuntimeStateRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &RuntimeStateRepository{
		cache: c,
	}
}

func (r *RuntimeStateRepository) Save(sessionID string, runtime *SessionRuntime) {
	r.cache.Set(sessionID, runtime, cache.DefaultExpiration)
}

func (r *RuntimeStateRepository) Get(sessionID string) (*SessionRuntime, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*SessionRuntime), true
	}
	return nil, false
}

func (r *RuntimeStateRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
