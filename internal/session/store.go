// Package session holds the dashboard's only client-side persistent state:
// the upstream bearer credential, keyed by a signed session cookie.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "procboard:session:"

// Store persists session credentials in Redis, falling back to an in-memory
// map when Redis is unreachable (sessions then die with the process).
type Store struct {
	redis *redis.Client
	ttl   time.Duration

	mu  sync.RWMutex
	mem map[string]string
}

// NewStore connects to Redis and returns a credential store
func NewStore(addr string, ttl time.Duration) *Store {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (sessions will not survive restarts)", err)
		client = nil
	} else {
		log.Println("Redis connected successfully")
	}

	return &Store{
		redis: client,
		ttl:   ttl,
		mem:   make(map[string]string),
	}
}

// Put stores the bearer credential for a session ID
func (s *Store) Put(ctx context.Context, sid, token string) error {
	if s.redis != nil {
		return s.redis.Set(ctx, keyPrefix+sid, token, s.ttl).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem[sid] = token
	return nil
}

// Get returns the bearer credential for a session ID, if present
func (s *Store) Get(ctx context.Context, sid string) (string, bool) {
	if s.redis != nil {
		token, err := s.redis.Get(ctx, keyPrefix+sid).Result()
		if err != nil {
			return "", false
		}
		return token, true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.mem[sid]
	return token, ok
}

// Clear drops the credential for a session ID. Called on any upstream 401;
// the next page load lands on the login surface.
func (s *Store) Clear(ctx context.Context, sid string) {
	if s.redis != nil {
		s.redis.Del(ctx, keyPrefix+sid)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mem, sid)
}
