package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ottermq/sempctl/internal/core/semp"
	"github.com/rs/zerolog/log"
)

// ErrContextNotFound is returned when no management context is open for a
// connection.
var ErrContextNotFound = errors.New("management context not found")

// ConnectionID identifies one host connection. It is minted by the caller and
// carries no meaning beyond identity.
type ConnectionID uuid.UUID

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.New())
}

func ParseConnectionID(s string) (ConnectionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ConnectionID{}, fmt.Errorf("invalid connection id %q: %w", s, err)
	}
	return ConnectionID(id), nil
}

func (id ConnectionID) String() string {
	return uuid.UUID(id).String()
}

// Registry maps connections to their management context.
type Registry struct {
	mu       sync.RWMutex
	contexts map[ConnectionID]*semp.Context
}

func New() *Registry {
	return &Registry{contexts: make(map[ConnectionID]*semp.Context)}
}

// Open stores mc for id, replacing any context already stored.
func (r *Registry) Open(id ConnectionID, mc *semp.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contexts[id]; ok {
		log.Warn().Str("connection", id.String()).Msg("Replacing open management context")
	}
	r.contexts[id] = mc
}

func (r *Registry) Lookup(id ConnectionID) (*semp.Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mc, ok := r.contexts[id]
	if !ok {
		return nil, fmt.Errorf("connection %s: %w", id, ErrContextNotFound)
	}
	return mc, nil
}

// Close drops the context of id. Unknown ids are ignored.
func (r *Registry) Close(id ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contexts, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contexts)
}
