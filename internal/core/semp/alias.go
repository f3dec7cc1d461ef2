package semp

import (
	"fmt"
	"sync"
)

// AliasEntry maps a logical (JNDI) topic name to the physical resource name
// used by the detail endpoint.
type AliasEntry struct {
	LogicalName  string
	PhysicalName string
}

// AliasTable is filled by topic discovery and read by topic detail retrieval.
type AliasTable struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewAliasTable() *AliasTable {
	return &AliasTable{entries: make(map[string]string)}
}

// Record stores entries; a repeated logical name keeps the last physical name.
func (t *AliasTable) Record(entries ...AliasEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range entries {
		t.entries[e.LogicalName] = e.PhysicalName
	}
}

// Resolve returns the physical name for logical, or ErrAliasNotFound when no
// discovery call has seen it yet.
func (t *AliasTable) Resolve(logical string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	physical, ok := t.entries[logical]
	if !ok {
		return "", fmt.Errorf("%w: %q (discover destinations first)", ErrAliasNotFound, logical)
	}
	return physical, nil
}

func (t *AliasTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
