package models

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"sync"
)

// PropertyValue lists the value kinds a broker configuration property may carry.
type PropertyValue interface {
	~bool | ~int32 | ~int64 | ~string
}

// Properties is an ordered property map: keys always iterate in ascending order.
// The zero value is not usable; create one with NewProperties.
type Properties struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// Put stores v under key, replacing any previous value.
func Put[T PropertyValue](p *Properties, key string, v T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = v
}

// PutPtr stores *v under key when v is non-nil; absent broker fields are skipped.
func PutPtr[T PropertyValue](p *Properties, key string, v *T) {
	if v == nil {
		return
	}
	Put(p, key, *v)
}

func (p *Properties) Get(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

func (p *Properties) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values)
}

func (p *Properties) IsEmpty() bool {
	return p.Len() == 0
}

// Keys returns the property names in ascending order.
func (p *Properties) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// All iterates the properties in key order.
func (p *Properties) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range p.Keys() {
			v, ok := p.Get(k)
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Map returns an unordered copy, handy for hosts that do their own sorting.
func (p *Properties) Map() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the properties as a JSON object with keys in ascending order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range p.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
