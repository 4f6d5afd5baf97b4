package source

import "sync"

// StringID is a handle into an Interner. The zero value, NoStringID,
// never denotes a real string.
type StringID uint32

// NoStringID is the sentinel returned for an absent or invalid string.
const NoStringID StringID = 0

// Interner deduplicates identifier text seen by the lexer. The table is
// guarded by a mutex so it is safe for concurrent use, although the only
// caller today is the lexer, running on the single parsing goroutine.
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

// NewInterner returns an Interner pre-seeded so NoStringID maps to "".
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the StringID for s, assigning a fresh one on first sight.
func (in *Interner) Intern(s string) StringID {
	in.mu.RLock()
	if id, ok := in.index[s]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[s]; ok {
		return id
	}
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup returns the string for id, or "", false if id is unknown.
func (in *Interner) Lookup(id StringID) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(in.byID) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup is Lookup but panics on an invalid id; reserved for code
// paths where the id was just produced by this same Interner.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}
