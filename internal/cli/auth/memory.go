package auth

// MemoryStore is an in-memory TokenStore for tests and throwaway sessions.
type MemoryStore struct {
	token string
	has   bool
}

// NewMemoryStore returns an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveToken(token string) error {
	s.token = token
	s.has = true
	return nil
}

func (s *MemoryStore) LoadToken() (string, error) {
	if !s.has {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) DeleteToken() error {
	s.token = ""
	s.has = false
	return nil
}

// HasToken reports whether a token is currently stored.
func (s *MemoryStore) HasToken() bool {
	return s.has
}
