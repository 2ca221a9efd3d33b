package reviewing

import "sync"

// inflightSet guarda os alvos em revisão; só é alterado via tryAcquire/release
type inflightSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflightSet() *inflightSet {
	return &inflightSet{keys: make(map[string]struct{})}
}

func inflightKey(clientID, accountID string) string {
	if accountID == "" {
		return clientID
	}
	return clientID + ":" + accountID
}

func (s *inflightSet) tryAcquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *inflightSet) release(key string) {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
}

func (s *inflightSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
