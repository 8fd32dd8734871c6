package store

// resolveOrderingLocked picks the override list the ordered view should
// honor: the operator's own list for the key when present and non-empty,
// else the default list. The "all" key and per-category keys are
// independent slots; nothing inherits between them.
func (s *Store) resolveOrderingLocked(operatorID, key string) []string {
	if operatorID != "" {
		if byKey, ok := s.operatorOrdering[operatorID]; ok {
			if ids := byKey[key]; len(ids) > 0 {
				return ids
			}
		}
	}
	return s.defaultOrdering[key]
}

// Ordering returns the operator's override list for a key, nil when unset.
func (s *Store) Ordering(operatorID, key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.operatorOrdering[operatorID][key]...)
}

// SetOrdering saves an operator's explicit product order for a key.
func (s *Store) SetOrdering(operatorID, key string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byKey, ok := s.operatorOrdering[operatorID]
	if !ok {
		byKey = make(map[string][]string)
		s.operatorOrdering[operatorID] = byKey
	}
	byKey[key] = append([]string(nil), ids...)
	s.persistLocked()
}

// DefaultOrdering returns the default override list for a key, nil when unset.
func (s *Store) DefaultOrdering(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.defaultOrdering[key]...)
}

// SetDefaultOrdering saves the house-wide product order for a key.
func (s *Store) SetDefaultOrdering(key string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultOrdering[key] = append([]string(nil), ids...)
	s.persistLocked()
}

// ResetOrdering drops every override the operator has saved, reverting
// their views to default resolution.
func (s *Store) ResetOrdering(operatorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.operatorOrdering[operatorID]; !ok {
		return
	}
	delete(s.operatorOrdering, operatorID)
	s.persistLocked()
}
