package moderation

import "context"

// Verify reports whether code matches the reference code stored on the
// pending user id. Unknown users and users without a code never verify.
//
// This is a placeholder check: the code is static, compared verbatim and is
// exposed to the admin UI alongside the record it protects. It becomes
// unusable only because a successful approval moves the user out of pending.
func (s *Store) Verify(_ context.Context, userID, code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verifyLocked(userID, code)
}

func (s *Store) verifyLocked(userID, code string) bool {
	idx := s.pendingIndex(userID)
	if idx < 0 {
		return false
	}
	stored := s.pending[idx].ReferenceCode
	if stored == "" {
		return false
	}
	return code == stored
}
