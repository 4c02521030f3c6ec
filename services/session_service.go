package services

import (
	"anonrelay_server/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SessionService is the volatile binding table: which counterpart each active
// sender is currently talking to. It is a bounded cache over conversational
// state, not a source of truth — reply routing never depends on an entry
// still being present here. Entries are superseded by later binds or evicted
// under capacity pressure, never expired.
type SessionService struct {
	bindings *lru.Cache[models.Handle, models.Handle]
}

// DefaultSessionCacheSize bounds the binding table when no explicit capacity
// is configured.
const DefaultSessionCacheSize = 8192

// NewSessionService creates a binding table holding at most size entries.
func NewSessionService(size int) (*SessionService, error) {
	if size <= 0 {
		size = DefaultSessionCacheSize
	}
	cache, err := lru.New[models.Handle, models.Handle](size)
	if err != nil {
		return nil, err
	}
	return &SessionService{bindings: cache}, nil
}

// Bind points sender at counterpart, replacing any previous binding for the
// same sender. Self-bindings are rejected with ErrSelfBinding.
func (s *SessionService) Bind(sender, counterpart models.Handle) error {
	if sender == counterpart {
		return ErrSelfBinding
	}
	s.bindings.Add(sender, counterpart)
	return nil
}

// Counterpart reports who sender is currently bound to.
func (s *SessionService) Counterpart(sender models.Handle) (models.Handle, bool) {
	return s.bindings.Get(sender)
}

// Unbind drops sender's binding, if any.
func (s *SessionService) Unbind(sender models.Handle) {
	s.bindings.Remove(sender)
}

// Purge drops every binding. Used at shutdown and test boundaries.
func (s *SessionService) Purge() {
	s.bindings.Purge()
}

// Len reports the number of live bindings.
func (s *SessionService) Len() int {
	return s.bindings.Len()
}
