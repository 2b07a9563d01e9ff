package memory

import (
	"time"

	"po-intake-be/pkg/intake"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// Session holds one in-flight submission plus the buffered ancillary file
// contents, which are only uploaded at final submit. Abandoned sessions
// expire with the cache TTL; nothing about them is persisted.
type Session struct {
	Submission *intake.Submission
	Materials  []intake.Material
}

type SubmissionStore interface {
	Put(session *Session)
	Get(id uuid.UUID) (*Session, bool)
	Delete(id uuid.UUID)
}

type submissionStore struct {
	c *cache.Cache
}

func NewSubmissionStore(ttl time.Duration) SubmissionStore {
	return &submissionStore{
		c: cache.New(ttl, 10*time.Minute),
	}
}

func (s *submissionStore) Put(session *Session) {
	s.c.Set(session.Submission.CorrelationId.String(), session, cache.DefaultExpiration)
}

func (s *submissionStore) Get(id uuid.UUID) (*Session, bool) {
	v, ok := s.c.Get(id.String())
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (s *submissionStore) Delete(id uuid.UUID) {
	s.c.Delete(id.String())
}
