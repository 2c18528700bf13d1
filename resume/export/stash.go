package export

import (
	"sync"
	"time"

	"resume-studio/resume/model"
)

// PendingDraftKey is the fixed slot a guest's in-progress document is
// parked under across the authentication redirect.
const PendingDraftKey = "pendingResume"

// DefaultDraftTTL bounds how long an unclaimed draft survives.
const DefaultDraftTTL = 30 * time.Minute

// DraftStash is an ephemeral key-value slot for carrying a document
// across a navigation boundary. A stored draft is consumed exactly
// once; expired entries are dropped on access.
type DraftStash struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]stashEntry
}

type stashEntry struct {
	doc     model.Document
	expires time.Time
}

func NewDraftStash(ttl time.Duration) *DraftStash {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftStash{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]stashEntry),
	}
}

// Put stores a draft under key, replacing any earlier draft there.
func (s *DraftStash) Put(key string, doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[key] = stashEntry{doc: doc, expires: s.now().Add(s.ttl)}
}

// Take removes and returns the draft under key. The second Take for
// the same draft reports absent.
func (s *DraftStash) Take(key string) (model.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	entry, ok := s.entries[key]
	if !ok {
		return model.Document{}, false
	}
	delete(s.entries, key)
	return entry.doc, true
}

func (s *DraftStash) sweepLocked() {
	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, key)
		}
	}
}
