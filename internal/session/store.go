package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drtools/dr-invoice-tracker/internal/common"
	"github.com/drtools/dr-invoice-tracker/internal/extract"
)

// Session is the state of one upload-review-generate cycle.
type Session struct {
	ID        uuid.UUID
	Record    extract.DrRecord
	Prompt    PromptData
	Frozen    bool
	CreatedAt time.Time
}

// Store keeps sessions in memory, keyed by ID. State never outlives the
// process and is discarded explicitly after generation.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	defaults PromptDefaults
	now      func() time.Time
}

func NewStore(defaults PromptDefaults) *Store {
	if defaults.Mappings == nil {
		defaults.Mappings = DefaultBranchMappings
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		defaults: defaults,
		now:      time.Now,
	}
}

// Begin creates a session for a freshly extracted record and seeds its
// prompt with defaults.
func (s *Store) Begin(record extract.DrRecord) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &Session{
		ID:        uuid.New(),
		Record:    record,
		Prompt:    BuildPrompt(record, s.defaults, now),
		CreatedAt: now,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session, or common.ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, common.NewAppError("SESSION_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	return sess, nil
}

// Verify validates operator-edited prompt JSON, replaces the session's
// prompt, and freezes it. A frozen prompt cannot be edited again.
func (s *Store) Verify(id uuid.UUID, promptJSON []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return common.NewAppError("SESSION_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	if sess.Frozen {
		return common.NewAppError("PROMPT_FROZEN", "prompt already verified", common.ErrInvalidInput)
	}
	if err := ValidatePromptJSON(promptJSON); err != nil {
		return common.NewAppError("PROMPT_INVALID", "operator edit rejected", err)
	}

	var edited PromptData
	if err := json.Unmarshal(promptJSON, &edited); err != nil {
		return common.NewAppError("PROMPT_INVALID", "operator edit rejected", err)
	}
	sess.Prompt = edited
	sess.Frozen = true
	return nil
}

// Delete discards the session once artifacts are generated.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
