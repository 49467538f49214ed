package interview

import (
	"sync"

	"github.com/snakecharmers/boabot/platform"
)

// session tracks one user's in-flight multi-choice selection: the options
// chosen so far in toggle order and the rendered message the toggles live on.
// Sessions are transient; they are created on render and dropped when the
// question finalizes or the ticket is cancelled.
type session struct {
	selected []string
	message  platform.MessageRef
}

type sessionKey struct {
	userID     string
	questionID string
}

type sessionTable struct {
	mu sync.Mutex
	m  map[sessionKey]*session
}

func newSessionTable() *sessionTable {
	return &sessionTable{m: make(map[sessionKey]*session)}
}

func (t *sessionTable) get(userID, questionID string) *session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.m[sessionKey{userID, questionID}]
}

func (t *sessionTable) put(userID, questionID string, s *session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[sessionKey{userID, questionID}] = s
}

func (t *sessionTable) drop(userID, questionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, sessionKey{userID, questionID})
}

// dropUser removes every session the user holds, regardless of question.
func (t *sessionTable) dropUser(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.m {
		if k.userID == userID {
			delete(t.m, k)
		}
	}
}
