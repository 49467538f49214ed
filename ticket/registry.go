package ticket

import (
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/snakecharmers/boabot/db"
	"github.com/snakecharmers/boabot/model"
	"github.com/snakecharmers/boabot/pkg/log"
)

// AlreadyExistsError signals that the user already has an open ticket. It is
// a control-flow outcome the router turns into "already queued" messaging,
// not a failure.
type AlreadyExistsError struct {
	UserID string
	Ticket *model.Ticket
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("user %v already has an open ticket", e.UserID)
}

var ErrNoOpenTicket = fmt.Errorf("no open ticket")

// Registry owns the durable ticket set. A single mutex serializes every
// mutation together with its sync, since platform handlers may run on
// separate goroutines.
type Registry struct {
	mu    sync.Mutex
	store *db.Store[*model.Ticket]
}

func NewRegistry() (*Registry, error) {
	store, err := db.NewStore[*model.Ticket](model.BucketTickets, nil)
	if err != nil {
		return nil, err
	}
	return &Registry{store: store}, nil
}

// Create appends a new open ticket for userID and persists it before
// returning. It fails with AlreadyExistsError when an open ticket exists.
func (r *Registry) Create(userID string) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t := r.findOpen(userID); t != nil {
		return nil, &AlreadyExistsError{UserID: userID, Ticket: t}
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	t := &model.Ticket{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
		Status:    model.TicketOpen,
		Answers:   make(map[string]model.Answer),
	}
	r.store.Data = append(r.store.Data, t)
	if err := r.store.Sync(); err != nil {
		// keep memory consistent with disk
		r.store.Data = r.store.Data[:len(r.store.Data)-1]
		return nil, err
	}
	log.Info("created ticket %v for user %v", t.ID, userID)
	return t, nil
}

// FindOpen returns the user's open ticket in insertion order, or nil.
func (r *Registry) FindOpen(userID string) *model.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findOpen(userID)
}

func (r *Registry) findOpen(userID string) *model.Ticket {
	for _, t := range r.store.Data {
		if t.UserID == userID && t.Status == model.TicketOpen {
			return t
		}
	}
	return nil
}

// Position returns the user's open ticket and the number of open tickets
// created earlier, which is its zero-based queue position. Without an open
// ticket it returns (nil, -1).
func (r *Registry) Position(userID string) (*model.Ticket, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	position := 0
	for _, t := range r.store.Data {
		if t.Status != model.TicketOpen {
			continue
		}
		if t.UserID == userID {
			return t, position
		}
		position++
	}
	return nil, -1
}

// Remove deletes the user's open ticket by record id and persists. The bool
// reports whether a ticket was removed.
func (r *Registry) Remove(userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.findOpen(userID)
	if t == nil {
		return false, nil
	}
	kept := make([]*model.Ticket, 0, len(r.store.Data)-1)
	for _, other := range r.store.Data {
		if other.ID != t.ID {
			kept = append(kept, other)
		}
	}
	prev := r.store.Data
	r.store.Data = kept
	if err := r.store.Sync(); err != nil {
		r.store.Data = prev
		return false, err
	}
	log.Info("removed ticket %v for user %v", t.ID, userID)
	return true, nil
}

// Update applies fn to the user's open ticket and persists, all under the
// registry lock, so callers cannot mutate without saving.
func (r *Registry) Update(userID string, fn func(*model.Ticket)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.findOpen(userID)
	if t == nil {
		return ErrNoOpenTicket
	}
	if t.Answers == nil {
		// records predating the answers field decode without a map
		t.Answers = make(map[string]model.Answer)
	}
	fn(t)
	return r.store.Sync()
}

// Save forces persistence of the current ticket set.
func (r *Registry) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Sync()
}

// Open returns the open tickets in queue order.
func (r *Registry) Open() []*model.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	open := make([]*model.Ticket, 0, len(r.store.Data))
	for _, t := range r.store.Data {
		if t.Status == model.TicketOpen {
			open = append(open, t)
		}
	}
	return open
}
