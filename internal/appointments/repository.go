package appointments

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage.
// Create must be atomic with respect to the one-appointment-per-slot
// invariant: two concurrent calls for the same (date, time) may each see the
// slot as free beforehand, but only one may succeed.
type Repository interface {
	Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)
	BookedTimes(ctx context.Context, date string) ([]string, error)
}

// InMemoryRepository keeps appointments in a mutex-guarded map. Used by tests
// and local experiments; production runs on PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	slots map[string]*Appointment // keyed by date+"|"+time
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{slots: make(map[string]*Appointment)}
}

func slotKey(date, t string) string {
	return date + "|" + t
}

// Create books the slot unless it is already taken. The check and the write
// happen under one lock, so the uniqueness invariant holds here too.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(req.Date, req.Time)
	if _, taken := r.slots[key]; taken {
		return nil, ErrSlotTaken
	}

	appt := &Appointment{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		CreatedAt: time.Now().UTC(),
	}
	r.slots[key] = appt
	return appt, nil
}

// BookedTimes returns the times already booked for the date, in booking order
// not guaranteed; callers subtract against the candidate list anyway.
func (r *InMemoryRepository) BookedTimes(ctx context.Context, date string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var times []string
	for _, appt := range r.slots {
		if appt.Date == date {
			times = append(times, appt.Time)
		}
	}
	return times, nil
}
