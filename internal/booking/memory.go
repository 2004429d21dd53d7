package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{bookings: make(map[string]*Booking)}
}

func copyBooking(b *Booking) *Booking {
	cp := *b
	if b.AssignedVehicleID != nil {
		v := *b.AssignedVehicleID
		cp.AssignedVehicleID = &v
	}
	if b.AssignedDriverID != nil {
		d := *b.AssignedDriverID
		cp.AssignedDriverID = &d
	}
	return &cp
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	r.bookings[b.ID] = copyBooking(b)
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyBooking(b), nil
}

func matchesFilter(b *Booking, filter Filter) bool {
	if filter.RequesterID != "" && b.RequesterID != filter.RequesterID {
		return false
	}
	if filter.DepartmentID != "" && b.DepartmentID != filter.DepartmentID {
		return false
	}
	if filter.Status != "" && string(b.Status) != filter.Status {
		return false
	}
	if filter.Priority != "" && string(b.Priority) != filter.Priority {
		return false
	}
	return true
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*Booking
	for _, b := range r.bookings {
		if matchesFilter(b, filter) {
			bookings = append(bookings, copyBooking(b))
		}
	}

	// Same ordering as the SQL repository: emergencies first, then earliest
	// start, then creation order.
	sort.Slice(bookings, func(i, j int) bool {
		bi, bj := bookings[i], bookings[j]
		if bi.Priority != bj.Priority {
			return bi.Priority == PriorityEmergency
		}
		if !bi.StartTime.Equal(bj.StartTime) {
			return bi.StartTime.Before(bj.StartTime)
		}
		return bi.CreatedAt.Before(bj.CreatedAt)
	})

	total := len(bookings)
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return bookings[start:end], total, nil
}

func (r *memoryRepository) Update(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	r.bookings[b.ID] = copyBooking(b)
	return nil
}

func (r *memoryRepository) HasActiveConflict(_ context.Context, vehicleID, driverID, excludeBookingID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == excludeBookingID || !b.Status.Engaged() {
			continue
		}
		if b.AssignedVehicleID != nil && *b.AssignedVehicleID == vehicleID {
			return true, nil
		}
		if b.AssignedDriverID != nil && *b.AssignedDriverID == driverID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) StatusCounts(_ context.Context, filter Filter) (int, map[Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	counts := make(map[Status]int)
	for _, b := range r.bookings {
		if matchesFilter(b, filter) {
			counts[b.Status]++
			total++
		}
	}
	return total, counts, nil
}
