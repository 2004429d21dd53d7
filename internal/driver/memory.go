package driver

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.RWMutex
	drivers map[string]*Driver
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{drivers: make(map[string]*Driver)}
}

func (r *memoryRepository) Create(_ context.Context, d *Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.drivers {
		if existing.LicenseNumber == d.LicenseNumber {
			return ErrLicenseAlreadyUsed
		}
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	cp := *d
	r.drivers[d.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Driver, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var drivers []*Driver
	for _, d := range r.drivers {
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		if filter.Shift != "" && string(d.Shift) != filter.Shift {
			continue
		}
		cp := *d
		drivers = append(drivers, &cp)
	}

	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })

	total := len(drivers)
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
	return drivers[start:end], total, nil
}

func (r *memoryRepository) Update(_ context.Context, d *Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[d.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.drivers {
		if id != d.ID && existing.LicenseNumber == d.LicenseNumber {
			return ErrLicenseAlreadyUsed
		}
	}
	cp := *d
	r.drivers[d.ID] = &cp
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[id]; !ok {
		return ErrNotFound
	}
	delete(r.drivers, id)
	return nil
}

func (r *memoryRepository) SetStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[id]
	if !ok {
		return ErrNotFound
	}
	d.Status = status
	return nil
}
