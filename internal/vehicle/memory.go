package vehicle

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*Vehicle
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{vehicles: make(map[string]*Vehicle)}
}

func (r *memoryRepository) Create(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.vehicles {
		if existing.PlateNumber == v.PlateNumber {
			return ErrPlateAlreadyUsed
		}
	}

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Vehicle, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var vehicles []*Vehicle
	for _, v := range r.vehicles {
		if filter.Type != "" && string(v.Type) != filter.Type {
			continue
		}
		if filter.Status != "" && string(v.Status) != filter.Status {
			continue
		}
		cp := *v
		vehicles = append(vehicles, &cp)
	}

	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].PlateNumber < vehicles[j].PlateNumber })

	total := len(vehicles)
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
	return vehicles[start:end], total, nil
}

func (r *memoryRepository) Update(_ context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[v.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.vehicles {
		if id != v.ID && existing.PlateNumber == v.PlateNumber {
			return ErrPlateAlreadyUsed
		}
	}
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[id]; !ok {
		return ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *memoryRepository) SetStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return ErrNotFound
	}
	v.Status = status
	return nil
}

func (r *memoryRepository) CountByStatus(_ context.Context, status Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, v := range r.vehicles {
		if v.Status == status {
			count++
		}
	}
	return count, nil
}
