package department

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu          sync.RWMutex
	departments map[string]*Department
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{departments: make(map[string]*Department)}
}

func (r *memoryRepository) Create(_ context.Context, d *Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	cp := *d
	r.departments[d.ID] = &cp
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.departments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memoryRepository) List(_ context.Context) ([]*Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var departments []*Department
	for _, d := range r.departments {
		cp := *d
		departments = append(departments, &cp)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	return departments, nil
}

func (r *memoryRepository) Update(_ context.Context, d *Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.departments[d.ID]; !ok {
		return ErrNotFound
	}
	cp := *d
	r.departments[d.ID] = &cp
	return nil
}
