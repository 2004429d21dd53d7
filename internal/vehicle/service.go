package vehicle

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	Type            Type
	PlateNumber     string
	Capacity        int
	EquipmentLoad   int
	LastServiceDate time.Time
}

type UpdateRequest struct {
	Type            *Type
	PlateNumber     *string
	Capacity        *int
	EquipmentLoad   *int
	Status          *Status
	LastServiceDate *time.Time
}

// Service defines fleet-management logic for vehicles. Engagement flips
// (BUSY/AVAILABLE) do not go through here; they belong to the dispatch
// coordinator.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error)
	Delete(ctx context.Context, id string) error
	CountAvailable(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vehicle, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	if strings.TrimSpace(req.PlateNumber) == "" {
		return nil, ErrPlateRequired
	}

	v := &Vehicle{
		Type:            req.Type,
		PlateNumber:     strings.TrimSpace(req.PlateNumber),
		Capacity:        req.Capacity,
		EquipmentLoad:   req.EquipmentLoad,
		Status:          StatusAvailable,
		LastServiceDate: req.LastServiceDate,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, ErrInvalidType
		}
		v.Type = *req.Type
	}
	if req.PlateNumber != nil {
		if strings.TrimSpace(*req.PlateNumber) == "" {
			return nil, ErrPlateRequired
		}
		v.PlateNumber = strings.TrimSpace(*req.PlateNumber)
	}
	if req.Capacity != nil {
		v.Capacity = *req.Capacity
	}
	if req.EquipmentLoad != nil {
		v.EquipmentLoad = *req.EquipmentLoad
	}
	if req.Status != nil {
		// Fleet management may park a vehicle in MAINTENANCE or bring it
		// back; BUSY is reserved for the dispatch coordinator.
		if !req.Status.Valid() || *req.Status == StatusBusy {
			return nil, ErrInvalidStatus
		}
		v.Status = *req.Status
	}
	if req.LastServiceDate != nil {
		v.LastServiceDate = *req.LastServiceDate
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CountAvailable(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, StatusAvailable)
}
