package driver

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name          string
	LicenseNumber string
	Shift         Shift
	Phone         string
}

type UpdateRequest struct {
	Name          *string
	LicenseNumber *string
	Status        *Status
	Shift         *Shift
	Phone         *string
}

// Service defines personnel-management logic for drivers. Engagement flips
// (ON_DUTY/AVAILABLE) belong to the dispatch coordinator, not here.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Driver, error)
	GetByID(ctx context.Context, id string) (*Driver, error)
	List(ctx context.Context, filter Filter) ([]*Driver, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Driver, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Driver, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.LicenseNumber) == "" {
		return nil, ErrLicenseRequired
	}
	if !req.Shift.Valid() {
		return nil, ErrInvalidShift
	}

	d := &Driver{
		Name:          strings.TrimSpace(req.Name),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Status:        StatusAvailable,
		Shift:         req.Shift,
		Phone:         req.Phone,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Driver, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Driver, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Driver, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.LicenseNumber != nil {
		if strings.TrimSpace(*req.LicenseNumber) == "" {
			return nil, ErrLicenseRequired
		}
		d.LicenseNumber = strings.TrimSpace(*req.LicenseNumber)
	}
	if req.Status != nil {
		// Personnel management may roster a driver OFF_DUTY or back;
		// ON_DUTY is reserved for the dispatch coordinator.
		if !req.Status.Valid() || *req.Status == StatusOnDuty {
			return nil, ErrInvalidStatus
		}
		d.Status = *req.Status
	}
	if req.Shift != nil {
		if !req.Shift.Valid() {
			return nil, ErrInvalidShift
		}
		d.Shift = *req.Shift
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
